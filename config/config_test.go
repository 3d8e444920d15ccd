package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUnmarshal(t *testing.T) {
	conf, err := Unmarshal([]byte(`
checker:
  inspectRules: true
  minSeverity: WARNING
  disabledRules:
    - GENERIC_COL_VAL_FINITE
logLevel: DEBUG
parallelism: 8
`))
	require.Nil(t, err)
	require.Equal(t, &Config{
		Checker: Checker{
			InspectRules:  true,
			MinSeverity:   "WARNING",
			DisabledRules: []string{"GENERIC_COL_VAL_FINITE"},
		},
		LogLevel:    "DEBUG",
		Parallelism: 8,
	}, conf)
}

func TestUnmarshalKeepsDefaults(t *testing.T) {
	conf, err := Unmarshal([]byte("logLevel: ERROR\n"))
	require.Nil(t, err)
	require.Equal(t, "INFO", conf.Checker.MinSeverity)
	require.Equal(t, 4, conf.Parallelism)
	require.Equal(t, "ERROR", conf.LogLevel)

	conf, err = Unmarshal([]byte("checker:\n  minSeverity: \"\"\nparallelism: 0\n"))
	require.Nil(t, err)
	require.Equal(t, "INFO", conf.Checker.MinSeverity)
	require.Equal(t, 1, conf.Parallelism)

	_, err = Unmarshal([]byte("parallelism: [1"))
	require.NotNil(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "oicheck.yaml")
	require.Nil(t, os.WriteFile(path, []byte("parallelism: 2\n"), 0o644))
	conf, err := Load(path)
	require.Nil(t, err)
	require.Equal(t, 2, conf.Parallelism)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NotNil(t, err)
}
