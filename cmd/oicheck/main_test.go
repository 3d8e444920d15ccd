package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	oitesting "github.com/go-sif/oifits/testing"
	"github.com/stretchr/testify/require"
	"github.com/youta-t/flarc"
)

func TestRun(t *testing.T) {
	dir := t.TempDir()
	_, err := oitesting.WriteSample(dir, "sample.json")
	require.Nil(t, err)

	var out bytes.Buffer
	flags := Flags{LogLevel: "ERROR", Parallel: 2}
	require.Nil(t, run(context.Background(), &out, flags, []string{filepath.Join(dir, "*.json")}))
	require.Contains(t, out.String(), "sample.json (fingerprint ")
	require.Contains(t, out.String(), "0 severe, 0 warning, 0 info")

	require.Nil(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte(`{"tables": []}`), 0o644))
	out.Reset()
	err = run(context.Background(), &out, flags, []string{filepath.Join(dir, "*.json")})
	require.Equal(t, errSevere, err)
	require.Contains(t, out.String(), "[OIFITS_TARGET_EXIST] FILE")
}

func TestRunUsageErrors(t *testing.T) {
	err := run(context.Background(), new(bytes.Buffer), Flags{LogLevel: "ERROR"}, []string{filepath.Join(t.TempDir(), "*.json")})
	require.True(t, errors.Is(err, flarc.ErrUsage))

	err = run(context.Background(), new(bytes.Buffer), Flags{Config: filepath.Join(t.TempDir(), "missing.yaml")}, nil)
	require.NotNil(t, err)
}
