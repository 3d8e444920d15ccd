// Package config loads the YAML configuration of the validator and of the oicheck tool.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Checker configures a validation pass
type Checker struct {
	// InspectRules keeps validating columns past a missing mandatory column by
	// checking a placeholder array which is never written back into the table
	InspectRules bool `yaml:"inspectRules"`
	// MinSeverity drops violations below this severity (INFO, WARNING or SEVERE)
	MinSeverity string `yaml:"minSeverity"`
	// DisabledRules lists rule identifiers which are never recorded
	DisabledRules []string `yaml:"disabledRules"`
}

// Config is the root of a configuration file
type Config struct {
	Checker Checker `yaml:"checker"`
	// LogLevel is one of TRACE, DEBUG, INFO, WARN, ERROR
	LogLevel string `yaml:"logLevel"`
	// Parallelism bounds the number of files validated at once
	Parallelism int `yaml:"parallelism"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		Checker:     Checker{MinSeverity: "INFO"},
		LogLevel:    "WARN",
		Parallelism: 4,
	}
}

// Unmarshal parses YAML content over the defaults
func Unmarshal(content []byte) (*Config, error) {
	conf := Default()
	if err := yaml.Unmarshal(content, conf); err != nil {
		return nil, fmt.Errorf("cannot parse configuration: %w", err)
	}
	if conf.Checker.MinSeverity == "" {
		conf.Checker.MinSeverity = "INFO"
	}
	if conf.Parallelism < 1 {
		conf.Parallelism = 1
	}
	return conf, nil
}

// Load reads a YAML configuration file
func Load(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Unmarshal(content)
}
