// Package config defines the data structures related to configuration and
// includes functions for loading and parsing the config.
package config

import (
	"fmt"
	"io"

	"github.com/iwvelando/rational-approx/pkg/constants"
	"github.com/iwvelando/rational-approx/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for rational-approx.
type Configuration struct {
	Defaults Defaults      `yaml:"defaults,omitempty"`
	Targets  []Target      `yaml:"targets"`
	Logging  LoggingConfig `yaml:"logging,omitempty"`
	Output   OutputConfig  `yaml:"output,omitempty"`
}

// Defaults holds the precision and width applied to targets that do not
// set their own.
type Defaults struct {
	Precision float64 `yaml:"precision,omitempty"`
	Width     int     `yaml:"width,omitempty"`
}

// Target represents one value to approximate as a ratio of integers.
type Target struct {
	Name      string  `yaml:"name"`
	Value     float64 `yaml:"value"`
	Precision float64 `yaml:"precision,omitempty"` // tolerance on the scaled residual
	Width     int     `yaml:"width,omitempty"`     // 16, 32, or 64
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()

	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	err := viper.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from an
// in-memory reader, leaving the process-wide viper state untouched.
func LoadConfigurationFromReader(reader io.Reader) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yml")

	if err := v.ReadConfig(reader); err != nil {
		return nil, fmt.Errorf("error reading config, %s", err)
	}

	var configuration Configuration
	err := v.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// ApplyDefaults fills in the precision and width of every target that
// leaves them unset, falling back to the build-time defaults when the
// defaults section itself is missing.
func (conf *Configuration) ApplyDefaults() {
	if conf.Defaults.Precision == 0 {
		conf.Defaults.Precision = constants.DefaultTargetPrecision
	}
	if conf.Defaults.Width == 0 {
		conf.Defaults.Width = constants.DefaultWidth
	}
	if conf.Output.Format == "" {
		conf.Output.Format = constants.OutputFormatPretty
	}

	for i := range conf.Targets {
		if conf.Targets[i].Precision == 0 {
			conf.Targets[i].Precision = conf.Defaults.Precision
		}
		if conf.Targets[i].Width == 0 {
			conf.Targets[i].Width = conf.Defaults.Width
		}
	}
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	var targets []validation.TargetConfig
	for _, target := range c.Targets {
		targets = append(targets, validation.TargetConfig{
			Name:      target.Name,
			Value:     target.Value,
			Precision: target.Precision,
			Width:     target.Width,
		})
	}

	validator := validation.ConfigValidator{
		Defaults: validation.DefaultsConfig{
			Precision: c.Defaults.Precision,
			Width:     c.Defaults.Width,
		},
		Targets: targets,
	}

	return validator.ValidateAll()
}
