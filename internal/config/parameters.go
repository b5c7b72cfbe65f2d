// Package config provides a centralized entrypoint for the application parameters.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/creasty/defaults"
	"github.com/joho/godotenv"
	"go.yaml.in/yaml/v3"
)

var (
	// Global is a struct that contains the global configuration.
	Global global
	// Hiring is a struct that contains the configuration of the hiring API client.
	Hiring hiring
	// Profile is a struct that contains where the candidate profile is read from.
	Profile profile
)

type global struct {
	// SkipStartup disables the interactive flow entirely.
	SkipStartup bool `yaml:"skipStartup,omitempty"`
	// Logging is a struct that contains the logging configuration.
	Logging struct {
		// Verbosity is the verbosity level of the application. It represents slog levels.
		Verbosity int `yaml:"verbosity,omitempty"`
		// CallerTrace is a flag that enables the caller trace in the logger.
		CallerTrace bool `yaml:"callerTrace,omitempty"`
	} `yaml:"logging,omitempty"`
}

type hiring struct {
	Endpoint string `yaml:"endpoint,omitempty" default:"https://bfhldevapigw.healthrx.co.in/hiring/generateWebhook/JAVA"`
	// Timeout applies to each HTTP call. Zero means no timeout.
	Timeout time.Duration `yaml:"timeout,omitempty"`
}

type profile struct {
	// Source is one of console, config or ssm.
	Source string `yaml:"source,omitempty" default:"console"`
	Name   string `yaml:"name,omitempty"`
	RegNo  string `yaml:"regNo,omitempty"`
	Email  string `yaml:"email,omitempty"`
	// SSMKey names the parameter holding the JSON profile when Source is ssm.
	SSMKey string `yaml:"ssmKey,omitempty"`
}

// Reset clears every configuration struct.
func Reset() {
	Global, Hiring, Profile = global{}, hiring{}, profile{}
}

// SetDefaults sets the default values for the configuration.
func SetDefaults() error {
	return errors.Join(
		defaults.Set(&Global),
		defaults.Set(&Hiring),
		defaults.Set(&Profile),
	)
}

// LoadFromFile loads the configuration from a file.
func LoadFromFile(path string) error {
	if len(path) == 0 {
		return nil
	}
	fstat, err := os.Stat(path)
	if err != nil {
		return nil //nolint:nilerr // If the file does not exist, we ignore it.
	}
	if fstat.IsDir() {
		return fmt.Errorf("configuration file %s is a directory", path)
	}
	if !fstat.Mode().IsRegular() {
		return fmt.Errorf("configuration file %s is not a regular file", path)
	}

	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("failed to read configuration file %s: %w", path, err)
	}
	type all struct {
		Global  global  `yaml:"global,omitempty"`
		Hiring  hiring  `yaml:"hiring,omitempty"`
		Profile profile `yaml:"profile,omitempty"`
	}
	var a all
	if err = yaml.Unmarshal(content, &a); err != nil {
		return fmt.Errorf("failed to unmarshal configuration file %s: %w", path, err)
	}
	Global = a.Global
	Hiring = a.Hiring
	Profile = a.Profile

	return nil
}

// LoadDotEnv loads variables from the given .env files into the process environment.
// Variables that are already set are left untouched and missing files are ignored.
func LoadDotEnv(paths ...string) error {
	var errs []error
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			errs = append(errs, fmt.Errorf("failed to load env file %s: %w", path, err))
		}
	}
	return errors.Join(errs...)
}
