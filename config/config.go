/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package config loads registry settings from defaults, an optional YAML file,
// an optional .env file and the process environment, in that order of precedence.
package config

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/suparena/entityregistry/errors"
)

// Backend names.
const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendDynamoDB = "dynamodb"
)

// Config holds every setting the registry and its command need.
type Config struct {
	Backend    string `yaml:"backend" env:"REGISTRY_BACKEND"`
	SQLitePath string `yaml:"sqlitePath" env:"REGISTRY_SQLITE_PATH"`

	AWSAccessKey  string `yaml:"awsAccessKey" env:"AWS_ACCESS_KEY"`
	AWSSecretKey  string `yaml:"awsSecretKey" env:"AWS_SECRET_KEY"`
	AWSRegion     string `yaml:"awsRegion" env:"AWS_REGION"`
	DynamoDBTable string `yaml:"dynamodbTable" env:"AWS_DDB_TABLE"`

	// TransferPolicy is "any" (any caller may transfer) or "owner" (only the current owner).
	TransferPolicy string `yaml:"transferPolicy" env:"REGISTRY_TRANSFER_POLICY"`
	LogLevel       string `yaml:"logLevel" env:"REGISTRY_LOG_LEVEL"`
	MetricsAddr    string `yaml:"metricsAddr" env:"REGISTRY_METRICS_ADDR"`

	ConfigFile string `yaml:"-" env:"REGISTRY_CONFIG_FILE"`
}

// Default returns the built-in settings: in-memory backend, any-caller transfers, info logging.
func Default() Config {
	return Config{
		Backend:        BackendMemory,
		SQLitePath:     "registry.db",
		TransferPolicy: "any",
		LogLevel:       "info",
	}
}

// Load builds a Config. dotenvFiles are loaded into the environment first; missing
// files are ignored. If REGISTRY_CONFIG_FILE (or configFile) names a YAML file it
// overrides the defaults, and the environment overrides the file.
func Load(configFile string, dotenvFiles ...string) (Config, error) {
	if err := godotenv.Load(dotenvFiles...); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()
	if configFile == "" {
		configFile = os.Getenv("REGISTRY_CONFIG_FILE")
	}
	if configFile != "" {
		if err := readFile(configFile, &cfg); err != nil {
			return Config{}, err
		}
		cfg.ConfigFile = configFile
	}

	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func readFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("decode config file %s: %w", path, err)
	}
	return nil
}

// Validate checks that the selected backend has what it needs.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendMemory:
	case BackendSQLite:
		if c.SQLitePath == "" {
			return errors.NewValidationError("sqlitePath", "required for the sqlite backend")
		}
	case BackendDynamoDB:
		if c.DynamoDBTable == "" {
			return errors.NewValidationError("dynamodbTable", "required for the dynamodb backend")
		}
		if c.AWSRegion == "" {
			return errors.NewValidationError("awsRegion", "required for the dynamodb backend")
		}
	default:
		return errors.NewValidationError("backend", fmt.Sprintf("unknown backend %q", c.Backend))
	}

	switch c.TransferPolicy {
	case "any", "owner":
	default:
		return errors.NewValidationError("transferPolicy", fmt.Sprintf("unknown policy %q", c.TransferPolicy))
	}

	switch c.LogLevel {
	case "debug", "info", "error":
	default:
		return errors.NewValidationError("logLevel", fmt.Sprintf("unknown level %q", c.LogLevel))
	}
	return nil
}
