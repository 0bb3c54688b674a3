package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/testops-io/testops-go/pkg/errors"
)

// Environment variables consulted by FromEnv.
const (
	EnvEndpoint       = "TESTOPS_ENDPOINT"
	EnvAuthToken      = "TESTOPS_API_TOKEN"
	EnvTimeoutMs      = "TESTOPS_TIMEOUT_MS"
	EnvRetryAttempts  = "TESTOPS_RETRY_ATTEMPTS"
	EnvValidateSchema = "TESTOPS_VALIDATE_SCHEMA"
)

// FromEnv builds the process-wide default config from environment
// variables, after loading a .env file if one exists. Unset variables
// keep the Default() values.
func FromEnv() (ClientConfig, error) {
	// Missing .env is fine; real env vars still apply
	_ = godotenv.Load()

	cfg := Default()
	cfg.Endpoint = os.Getenv(EnvEndpoint)
	cfg.AuthToken = os.Getenv(EnvAuthToken)

	if raw := os.Getenv(EnvTimeoutMs); raw != "" {
		ms, err := strconv.Atoi(raw)
		if err != nil {
			return ClientConfig{}, errors.WrapError(err, errors.ErrConfiguration, "parse "+EnvTimeoutMs)
		}
		cfg.Timeout = time.Duration(ms) * time.Millisecond
	}
	if raw := os.Getenv(EnvRetryAttempts); raw != "" {
		attempts, err := strconv.Atoi(raw)
		if err != nil {
			return ClientConfig{}, errors.WrapError(err, errors.ErrConfiguration, "parse "+EnvRetryAttempts)
		}
		cfg.RetryAttempts = attempts
	}
	if raw := os.Getenv(EnvValidateSchema); raw != "" {
		validate, err := strconv.ParseBool(raw)
		if err != nil {
			return ClientConfig{}, errors.WrapError(err, errors.ErrConfiguration, "parse "+EnvValidateSchema)
		}
		cfg.ValidateSchema = validate
	}

	if err := cfg.Validate(); err != nil {
		return ClientConfig{}, errors.WrapError(err, errors.ErrConfiguration, "environment config")
	}
	return cfg, nil
}

// Load reads a YAML client config from path. Environment variables in
// the file are expanded before parsing, so tokens can stay out of the
// file itself.
func Load(path string) (ClientConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ClientConfig{}, errors.WrapError(err, errors.ErrConfiguration, "read config file")
	}
	return Parse(data)
}

// fileConfig is the YAML shape of a client config file. Pointer fields
// distinguish "omitted" from explicit zero values.
type fileConfig struct {
	Endpoint       string            `yaml:"endpoint"`
	AuthToken      string            `yaml:"auth_token"`
	Headers        map[string]string `yaml:"headers"`
	TimeoutMs      *int              `yaml:"timeout_ms"`
	RetryAttempts  *int              `yaml:"retry_attempts"`
	ValidateSchema *bool             `yaml:"validate_schema"`
}

// Parse parses a YAML client config, applying defaults for omitted
// fields and validating the result.
func Parse(data []byte) (ClientConfig, error) {
	expanded := os.Expand(string(data), os.Getenv)

	var file fileConfig
	if err := yaml.Unmarshal([]byte(expanded), &file); err != nil {
		return ClientConfig{}, errors.WrapError(err, errors.ErrConfiguration, "parse config file")
	}

	cfg := Default()
	cfg.Endpoint = file.Endpoint
	cfg.AuthToken = file.AuthToken
	for k, v := range file.Headers {
		cfg.Headers[k] = v
	}
	if file.TimeoutMs != nil {
		cfg.Timeout = time.Duration(*file.TimeoutMs) * time.Millisecond
	}
	if file.RetryAttempts != nil {
		cfg.RetryAttempts = *file.RetryAttempts
	}
	if file.ValidateSchema != nil {
		cfg.ValidateSchema = *file.ValidateSchema
	}
	if err := cfg.Validate(); err != nil {
		return ClientConfig{}, errors.WrapError(err, errors.ErrConfiguration, "config file")
	}
	return cfg, nil
}
