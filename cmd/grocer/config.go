package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/sicko7947/grocer"
	"gopkg.in/yaml.v3"
)

// Storage backends
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendDynamoDB = "dynamodb"
)

// Config represents the CLI configuration
type Config struct {
	Server struct {
		Addr            string        `yaml:"addr"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`

	Storage struct {
		Backend   string `yaml:"backend"`
		Path      string `yaml:"path"`
		Key       string `yaml:"key"`
		TableName string `yaml:"table_name"`
		Region    string `yaml:"region"`
		Endpoint  string `yaml:"endpoint"`
	} `yaml:"storage"`

	Log struct {
		Level  string `yaml:"level"`
		Pretty bool   `yaml:"pretty"`
	} `yaml:"log"`

	Service struct {
		InviteCodeLength int `yaml:"invite_code_length"`
		MaxNameLength    int `yaml:"max_name_length"`
		MaxNotesLength   int `yaml:"max_notes_length"`
	} `yaml:"service"`
}

// DefaultConfig returns the configuration used when nothing else is set
func DefaultConfig() Config {
	var cfg Config
	cfg.Server.Addr = ":3000"
	cfg.Server.ShutdownTimeout = 5 * time.Second
	cfg.Storage.Backend = BackendFile
	cfg.Storage.Path = "grocer-data"
	cfg.Storage.Key = grocer.DefaultStorageKey
	cfg.Storage.TableName = "grocer"
	cfg.Log.Level = "info"
	cfg.Log.Pretty = true
	cfg.Service.InviteCodeLength = grocer.DefaultServiceConfig.InviteCodeLength
	cfg.Service.MaxNameLength = grocer.DefaultServiceConfig.MaxNameLength
	cfg.Service.MaxNotesLength = grocer.DefaultServiceConfig.MaxNotesLength
	return cfg
}

// LoadConfig reads path over the defaults, then applies environment overrides.
// An empty path skips the file.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyEnv overrides settings from GROCER_* environment variables
func (c *Config) applyEnv() error {
	if val := os.Getenv("GROCER_ADDR"); val != "" {
		c.Server.Addr = val
	}
	if val := os.Getenv("GROCER_BACKEND"); val != "" {
		c.Storage.Backend = val
	}
	if val := os.Getenv("GROCER_DATA"); val != "" {
		c.Storage.Path = val
	}
	if val := os.Getenv("GROCER_TABLE"); val != "" {
		c.Storage.TableName = val
	}
	if val := os.Getenv("GROCER_REGION"); val != "" {
		c.Storage.Region = val
	}
	if val := os.Getenv("GROCER_DYNAMODB_ENDPOINT"); val != "" {
		c.Storage.Endpoint = val
	}
	if val := os.Getenv("GROCER_LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("GROCER_LOG_PRETTY"); val != "" {
		pretty, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("invalid GROCER_LOG_PRETTY %q: %w", val, err)
		}
		c.Log.Pretty = pretty
	}
	return nil
}

// ServiceConfig returns the service limits
func (c Config) ServiceConfig() grocer.ServiceConfig {
	return grocer.ServiceConfig{
		InviteCodeLength: c.Service.InviteCodeLength,
		MaxNameLength:    c.Service.MaxNameLength,
		MaxNotesLength:   c.Service.MaxNotesLength,
		StorageKey:       c.Storage.Key,
	}
}

// Validate checks the storage settings and service limits
func (c Config) Validate() error {
	switch c.Storage.Backend {
	case BackendMemory:
	case BackendFile, BackendSQLite:
		if c.Storage.Path == "" {
			return fmt.Errorf("storage path is required for the %s backend", c.Storage.Backend)
		}
	case BackendDynamoDB:
		if c.Storage.TableName == "" {
			return fmt.Errorf("table name is required for the dynamodb backend")
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	return c.ServiceConfig().Validate()
}
