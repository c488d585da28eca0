// Package config handles loading and parsing application configuration.
// It supports two sources for the config file path (in priority order):
//  1. An environment variable:  CONFIG_PATH=/path/to/config.yaml
//  2. A command-line flag:      --config=/path/to/config.yaml
//
// Before the file is read, an optional .env file in the working directory is
// loaded into the process environment, so every env:"..." override below can
// also be supplied from a dotenv file.
package config

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config is the root configuration structure.
// Every field maps to a key in the YAML file AND can be overridden
// by the corresponding environment variable (env:"...").
//
// env-required:"true" means the app refuses to start if that value is
// missing.
type Config struct {
	// Env controls log format and verbosity.
	// Valid values: "dev", "staging", "prod"
	Env string `yaml:"env" env:"ENV" env-required:"true"`

	// StoragePath is the filesystem path to the SQLite .db file.
	// The parent directory is created on startup if it does not exist.
	StoragePath string `yaml:"storage_path" env:"STORAGE_PATH" env-required:"true"`

	HTTPServer `yaml:"http_server"`

	CORS CORS `yaml:"cors"`
}

// HTTPServer holds settings specific to the HTTP server.
// Nested under http_server: in the YAML file.
type HTTPServer struct {
	// Addr is the TCP address the server listens on, e.g. "localhost:8082".
	Addr string `yaml:"address" env:"HTTP_SERVER_ADDR" env-required:"true"`

	ReadTimeout  time.Duration `yaml:"read_timeout" env:"HTTP_SERVER_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"HTTP_SERVER_WRITE_TIMEOUT" env-default:"10s"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" env:"HTTP_SERVER_IDLE_TIMEOUT" env-default:"60s"`
}

// CORS lists the browser origins allowed to call the API.
// An empty list disables cross-origin access entirely.
type CORS struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-separator:","`
}

// Load reads the config file at path, applies environment overrides and
// validates required values.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is not set: use --config flag or CONFIG_PATH env var")
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", path)
	}

	// A missing .env file is not an error; it is purely optional.
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("cannot read config: %w", err)
	}

	return &cfg, nil
}

// MustLoad reads, validates, and returns the application config.
//
// Functions prefixed with "Must" are allowed to fatal on failure. If this
// function returns, the config is valid.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {
		flags := flag.String("config", "", "Path to the configuration YAML file")
		flag.Parse()
		configPath = *flags
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatal(err.Error())
	}

	return cfg
}
