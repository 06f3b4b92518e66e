package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the rekening.yaml configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Output OutputConfig `yaml:"output"`
	Parser ParserConfig `yaml:"parser"`
	Log    LogConfig    `yaml:"log"`
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Addr         string `yaml:"addr"`
	MaxUploadMB  int    `yaml:"max_upload_mb"`
	AllowOrigins string `yaml:"allow_origins"`
}

// OutputConfig controls serialization.
type OutputConfig struct {
	Format        string `yaml:"format"` // csv or xlsx
	IncludeHeader bool   `yaml:"include_header"`
	Dir           string `yaml:"dir,omitempty"`
}

// ParserConfig selects the statement layout. An empty bank means
// auto-detect.
type ParserConfig struct {
	Bank string `yaml:"bank,omitempty"`
}

// LogConfig sets the logrus level.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:         ":8080",
			MaxUploadMB:  32,
			AllowOrigins: "*",
		},
		Output: OutputConfig{
			Format:        "csv",
			IncludeHeader: true,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads a rekening.yaml file from disk on top of the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// ApplyEnv loads a .env file when present and lets REKENING_* variables
// override the configuration.
func (c *Config) ApplyEnv() error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("loading .env: %w", err)
	}
	c.Server.Addr = getEnv("REKENING_ADDR", c.Server.Addr)
	c.Server.AllowOrigins = getEnv("REKENING_ALLOW_ORIGINS", c.Server.AllowOrigins)
	c.Server.MaxUploadMB = getEnvAsInt("REKENING_MAX_UPLOAD_MB", c.Server.MaxUploadMB)
	c.Output.Format = getEnv("REKENING_FORMAT", c.Output.Format)
	c.Parser.Bank = getEnv("REKENING_BANK", c.Parser.Bank)
	c.Log.Level = getEnv("REKENING_LOG_LEVEL", c.Log.Level)
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
