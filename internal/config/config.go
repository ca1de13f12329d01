// Package config loads service settings from config.yaml, falling back to
// environment variables. Values in the YAML file may reference the
// environment as ${VAR}.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the entire application configuration
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Database    DatabaseConfig    `yaml:"database"`
	Nutritionix NutritionixConfig `yaml:"nutritionix"`
	Storage     R2Config          `yaml:"storage"`
	Logging     LoggingConfig     `yaml:"logging"`
}

type ServerConfig struct {
	Port        string   `yaml:"port"`
	CORSOrigins []string `yaml:"cors_origins"`
}

type DatabaseConfig struct {
	URL         string `yaml:"url"`
	AutoMigrate *bool  `yaml:"auto_migrate"`
}

// NutritionixConfig holds API credentials and the lookup cache location.
// An empty CachePath keeps the cache in memory.
type NutritionixConfig struct {
	AppID     string `yaml:"app_id"`
	APIKey    string `yaml:"api_key"`
	BaseURL   string `yaml:"base_url"`
	CachePath string `yaml:"cache_path"`
}

// R2Config is the S3-compatible bucket that receives plan exports.
type R2Config struct {
	Endpoint      string `yaml:"endpoint"`
	AccessKey     string `yaml:"access_key"`
	SecretKey     string `yaml:"secret_key"`
	Bucket        string `yaml:"bucket"`
	PublicBaseURL string `yaml:"public_base_url"`
}

func (c R2Config) Enabled() bool {
	return c.Endpoint != "" && c.AccessKey != "" && c.SecretKey != "" && c.Bucket != ""
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

var defaultCORSOrigins = []string{"http://localhost:3000", "http://localhost:5173"}

// LoadDotEnv reads .env outside production. A missing file is not an error.
func LoadDotEnv() {
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}
}

// Load reads and parses the config file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// LoadFromEnv loads configuration from environment variables only
func LoadFromEnv() *Config {
	cfg := &Config{
		Server: ServerConfig{
			Port:        os.Getenv("PORT"),
			CORSOrigins: splitList(os.Getenv("CORS_ORIGINS")),
		},
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Nutritionix: NutritionixConfig{
			AppID:     os.Getenv("NUTRITIONIX_APP_ID"),
			APIKey:    os.Getenv("NUTRITIONIX_API_KEY"),
			BaseURL:   os.Getenv("NUTRITIONIX_BASE_URL"),
			CachePath: getEnv("NUTRITION_CACHE_PATH", "nutrition_cache.db"),
		},
		Storage: R2Config{
			Endpoint:      os.Getenv("R2_ENDPOINT"),
			AccessKey:     os.Getenv("R2_ACCESS_KEY"),
			SecretKey:     os.Getenv("R2_SECRET_KEY"),
			Bucket:        os.Getenv("R2_BUCKET_NAME"),
			PublicBaseURL: os.Getenv("R2_PUBLIC_BASE_URL"),
		},
		Logging: LoggingConfig{
			Level:  os.Getenv("LOG_LEVEL"),
			Format: os.Getenv("LOG_FORMAT"),
		},
	}

	if v := os.Getenv("DB_AUTO_MIGRATE"); v != "" {
		migrate := v != "false" && v != "0"
		cfg.Database.AutoMigrate = &migrate
	}

	cfg.applyDefaults()
	return cfg
}

// LoadOrEnv tries CONFIG_PATH (default config.yaml) and falls back to
// environment variables when the file is absent. A file that exists but
// does not parse is an error.
func LoadOrEnv() (*Config, error) {
	path := getEnv("CONFIG_PATH", "config.yaml")

	cfg, err := Load(path)
	if err == nil {
		return cfg, nil
	}
	if os.IsNotExist(err) {
		return LoadFromEnv(), nil
	}
	return nil, err
}

// MigrateOnStart reports whether schema migrations run at startup.
func (c *Config) MigrateOnStart() bool {
	return c.Database.AutoMigrate == nil || *c.Database.AutoMigrate
}

func (c *Config) applyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = "8000"
	}
	if len(c.Server.CORSOrigins) == 0 {
		c.Server.CORSOrigins = defaultCORSOrigins
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
}

// getEnv retrieves an environment variable with a fallback default
func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
