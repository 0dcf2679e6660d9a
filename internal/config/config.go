package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the full service configuration
type Config struct {
	Server   Server   `yaml:"server"`
	Database Database `yaml:"database"`
	Auth     Auth     `yaml:"auth"`
	Logging  Logging  `yaml:"logging"`
	DemoMode bool     `yaml:"demo_mode"`
}

type Server struct {
	Port string `yaml:"port"`
}

type Database struct {
	URL string `yaml:"url"`
}

type Auth struct {
	JWTSecret string `yaml:"jwt_secret"`
	Issuer    string `yaml:"issuer"`
}

type Logging struct {
	Level string `yaml:"level"`
}

// Load reads the YAML config file and applies environment overrides.
// PORT, DATABASE_URL and JWT_SECRET always win over the file so the service
// can be configured entirely from the environment in deployment.
func Load(filename string) (*Config, error) {
	cfg := &Config{
		Server:  Server{Port: "8080"},
		Auth:    Auth{Issuer: "activity-tracker"},
		Logging: Logging{Level: "info"},
	}

	if filename != "" {
		content, err := os.ReadFile(filename)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(content, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Port = port
	}
	if url := os.Getenv("DATABASE_URL"); url != "" {
		cfg.Database.URL = url
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		cfg.Auth.JWTSecret = secret
	}

	if cfg.Database.URL == "" {
		return nil, fmt.Errorf("database URL is required (config database.url or DATABASE_URL)")
	}
	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT secret is required (config auth.jwt_secret or JWT_SECRET)")
	}

	return cfg, nil
}
