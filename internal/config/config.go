package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog/log"
)

var knownWeakSecrets = []string{
	"change-me", "dev-secret-change-me", "secret", "admin", "password",
}

type Config struct {
	Port                    int    `env:"PORT" envDefault:"8080"`
	DBDriver                string `env:"DB_DRIVER" envDefault:"sqlite"`
	DBDSN                   string `env:"DB_DSN" envDefault:"crm.db"`
	RedisURL                string `env:"REDIS_URL,required"`
	ServerURL               string `env:"SERVER_URL" envDefault:"http://localhost:8080"`
	JWTSecret               string `env:"JWT_SECRET,required"`
	AdminEmail              string `env:"ADMIN_EMAIL" envDefault:"admin@localhost"`
	AdminPassword           string `env:"ADMIN_PASSWORD" envDefault:"admin123"`
	LogLevel                string `env:"LOG_LEVEL" envDefault:"info"`
	PairingRetentionMinutes int    `env:"PAIRING_RETENTION_MINUTES" envDefault:"60"`
	BackupDir               string `env:"BACKUP_DIR" envDefault:"backups"`
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (c *Config) PairingRetention() time.Duration {
	return time.Duration(c.PairingRetentionMinutes) * time.Minute
}

func (c *Config) Validate(isProduction bool) error {
	if c.DBDriver != "sqlite" && c.DBDriver != "mysql" {
		return fmt.Errorf("DB_DRIVER must be sqlite or mysql, got %q", c.DBDriver)
	}

	if isProduction {
		if err := validateSecret("JWT_SECRET", c.JWTSecret); err != nil {
			return err
		}
		if c.AdminPassword == "admin123" {
			return fmt.Errorf("ADMIN_PASSWORD is the development default; set a strong password in production")
		}
		if c.RedisURL != "" && len(c.RedisURL) >= 8 && c.RedisURL[:8] == "redis://" {
			log.Warn().Msg("REDIS_URL uses redis:// (not TLS) in production: consider using rediss://")
		}
	}

	return nil
}

func validateSecret(name, value string) error {
	if len(value) < 32 {
		return fmt.Errorf("%s must be at least 32 characters in production (generate with: openssl rand -base64 32)", name)
	}
	for _, weak := range knownWeakSecrets {
		if value == weak {
			return fmt.Errorf("%s is a known weak default; set a strong secret in production", name)
		}
	}
	return nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
