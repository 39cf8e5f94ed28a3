package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config is the process configuration, read from the environment.
type Config struct {
	Port     string `env:"PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Empty values switch the corresponding backend to its in-memory variant.
	DatabaseURL   string `env:"DATABASE_URL"`
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	AMQPURL       string `env:"AMQP_URL"`

	JWTSecret      string        `env:"JWT_SECRET"`
	AccessTokenTTL time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"24h"`

	GoogleClientID     string `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `env:"GOOGLE_REDIRECT_URL" envDefault:"http://localhost:8080/auth/callback"`

	PaymentDelay  time.Duration `env:"PAYMENT_DELAY" envDefault:"2s"`
	ResubmitDelay time.Duration `env:"RESUBMIT_DELAY" envDefault:"1500ms"`
	DialogIdleTTL time.Duration `env:"DIALOG_IDLE_TTL" envDefault:"2h"`

	MigrationsDir string `env:"MIGRATIONS_DIR" envDefault:"file://migrations"`
	SeedDir       string `env:"SEED_DIR" envDefault:"seed"`
}

// Load reads .env when present and decodes the environment into Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Warn("⚠️ No .env file found, relying on OS environment variables")
	}
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

const minJWTSecretLen = 32

var weakJWTSecrets = map[string]bool{
	"default-secret-key-change-in-production": true,
	"secret":     true,
	"changeme":   true,
	"change-me":  true,
	"jwt-secret": true,
}

// SigningKey returns JWT_SECRET as the token signing key. It fails when the
// secret is unset, a known placeholder or shorter than 32 bytes.
func (c *Config) SigningKey() ([]byte, error) {
	switch {
	case c.JWTSecret == "":
		return nil, errors.New("JWT_SECRET is required")
	case weakJWTSecrets[c.JWTSecret]:
		return nil, errors.New("JWT_SECRET is a placeholder value")
	case len(c.JWTSecret) < minJWTSecretLen:
		return nil, fmt.Errorf("JWT_SECRET must be at least %d bytes", minJWTSecretLen)
	}
	return []byte(c.JWTSecret), nil
}

// GoogleEnabled reports whether the Google sign-in credentials are set.
func (c *Config) GoogleEnabled() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != ""
}

// ConfigureLogging applies LOG_LEVEL to the global logrus logger.
func (c *Config) ConfigureLogging() {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
}
