package app

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	// JWTSecret signs session tokens. Required outside dev; dev mode falls
	// back to a fixed insecure value so the stack runs without setup.
	JWTSecret string `env:"JWT_SECRET"`
	Issuer    string `env:"JWT_ISSUER" envDefault:"masjidhub"`

	// StoreDriver selects mongo or memory. Memory keeps everything
	// in-process, for dev and tests.
	StoreDriver string `env:"STORE_DRIVER" envDefault:"mongo"`
	MongoURI    string `env:"MONGODB_URI" envDefault:"mongodb://localhost:27017"`
	MongoDB     string `env:"MONGODB_DB" envDefault:"masjidhub"`

	Env       string `env:"ENV" envDefault:"dev"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
	Port      int    `env:"PORT" envDefault:"8080"`

	ShutdownGracePeriod time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`
}

// devJWTSecret keeps local development friction-free. Refusing to boot
// without JWT_SECRET is reserved for non-dev environments.
const devJWTSecret = "dev-only-insecure-secret"

// LoadConfig reads .env (if present) and the environment.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return Config{}, fmt.Errorf("load .env file: %w", err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if cfg.JWTSecret == "" {
		if cfg.Env != "dev" {
			return Config{}, errors.New("JWT_SECRET is required outside dev")
		}
		cfg.JWTSecret = devJWTSecret
	}

	switch cfg.StoreDriver {
	case "mongo", "memory":
	default:
		return Config{}, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}

	return cfg, nil
}

// SecureCookies reports whether auth cookies should carry the Secure flag.
// Dev runs over plain http, so the flag would make the browser drop them.
func (c Config) SecureCookies() bool {
	return c.Env != "dev"
}
