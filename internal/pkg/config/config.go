package config

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"

	// MinSecretLength is the shortest AUTH_SECRET accepted outside tests.
	MinSecretLength = 32
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`
	BaseURL  string `env:"BASE_URL,  default=http://localhost:8080"`

	Auth  AuthConfig
	Reset ResetConfig
	Mongo MongoConfig
	Redis RedisConfig
}

type AuthConfig struct {
	Secret          string `env:"AUTH_SECRET"`
	DefaultPassword string `env:"AUTH_DEFAULT_PASSWORD"`
	SessionMaxAge   int    `env:"AUTH_SESSION_MAX_AGE, default=86400"`
	CookieName      string `env:"AUTH_COOKIE_NAME,     default=records_session"`
	CookieSecure    bool   `env:"AUTH_COOKIE_SECURE,   default=true"`
	BcryptCost      int    `env:"AUTH_BCRYPT_COST,     default=12"`
}

type ResetConfig struct {
	// Delivery selects the sink: "log" or "outbox".
	Delivery string `env:"RESET_DELIVERY, default=outbox"`
	Workers  int    `env:"RESET_WORKERS,  default=4"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=records_portal"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

// SessionTTL is the configured session max-age as a duration.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.Auth.SessionMaxAge) * time.Second
}

// IsDevelopment reports whether the process runs with developer conveniences.
func (c *Config) IsDevelopment() bool {
	return c.Env == EnvDevelopment
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith reads configuration through lookuper and validates it.
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate refuses to start without a signing secret and a bootstrap password
// in any environment other than test. In test, missing values are replaced
// with ephemeral ones.
func (c *Config) Validate() error {
	switch c.Env {
	case EnvDevelopment, EnvProduction, EnvTest:
	default:
		return fmt.Errorf("config: ENV must be one of development, production, test; got %q", c.Env)
	}

	if c.Env == EnvTest {
		if c.Auth.Secret == "" {
			secret, err := randomSecret()
			if err != nil {
				return fmt.Errorf("config: generate test secret: %w", err)
			}
			c.Auth.Secret = secret
		}
		if c.Auth.DefaultPassword == "" {
			c.Auth.DefaultPassword = "ChangeMe-Test-1"
		}
	}

	var errs []error
	if c.Auth.Secret == "" {
		errs = append(errs, errors.New("AUTH_SECRET is required"))
	} else if len(c.Auth.Secret) < MinSecretLength {
		errs = append(errs, fmt.Errorf("AUTH_SECRET must be at least %d bytes", MinSecretLength))
	}
	if c.Auth.DefaultPassword == "" {
		errs = append(errs, errors.New("AUTH_DEFAULT_PASSWORD is required"))
	}
	if c.Auth.SessionMaxAge <= 0 {
		errs = append(errs, errors.New("AUTH_SESSION_MAX_AGE must be positive"))
	}
	if c.Reset.Delivery != "log" && c.Reset.Delivery != "outbox" {
		errs = append(errs, fmt.Errorf("RESET_DELIVERY must be log or outbox, got %q", c.Reset.Delivery))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

func randomSecret() (string, error) {
	buf := make([]byte, MinSecretLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
