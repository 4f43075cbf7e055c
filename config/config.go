package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// placeholder secret from example env files
const insecureSecret = "change-me"

// Config holds everything the service reads from the environment.
type Config struct {
	LogLevel   string `env:"LOG_LEVEL,default=INFO"`
	ListenAddr string `env:"LISTEN_ADDR,default=:8000"`

	DBURL string `env:"DB_URL,default=sqlite:///autocatalog.db"`

	SQSQueueURL    string `env:"SQS_QUEUE_URL"`
	SQSMaxMessages int    `env:"SQS_MAX_MESSAGES,default=10"`
	SQSWaitSeconds int    `env:"SQS_WAIT_SECONDS,default=5"`

	JWTSecret   string        `env:"JWT_SECRET"`
	JWTLifetime time.Duration `env:"JWT_LIFETIME,default=1h"`

	// user created on start
	UserEmail    string `env:"USER_EMAIL"`
	UserPassword string `env:"USER_PASSWORD"`
}

// Load reads an optional .env file and decodes the environment into a Config.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("load env (%s): %w", envFile, err)
		}
	}

	cfg := &Config{}
	if err := envdecode.Decode(cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("decode env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that envdecode cannot.
func (c *Config) Validate() error {
	if c.SQSMaxMessages < 1 || c.SQSMaxMessages > 10 {
		return fmt.Errorf("SQS_MAX_MESSAGES must be between 1 and 10, got %d", c.SQSMaxMessages)
	}
	if c.SQSWaitSeconds < 0 || c.SQSWaitSeconds > 20 {
		return fmt.Errorf("SQS_WAIT_SECONDS must be between 0 and 20, got %d", c.SQSWaitSeconds)
	}
	if (c.UserEmail == "") != (c.UserPassword == "") {
		return errors.New("USER_EMAIL and USER_PASSWORD must be set together")
	}
	switch strings.TrimSpace(c.JWTSecret) {
	case "":
		return errors.New("JWT_SECRET must be set")
	case insecureSecret:
		return fmt.Errorf("JWT_SECRET must not be %q", insecureSecret)
	}
	return nil
}

// SQLitePath turns DB_URL into a path understood by the sqlite driver.
// Accepted forms: "sqlite:///file.db", "sqlite+aiosqlite:///file.db", "file.db", ":memory:".
func (c *Config) SQLitePath() (string, error) {
	u := c.DBURL
	scheme, rest, found := strings.Cut(u, "://")
	if !found {
		return u, nil
	}
	if scheme != "sqlite" && !strings.HasPrefix(scheme, "sqlite+") {
		return "", fmt.Errorf("unsupported DB_URL scheme %q", scheme)
	}
	// sqlite:///relative.db and sqlite:////abs/path.db
	path := strings.TrimPrefix(rest, "/")
	if path == "" {
		return "", fmt.Errorf("DB_URL %q has no database path", u)
	}
	return path, nil
}
