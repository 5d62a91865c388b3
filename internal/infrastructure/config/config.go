package config

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`
	LogFile   string `env:"LOG_FILE"`
	JWTSecret string `env:"JWT_SECRET, required"`

	TokenTTL      time.Duration `env:"TOKEN_TTL,       default=24h"`
	ResetTokenTTL time.Duration `env:"RESET_TOKEN_TTL, default=1h"`
	ResetURL      string        `env:"RESET_URL,       default=http://localhost:8080/reset-password"`

	// Bootstrap administrator, created or promoted at startup when set.
	AdminEmail    string `env:"ADMIN_EMAIL"`
	AdminPassword string `env:"ADMIN_PASSWORD"`

	PollInterval    time.Duration `env:"POLL_INTERVAL,    default=15s"`
	DispatchWorkers int           `env:"DISPATCH_WORKERS, default=4"`

	Mongo MongoConfig
	Redis RedisConfig
	SMTP  SMTPConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=tracking_service"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

// SMTPConfig is optional: with no Addr, reset links are written to the log.
type SMTPConfig struct {
	Addr     string `env:"SMTP_ADDR"`
	From     string `env:"SMTP_FROM, default=no-reply@swiftex.local"`
	User     string `env:"SMTP_USER"`
	Password string `env:"SMTP_PASSWORD"`
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads a .env file when present, then the process environment.
// Variables already set in the environment win over the file.
func Load() *Config {
	_ = godotenv.Load()

	cfg, err := Process(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// Process resolves the configuration from l.
func Process(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: l,
	}); err != nil {
		return nil, err
	}
	if cfg.DispatchWorkers < 1 {
		cfg.DispatchWorkers = 1
	}
	return &cfg, nil
}
