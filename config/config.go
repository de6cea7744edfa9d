package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"tournament/models"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type DatabaseConfig struct {
	// Driver is either "postgres" or "sqlite".
	Driver       string `env:"DRIVER" envDefault:"postgres"`
	URL          string `env:"URL" envDefault:"postgresql://postgres@localhost:5432/tournament"`
	MaxOpenConns int    `env:"MAX_OPEN_CONNS" envDefault:"10"`
	// LogQueries enables gorm's SQL trace logging.
	LogQueries bool `env:"LOG_QUERIES"`
}

type LogConfig struct {
	Level  string `env:"LEVEL" envDefault:"info"`
	Format string `env:"FORMAT" envDefault:"text"`
}

type RealtimeConfig struct {
	// Driver is one of "none", "redis" or "pusher".
	Driver        string        `env:"REALTIME_DRIVER" envDefault:"none"`
	Channel       string        `env:"REALTIME_CHANNEL" envDefault:"tournament"`
	QueueSize     int           `env:"REALTIME_QUEUE_SIZE" envDefault:"128"`
	Timeout       time.Duration `env:"REALTIME_TIMEOUT" envDefault:"5s"`
	RedisAddr     string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	PusherAppID   string        `env:"PUSHER_APP_ID"`
	PusherKey     string        `env:"PUSHER_KEY"`
	PusherSecret  string        `env:"PUSHER_SECRET"`
	PusherCluster string        `env:"PUSHER_CLUSTER" envDefault:"ap2"`
}

type Config struct {
	Environment string         `env:"APP_ENV" envDefault:"development"`
	ServerPort  string         `env:"SERVER_PORT" envDefault:"8080"`
	Database    DatabaseConfig `envPrefix:"DATABASE_"`
	Log         LogConfig      `envPrefix:"LOG_"`
	Realtime    RealtimeConfig

	JWTSecret     string        `env:"SESSION_SECRET"`
	JWTExpiration time.Duration `env:"SESSION_TTL" envDefault:"168h"`

	ExportDir      string `env:"EXPORT_DIR" envDefault:"exports"`
	ExportTimezone string `env:"EXPORT_TIMEZONE" envDefault:"Asia/Kolkata"`

	PUBGMaxTeams     int `env:"PUBG_MAX_TEAMS" envDefault:"25"`
	FreeFireMaxTeams int `env:"FREEFIRE_MAX_TEAMS" envDefault:"12"`

	MetricsListenAddr  string   `env:"METRICS_LISTEN_ADDR"`
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
	MaxBodyBytes       int64    `env:"MAX_BODY_BYTES" envDefault:"10485760"`

	InitialAdminUsername string `env:"INITIAL_ADMIN_USERNAME"`
	InitialAdminPassword string `env:"INITIAL_ADMIN_PASSWORD"`

	// GeneratedSecret is set when no SESSION_SECRET was provided and a
	// per-process secret was generated instead.
	GeneratedSecret bool `env:"-"`
}

// Load reads the given .env files (if any exist) and then the process
// environment.
func Load(envFiles ...string) (*Config, error) {
	// Missing .env files are fine; the environment may already be set.
	_ = godotenv.Load(envFiles...)

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment variables: %w", err)
	}

	if cfg.JWTSecret == "" && !cfg.IsProduction() {
		secret, err := randomSecret()
		if err != nil {
			return nil, err
		}
		cfg.JWTSecret = secret
		cfg.GeneratedSecret = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("SESSION_SECRET must be set in production"))
	}
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		errs = append(errs, fmt.Errorf("unsupported DATABASE_DRIVER %q", c.Database.Driver))
	}
	switch c.Realtime.Driver {
	case "", "none", "redis":
	case "pusher":
		if c.Realtime.PusherAppID == "" || c.Realtime.PusherKey == "" || c.Realtime.PusherSecret == "" {
			errs = append(errs, errors.New("PUSHER_APP_ID, PUSHER_KEY and PUSHER_SECRET are required for the pusher driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported REALTIME_DRIVER %q", c.Realtime.Driver))
	}
	if c.PUBGMaxTeams < 0 || c.FreeFireMaxTeams < 0 {
		errs = append(errs, errors.New("max teams must not be negative"))
	}
	if c.JWTExpiration <= 0 {
		errs = append(errs, errors.New("SESSION_TTL must be positive"))
	}
	if (c.InitialAdminUsername == "") != (c.InitialAdminPassword == "") {
		errs = append(errs, errors.New("INITIAL_ADMIN_USERNAME and INITIAL_ADMIN_PASSWORD must be set together"))
	}
	return errors.Join(errs...)
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, EnvProduction)
}

// Catalog returns the game catalog with the configured slot caps applied.
func (c *Config) Catalog() models.Catalog {
	catalog := models.DefaultCatalog()
	pubg := catalog[models.GamePUBG]
	pubg.MaxTeams = c.PUBGMaxTeams
	catalog[models.GamePUBG] = pubg

	ff := catalog[models.GameFreeFire]
	ff.MaxTeams = c.FreeFireMaxTeams
	catalog[models.GameFreeFire] = ff
	return catalog
}

func (c *Config) ExportLocation() *time.Location {
	loc, err := time.LoadLocation(c.ExportTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate session secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}
