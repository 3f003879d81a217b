package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	StoreRedis  = "redis"
	StoreMongo  = "mongo"
	StoreMemory = "memory"

	AuthMock = "mock"
	AuthJWT  = "jwt"
)

type Config struct {
	Port            string        `env:"PORT,             default=8080"`
	Env             string        `env:"ENV,              default=development"`
	LogLevel        string        `env:"LOG_LEVEL,        default=info"`
	AuthMode        string        `env:"AUTH_MODE,        default=mock"`
	JWTSecret       string        `env:"JWT_SECRET"`
	StoreDriver     string        `env:"STORE_DRIVER,     default=redis"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT, default=10s"`
	BodyLimit       string        `env:"BODY_LIMIT,       default=4M"`

	Mongo     MongoConfig
	Redis     RedisConfig
	Directory DirectoryConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=directory"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
	Prefix   string `env:"REDIS_PREFIX,   default=directory"`
}

type DirectoryConfig struct {
	SeedOnStartup      bool          `env:"SEED_ON_STARTUP,     default=true"`
	SeedOnList         bool          `env:"SEED_ON_LIST,        default=false"`
	ExportLimit        int           `env:"EXPORT_LIMIT,        default=1000"`
	DefaultPageSize    int           `env:"DEFAULT_PAGE_SIZE,   default=100"`
	MaxPageSize        int           `env:"MAX_PAGE_SIZE,       default=1000"`
	SerializeMutations bool          `env:"SERIALIZE_MUTATIONS, default=true"`
	MutationWorkers    int           `env:"MUTATION_WORKERS,    default=8"`
	ImportReplayTTL    time.Duration `env:"IMPORT_REPLAY_TTL,   default=1h"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := Process(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// Process reads configuration from l and validates it.
func Process(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Development reports whether ENV selects human-friendly output.
func (c *Config) Development() bool { return c.Env == "development" }

func (c *Config) validate() error {
	switch c.StoreDriver {
	case StoreRedis, StoreMongo, StoreMemory:
	default:
		return fmt.Errorf("STORE_DRIVER must be redis, mongo or memory, got %q", c.StoreDriver)
	}
	switch c.AuthMode {
	case AuthMock:
	case AuthJWT:
		if c.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is required when AUTH_MODE=jwt")
		}
	default:
		return fmt.Errorf("AUTH_MODE must be mock or jwt, got %q", c.AuthMode)
	}
	d := c.Directory
	if d.DefaultPageSize < 1 || d.MaxPageSize < 1 || d.DefaultPageSize > d.MaxPageSize {
		return fmt.Errorf("page sizes must satisfy 1 <= DEFAULT_PAGE_SIZE <= MAX_PAGE_SIZE")
	}
	if d.ExportLimit < 1 {
		return fmt.Errorf("EXPORT_LIMIT must be positive")
	}
	if d.MutationWorkers < 1 {
		return fmt.Errorf("MUTATION_WORKERS must be positive")
	}
	return nil
}
