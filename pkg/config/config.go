package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App       AppConfig
	Inventory InventoryConfig
	Storage   StorageConfig
	Redis     RedisConfig
	DB        DBConfig
	Cart      CartConfig
	PubSub    PubSubConfig
	Stub      StubConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Storage.validate(cfg.Redis, cfg.DB); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"ROCKETSHOES_APP_ENV" default:"dev"`
	Port         string `envconfig:"ROCKETSHOES_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"ROCKETSHOES_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"ROCKETSHOES_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type InventoryConfig struct {
	BaseURL string        `envconfig:"ROCKETSHOES_INVENTORY_BASE_URL" default:"http://localhost:3333"`
	Timeout time.Duration `envconfig:"ROCKETSHOES_INVENTORY_TIMEOUT" default:"10s"`
}

type StorageConfig struct {
	Driver string `envconfig:"ROCKETSHOES_STORAGE_DRIVER" default:"memory"`
}

// NormalizedDriver returns the lower-cased storage driver name.
// An empty driver falls back to the in-memory store.
func (s StorageConfig) NormalizedDriver() string {
	driver := strings.ToLower(strings.TrimSpace(s.Driver))
	if driver == "" {
		return StorageMemory
	}
	return driver
}

func (s StorageConfig) validate(redis RedisConfig, db DBConfig) error {
	switch s.NormalizedDriver() {
	case StorageMemory:
		return nil
	case StorageRedis:
		if strings.TrimSpace(redis.URL) == "" && strings.TrimSpace(redis.Address) == "" {
			return fmt.Errorf("either %s or %s is required for the redis storage driver", EnvRedisURL, EnvRedisAddr)
		}
		return nil
	case StoragePostgres:
		if strings.TrimSpace(db.DSN) == "" {
			return fmt.Errorf("%s is required for the postgres storage driver", EnvDBDSN)
		}
		return nil
	case StorageSQLite:
		if strings.TrimSpace(db.SQLitePath) == "" {
			return fmt.Errorf("%s is required for the sqlite storage driver", EnvDBSQLitePath)
		}
		return nil
	default:
		return fmt.Errorf("unsupported storage driver %q", s.Driver)
	}
}

type RedisConfig struct {
	URL          string        `envconfig:"ROCKETSHOES_REDIS_URL"`
	Address      string        `envconfig:"ROCKETSHOES_REDIS_ADDR"`
	Password     string        `envconfig:"ROCKETSHOES_REDIS_PASSWORD"`
	DB           int           `envconfig:"ROCKETSHOES_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"ROCKETSHOES_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"ROCKETSHOES_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"ROCKETSHOES_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"ROCKETSHOES_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"ROCKETSHOES_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type DBConfig struct {
	DSN        string `envconfig:"ROCKETSHOES_DB_DSN"`
	SQLitePath string `envconfig:"ROCKETSHOES_DB_SQLITE_PATH" default:"rocketshoes.db"`

	MaxOpenConns    int           `envconfig:"ROCKETSHOES_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"ROCKETSHOES_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"ROCKETSHOES_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"ROCKETSHOES_DB_CONN_MAX_IDLE_TIME" default:"10m"`
	AutoMigrate     bool          `envconfig:"ROCKETSHOES_DB_AUTO_MIGRATE" default:"true"`
}

type CartConfig struct {
	StorageKey   string `envconfig:"ROCKETSHOES_CART_STORAGE_KEY" default:"@RocketShoes:cart"`
	Locale       string `envconfig:"ROCKETSHOES_CART_LOCALE" default:"pt-BR"`
	FeedCapacity int    `envconfig:"ROCKETSHOES_CART_FEED_CAPACITY" default:"50"`
}

type PubSubConfig struct {
	ProjectID         string `envconfig:"ROCKETSHOES_GCP_PROJECT_ID"`
	NotificationTopic string `envconfig:"ROCKETSHOES_PUBSUB_NOTIFICATION_TOPIC"`
}

// Enabled reports whether cart notifications should also be published to Pub/Sub.
func (p PubSubConfig) Enabled() bool {
	return strings.TrimSpace(p.ProjectID) != "" && strings.TrimSpace(p.NotificationTopic) != ""
}

type StubConfig struct {
	Port     string `envconfig:"ROCKETSHOES_STUB_PORT" default:"3333"`
	SeedFile string `envconfig:"ROCKETSHOES_STUB_SEED_FILE" default:"server.json"`
}
