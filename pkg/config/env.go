package config

const EnvPrefix = "ROCKETSHOES"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	StorageMemory   = "memory"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
)

const (
	EnvAppEnv            = "ROCKETSHOES_APP_ENV"
	EnvPort              = "ROCKETSHOES_APP_PORT"
	EnvLogLevel          = "ROCKETSHOES_LOG_LEVEL"
	EnvInventoryBaseURL  = "ROCKETSHOES_INVENTORY_BASE_URL"
	EnvInventoryTimeout  = "ROCKETSHOES_INVENTORY_TIMEOUT"
	EnvStorageDriver     = "ROCKETSHOES_STORAGE_DRIVER"
	EnvRedisURL          = "ROCKETSHOES_REDIS_URL"
	EnvRedisAddr         = "ROCKETSHOES_REDIS_ADDR"
	EnvDBDSN             = "ROCKETSHOES_DB_DSN"
	EnvDBSQLitePath      = "ROCKETSHOES_DB_SQLITE_PATH"
	EnvCartStorageKey    = "ROCKETSHOES_CART_STORAGE_KEY"
	EnvCartLocale        = "ROCKETSHOES_CART_LOCALE"
	EnvGCPProjectID      = "ROCKETSHOES_GCP_PROJECT_ID"
	EnvPubSubNotifyTopic = "ROCKETSHOES_PUBSUB_NOTIFICATION_TOPIC"
)
