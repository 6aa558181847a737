package config

// EnvPrefix is the envconfig prefix; individual vars carry it explicitly in
// their struct tags, so Process receives an empty prefix.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

// Environment variable names, kept as constants so tests and ops tooling
// reference one definition.
const (
	EnvAppEnv       = "QRMENU_APP_ENV"
	EnvPort         = "QRMENU_APP_PORT"
	EnvLogLevel     = "QRMENU_LOG_LEVEL"
	EnvDBDSN        = "QRMENU_DB_DSN"
	EnvDBHost       = "QRMENU_DB_HOST"
	EnvDBUser       = "QRMENU_DB_USER"
	EnvDBName       = "QRMENU_DB_NAME"
	EnvRedisURL     = "QRMENU_REDIS_URL"
	EnvJWTSecret    = "QRMENU_JWT_SECRET"
	EnvJWTIssuer    = "QRMENU_JWT_ISSUER"
	EnvJWTExpMins   = "QRMENU_JWT_EXPIRATION_MINUTES"
	EnvCartTTL      = "QRMENU_CART_SNAPSHOT_TTL"
	EnvAutoMigrate  = "QRMENU_AUTO_MIGRATE"
	EnvCartCookie   = "QRMENU_CART_COOKIE_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
