package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	Cart          CartConfig
	FeatureFlags  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"QRMENU_APP_ENV" required:"true"`
	Port         string `envconfig:"QRMENU_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"QRMENU_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"QRMENU_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"QRMENU_DB_DSN"`
	Driver string `envconfig:"QRMENU_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"QRMENU_DB_HOST"`
	LegacyPort     int    `envconfig:"QRMENU_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"QRMENU_DB_USER"`
	LegacyPassword string `envconfig:"QRMENU_DB_PASSWORD"`
	LegacyName     string `envconfig:"QRMENU_DB_NAME"`
	LegacySSLMode  string `envconfig:"QRMENU_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"QRMENU_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"QRMENU_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"QRMENU_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"QRMENU_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"QRMENU_REDIS_URL" required:"true"`
	Address      string        `envconfig:"QRMENU_REDIS_ADDR"`
	Password     string        `envconfig:"QRMENU_REDIS_PASSWORD"`
	DB           int           `envconfig:"QRMENU_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"QRMENU_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"QRMENU_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"QRMENU_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"QRMENU_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"QRMENU_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"QRMENU_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"QRMENU_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"QRMENU_JWT_EXPIRATION_MINUTES" required:"true"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"QRMENU_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"QRMENU_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"QRMENU_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"QRMENU_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"QRMENU_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"QRMENU_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit int           `envconfig:"QRMENU_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit    int           `envconfig:"QRMENU_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

// CartConfig governs snapshot persistence for diner carts.
//
// SnapshotTTL is the maximum age of a persisted snapshot before it is
// discarded unread. The product carried a 1h value next to a comment claiming
// 24h; the observed 1h behavior is the default and this knob is the single
// place to change it.
type CartConfig struct {
	SnapshotTTL time.Duration `envconfig:"QRMENU_CART_SNAPSHOT_TTL" default:"1h"`
	CookieName  string        `envconfig:"QRMENU_CART_COOKIE_NAME" default:"qm_cart"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"QRMENU_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
