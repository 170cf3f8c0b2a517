package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "SHOPGRID"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv   = "SHOPGRID_APP_ENV"
	EnvPort     = "SHOPGRID_APP_PORT"
	EnvDBDSN    = "SHOPGRID_DB_DSN"
	EnvDBHost   = "SHOPGRID_DB_HOST"
	EnvDBUser   = "SHOPGRID_DB_USER"
	EnvDBName   = "SHOPGRID_DB_NAME"
	EnvRedisURL = "SHOPGRID_REDIS_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Checkout     CheckoutConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if err := cfg.Checkout.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SHOPGRID_APP_ENV" required:"true"`
	Port         string `envconfig:"SHOPGRID_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"SHOPGRID_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SHOPGRID_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"SHOPGRID_DB_DSN"`
	Driver string `envconfig:"SHOPGRID_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"SHOPGRID_DB_HOST"`
	LegacyPort     int    `envconfig:"SHOPGRID_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"SHOPGRID_DB_USER"`
	LegacyPassword string `envconfig:"SHOPGRID_DB_PASSWORD"`
	LegacyName     string `envconfig:"SHOPGRID_DB_NAME"`
	LegacySSLMode  string `envconfig:"SHOPGRID_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SHOPGRID_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SHOPGRID_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SHOPGRID_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SHOPGRID_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SHOPGRID_REDIS_URL" required:"true"`
	Address      string        `envconfig:"SHOPGRID_REDIS_ADDR"`
	Password     string        `envconfig:"SHOPGRID_REDIS_PASSWORD"`
	DB           int           `envconfig:"SHOPGRID_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SHOPGRID_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SHOPGRID_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SHOPGRID_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SHOPGRID_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SHOPGRID_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// CheckoutConfig carries the marketplace-wide pricing constants. Amounts are
// whole currency units.
type CheckoutConfig struct {
	FreeShippingThreshold int64 `envconfig:"SHOPGRID_CHECKOUT_FREE_SHIPPING_THRESHOLD" default:"500"`
	BaseShippingFee       int64 `envconfig:"SHOPGRID_CHECKOUT_BASE_SHIPPING_FEE" default:"60"`
}

func (c CheckoutConfig) validate() error {
	if c.FreeShippingThreshold < 0 {
		return fmt.Errorf("free shipping threshold must be non-negative")
	}
	if c.BaseShippingFee < 0 {
		return fmt.Errorf("base shipping fee must be non-negative")
	}
	return nil
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"SHOPGRID_AUTO_MIGRATE" default:"false"`
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
