package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	FeatureFlags FeatureFlagsConfig
	Ledger       LedgerConfig
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
	Env          string `envconfig:"HOTELOPS_APP_ENV" required:"true"`
	Port         string `envconfig:"HOTELOPS_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"HOTELOPS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"HOTELOPS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"HOTELOPS_DB_DSN"`
	Driver string `envconfig:"HOTELOPS_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"HOTELOPS_DB_HOST"`
	Port     int    `envconfig:"HOTELOPS_DB_PORT" default:"5432"`
	User     string `envconfig:"HOTELOPS_DB_USER"`
	Password string `envconfig:"HOTELOPS_DB_PASSWORD"`
	Name     string `envconfig:"HOTELOPS_DB_NAME"`
	SSLMode  string `envconfig:"HOTELOPS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"HOTELOPS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"HOTELOPS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"HOTELOPS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"HOTELOPS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"HOTELOPS_REDIS_URL"`
	Address      string        `envconfig:"HOTELOPS_REDIS_ADDR"`
	Password     string        `envconfig:"HOTELOPS_REDIS_PASSWORD"`
	DB           int           `envconfig:"HOTELOPS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"HOTELOPS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"HOTELOPS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"HOTELOPS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"HOTELOPS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"HOTELOPS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"HOTELOPS_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"HOTELOPS_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"HOTELOPS_JWT_EXPIRATION_MINUTES" default:"60"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"HOTELOPS_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"HOTELOPS_AUTO_MIGRATE" default:"false"`
}

// LedgerConfig tunes the transactional ledger HTTP surface.
type LedgerConfig struct {
	// LargeAdjustmentRatio is the fraction of current stock above which an
	// adjustment must carry a justification note.
	LargeAdjustmentRatio float64       `envconfig:"HOTELOPS_LEDGER_LARGE_ADJUSTMENT_RATIO" default:"0.5"`
	IdempotencyTTL       time.Duration `envconfig:"HOTELOPS_LEDGER_IDEMPOTENCY_TTL" default:"24h"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	values := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range requiredDBEnvVars {
		if values[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
