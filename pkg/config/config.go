package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "branchstock"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv    = "BRANCHSTOCK_APP_ENV"
	EnvPort      = "BRANCHSTOCK_APP_PORT"
	EnvDBDSN     = "BRANCHSTOCK_DB_DSN"
	EnvDBHost    = "BRANCHSTOCK_DB_HOST"
	EnvDBUser    = "BRANCHSTOCK_DB_USER"
	EnvDBName    = "BRANCHSTOCK_DB_NAME"
	EnvRedisURL  = "BRANCHSTOCK_REDIS_URL"
	EnvJWTSecret = "BRANCHSTOCK_JWT_SECRET"
	EnvJWTIssuer = "BRANCHSTOCK_JWT_ISSUER"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
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
	Env          string `envconfig:"BRANCHSTOCK_APP_ENV" required:"true"`
	Port         string `envconfig:"BRANCHSTOCK_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"BRANCHSTOCK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"BRANCHSTOCK_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"BRANCHSTOCK_DB_DSN"`

	LegacyHost     string `envconfig:"BRANCHSTOCK_DB_HOST"`
	LegacyPort     int    `envconfig:"BRANCHSTOCK_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"BRANCHSTOCK_DB_USER"`
	LegacyPassword string `envconfig:"BRANCHSTOCK_DB_PASSWORD"`
	LegacyName     string `envconfig:"BRANCHSTOCK_DB_NAME"`
	LegacySSLMode  string `envconfig:"BRANCHSTOCK_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"BRANCHSTOCK_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"BRANCHSTOCK_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"BRANCHSTOCK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"BRANCHSTOCK_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"BRANCHSTOCK_REDIS_URL" required:"true"`
	Address      string        `envconfig:"BRANCHSTOCK_REDIS_ADDR"`
	Password     string        `envconfig:"BRANCHSTOCK_REDIS_PASSWORD"`
	DB           int           `envconfig:"BRANCHSTOCK_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"BRANCHSTOCK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"BRANCHSTOCK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"BRANCHSTOCK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"BRANCHSTOCK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"BRANCHSTOCK_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret string `envconfig:"BRANCHSTOCK_JWT_SECRET" required:"true"`
	Issuer string `envconfig:"BRANCHSTOCK_JWT_ISSUER" required:"true"`
	// Access tokens are valid for 7 days unless overridden.
	ExpirationMinutes      int `envconfig:"BRANCHSTOCK_JWT_EXPIRATION_MINUTES" default:"10080"`
	RefreshTokenTTLMinutes int `envconfig:"BRANCHSTOCK_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

// AccessTokenTTL returns the access token lifetime.
func (j JWTConfig) AccessTokenTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"BRANCHSTOCK_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"BRANCHSTOCK_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"BRANCHSTOCK_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"BRANCHSTOCK_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"BRANCHSTOCK_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow       time.Duration `envconfig:"BRANCHSTOCK_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginNameLimit    int           `envconfig:"BRANCHSTOCK_AUTH_RATE_LIMIT_LOGIN_NAME_LIMIT" default:"5"`
	LoginIPLimit      int           `envconfig:"BRANCHSTOCK_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow    time.Duration `envconfig:"BRANCHSTOCK_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterNameLimit int           `envconfig:"BRANCHSTOCK_AUTH_RATE_LIMIT_REGISTER_NAME_LIMIT" default:"3"`
	RegisterIPLimit   int           `envconfig:"BRANCHSTOCK_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"BRANCHSTOCK_AUTO_MIGRATE" default:"false"`
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
