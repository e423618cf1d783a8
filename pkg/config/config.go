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
	Env          string `envconfig:"DINEUP_APP_ENV" required:"true"`
	Port         string `envconfig:"DINEUP_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"DINEUP_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"DINEUP_LOG_WARN_STACK" default:"false"`

	CORSOrigins []string `envconfig:"DINEUP_CORS_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"DINEUP_DB_DSN"`
	Driver string `envconfig:"DINEUP_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"DINEUP_DB_HOST"`
	Port     int    `envconfig:"DINEUP_DB_PORT" default:"5432"`
	User     string `envconfig:"DINEUP_DB_USER"`
	Password string `envconfig:"DINEUP_DB_PASSWORD"`
	Name     string `envconfig:"DINEUP_DB_NAME"`
	SSLMode  string `envconfig:"DINEUP_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"DINEUP_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"DINEUP_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"DINEUP_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"DINEUP_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"DINEUP_REDIS_URL" required:"true"`
	Address      string        `envconfig:"DINEUP_REDIS_ADDR"`
	Password     string        `envconfig:"DINEUP_REDIS_PASSWORD"`
	DB           int           `envconfig:"DINEUP_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"DINEUP_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"DINEUP_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"DINEUP_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"DINEUP_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"DINEUP_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"DINEUP_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"DINEUP_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"DINEUP_JWT_EXPIRATION_MINUTES" default:"60"`
	RefreshTokenTTLMinutes int    `envconfig:"DINEUP_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"DINEUP_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"DINEUP_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"DINEUP_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"DINEUP_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"DINEUP_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"DINEUP_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"DINEUP_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"DINEUP_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"DINEUP_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"DINEUP_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"DINEUP_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool   `envconfig:"DINEUP_USE_SQLITE" default:"false"`
	SQLitePath  string `envconfig:"DINEUP_SQLITE_PATH" default:"dineup.db"`
	AutoMigrate bool   `envconfig:"DINEUP_AUTO_MIGRATE" default:"false"`
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
	for _, env := range componentDBEnvVars {
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
