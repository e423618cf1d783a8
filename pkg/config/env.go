package config

// EnvPrefix scopes all envconfig lookups.
const EnvPrefix = "DINEUP"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv    = "DINEUP_APP_ENV"
	EnvPort      = "DINEUP_APP_PORT"
	EnvDBDSN     = "DINEUP_DB_DSN"
	EnvDBHost    = "DINEUP_DB_HOST"
	EnvDBUser    = "DINEUP_DB_USER"
	EnvDBName    = "DINEUP_DB_NAME"
	EnvRedisURL  = "DINEUP_REDIS_URL"
	EnvJWTSecret = "DINEUP_JWT_SECRET"
	EnvJWTIssuer = "DINEUP_JWT_ISSUER"
)

var componentDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
