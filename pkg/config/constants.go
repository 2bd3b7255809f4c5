package config

// EnvPrefix is the envconfig prefix shared by every section.
const EnvPrefix = "lumina"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv     = "LUMINA_APP_ENV"
	EnvPort       = "LUMINA_APP_PORT"
	EnvDBDSN      = "LUMINA_DB_DSN"
	EnvDBHost     = "LUMINA_DB_HOST"
	EnvDBUser     = "LUMINA_DB_USER"
	EnvDBName     = "LUMINA_DB_NAME"
	EnvRedisURL   = "LUMINA_REDIS_URL"
	EnvJWTSecret  = "LUMINA_JWT_SECRET"
	EnvJWTIssuer  = "LUMINA_JWT_ISSUER"
	EnvJWTExpMins = "LUMINA_JWT_EXPIRATION_MINUTES"
	EnvGCSBucket  = "LUMINA_GCS_BUCKET_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
