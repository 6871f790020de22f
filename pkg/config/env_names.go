package config

// EnvPrefix is passed to envconfig.Process; individual fields carry the full
// variable name so the prefix stays empty.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

// Canonical environment variable names, referenced from tests and error
// messages so renames stay in one place.
const (
	EnvAppEnv                 = "ATELIERQ_APP_ENV"
	EnvPort                   = "ATELIERQ_APP_PORT"
	EnvDBDSN                  = "ATELIERQ_DB_DSN"
	EnvDBHost                 = "ATELIERQ_DB_HOST"
	EnvDBUser                 = "ATELIERQ_DB_USER"
	EnvDBName                 = "ATELIERQ_DB_NAME"
	EnvRedisURL               = "ATELIERQ_REDIS_URL"
	EnvJWTSecret              = "ATELIERQ_JWT_SECRET"
	EnvJWTIssuer              = "ATELIERQ_JWT_ISSUER"
	EnvJWTExpMins             = "ATELIERQ_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "ATELIERQ_REFRESH_TOKEN_TTL_MINUTES"
	EnvGCPProjectID           = "ATELIERQ_GCP_PROJECT_ID"
	EnvPubSubDomainTopic      = "ATELIERQ_PUBSUB_DOMAIN_TOPIC"
	EnvPubSubNotificationSub  = "ATELIERQ_PUBSUB_NOTIFICATION_SUBSCRIPTION"
	EnvPubSubDeliverySub      = "ATELIERQ_PUBSUB_DELIVERY_SUBSCRIPTION"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
