package config

// EnvPrefix is handed to envconfig; individual fields carry explicit names.
const EnvPrefix = "storefront"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

// Canonical environment variable names, shared with tests and deploy tooling.
const (
	EnvAppEnv       = "STOREFRONT_APP_ENV"
	EnvPort         = "STOREFRONT_APP_PORT"
	EnvGCPProjectID = "STOREFRONT_GCP_PROJECT_ID"
	EnvRedisURL     = "STOREFRONT_REDIS_URL"
)
