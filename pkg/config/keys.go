package config

const EnvPrefix = "SWEETSLICE"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	CartBackendMemory = "memory"
	CartBackendFile   = "file"
	CartBackendRedis  = "redis"

	DBDriverNone     = "none"
	DBDriverSQLite   = "sqlite"
	DBDriverPostgres = "postgres"

	DefaultSQLiteDSN = "file:sweetslice.db?cache=shared&_fk=1"
)

const (
	EnvAppEnv   = "SWEETSLICE_APP_ENV"
	EnvPort     = "SWEETSLICE_APP_PORT"
	EnvLogLevel = "SWEETSLICE_LOG_LEVEL"

	EnvCartBackend = "SWEETSLICE_CART_BACKEND"
	EnvCartFileDir = "SWEETSLICE_CART_FILE_DIR"

	EnvRedisURL  = "SWEETSLICE_REDIS_URL"
	EnvRedisAddr = "SWEETSLICE_REDIS_ADDR"

	EnvDBDriver = "SWEETSLICE_DB_DRIVER"
	EnvDBDSN    = "SWEETSLICE_DB_DSN"
	EnvDBHost   = "SWEETSLICE_DB_HOST"
	EnvDBUser   = "SWEETSLICE_DB_USER"
	EnvDBName   = "SWEETSLICE_DB_NAME"

	EnvProductsFile     = "SWEETSLICE_PRODUCTS_FILE"
	EnvSimulatedLatency = "SWEETSLICE_SIMULATED_LATENCY"

	EnvDeliveryFee      = "SWEETSLICE_DELIVERY_FEE"
	EnvMessageMaxLength = "SWEETSLICE_MESSAGE_MAX_LENGTH"
	EnvMaxLineQuantity  = "SWEETSLICE_MAX_LINE_QUANTITY"

	EnvAdminToken  = "SWEETSLICE_ADMIN_TOKEN"
	EnvCORSOrigins = "SWEETSLICE_CORS_ALLOWED_ORIGINS"

	EnvJobsInterval = "SWEETSLICE_JOBS_INTERVAL"
	EnvJobsTimeout  = "SWEETSLICE_JOBS_TIMEOUT"
)

var discreteDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
