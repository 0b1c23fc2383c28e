package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvDefaultCurrency     = "DEFAULT_CURRENCY"
	EnvDefaultRulePriority = "DEFAULT_RULE_PRIORITY"
	EnvMinRulePriority     = "MIN_RULE_PRIORITY"
	EnvMaxRulePriority     = "MAX_RULE_PRIORITY"

	EnvMaxStayNights             = "MAX_STAY_NIGHTS"
	EnvMaxAvailabilityWindowDays = "MAX_AVAILABILITY_WINDOW_DAYS"
)
