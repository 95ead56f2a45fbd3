package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvUserServiceURL  = "USER_SERVICE_URL"
	EnvEventServiceURL = "EVENT_SERVICE_URL"
	EnvServiceToken    = "SERVICE_TOKEN"
	EnvRemoteTimeout   = "REMOTE_TIMEOUT"

	EnvMaxConcurrentResolves = "MAX_CONCURRENT_RESOLVES"

	EnvBreakerFailureRate      = "BREAKER_FAILURE_RATE"
	EnvBreakerMinRequests      = "BREAKER_MIN_REQUESTS"
	EnvBreakerWindowInterval   = "BREAKER_WINDOW_INTERVAL"
	EnvBreakerOpenTimeout      = "BREAKER_OPEN_TIMEOUT"
	EnvBreakerHalfOpenMaxCalls = "BREAKER_HALF_OPEN_MAX_CALLS"

	EnvDayWindowStart     = "DAY_WINDOW_START"
	EnvDayWindowEnd       = "DAY_WINDOW_END"
	EnvMaxRecommendations = "MAX_RECOMMENDATIONS"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"
)
