package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "groupcal"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort = "8080"

	DefaultUserServiceURL  = "http://localhost:8081"
	DefaultEventServiceURL = "http://localhost:8082"
	DefaultRemoteTimeout   = 5 * time.Second

	DefaultMaxConcurrentResolves = 8

	DefaultBreakerFailureRate      = 0.5
	DefaultBreakerMinRequests      = 5
	DefaultBreakerWindowInterval   = 60 * time.Second
	DefaultBreakerOpenTimeout      = 30 * time.Second
	DefaultBreakerHalfOpenMaxCalls = 1

	// The free-slot search window defaults to the whole calendar day;
	// business hours are opt-in configuration, never inferred.
	DefaultDayWindowStart     = "00:00"
	DefaultDayWindowEnd       = "24:00"
	DefaultMaxRecommendations = 5

	DefaultRateLimitRequests = 10
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultPaginationLimit = 100
)
