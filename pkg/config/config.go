package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"time"

	"groupcal/pkg/client"
	"groupcal/pkg/interval"
	"groupcal/pkg/logger"
)

type Config struct {
	MongoURI          string
	MongoDatabaseName string
	MongoConnTimeout  time.Duration

	Port string

	UserServiceURL  string
	EventServiceURL string
	ServiceToken    string
	RemoteTimeout   time.Duration

	MaxConcurrentResolves int

	BreakerFailureRate      float64
	BreakerMinRequests      int
	BreakerWindowInterval   time.Duration
	BreakerOpenTimeout      time.Duration
	BreakerHalfOpenMaxCalls int

	DayWindowStart     string
	DayWindowEnd       string
	MaxRecommendations int

	RateLimitRequests int
	RateLimitWindow   time.Duration

	RequestTimeout time.Duration
	IdempotencyTTL time.Duration
	MaxRequestSize int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	Log    *logger.Logger
	Client *client.Client
}

func Load(serviceName string) *Config {
	cfg := &Config{
		MongoURI:          getEnvStr(EnvMongoURI, DefaultMongoURI),
		MongoDatabaseName: getEnvStr(EnvMongoDatabaseName, DefaultMongoDatabaseName),
		MongoConnTimeout:  getEnvDuration(EnvMongoConnTimeout, DefaultMongoConnTimeout),

		Port: getEnvStr(EnvPort, DefaultPort),

		UserServiceURL:  getEnvStr(EnvUserServiceURL, DefaultUserServiceURL),
		EventServiceURL: getEnvStr(EnvEventServiceURL, DefaultEventServiceURL),
		ServiceToken:    getEnvStr(EnvServiceToken, ""),
		RemoteTimeout:   getEnvDuration(EnvRemoteTimeout, DefaultRemoteTimeout),

		MaxConcurrentResolves: getEnvNum(EnvMaxConcurrentResolves, DefaultMaxConcurrentResolves),

		BreakerFailureRate:      getEnvFloat(EnvBreakerFailureRate, DefaultBreakerFailureRate),
		BreakerMinRequests:      getEnvNum(EnvBreakerMinRequests, DefaultBreakerMinRequests),
		BreakerWindowInterval:   getEnvDuration(EnvBreakerWindowInterval, DefaultBreakerWindowInterval),
		BreakerOpenTimeout:      getEnvDuration(EnvBreakerOpenTimeout, DefaultBreakerOpenTimeout),
		BreakerHalfOpenMaxCalls: getEnvNum(EnvBreakerHalfOpenMaxCalls, DefaultBreakerHalfOpenMaxCalls),

		DayWindowStart:     getEnvStr(EnvDayWindowStart, DefaultDayWindowStart),
		DayWindowEnd:       getEnvStr(EnvDayWindowEnd, DefaultDayWindowEnd),
		MaxRecommendations: getEnvNum(EnvMaxRecommendations, DefaultMaxRecommendations),

		RateLimitRequests: getEnvNum(EnvRateLimitRequests, DefaultRateLimitRequests),
		RateLimitWindow:   getEnvDuration(EnvRateLimitWindow, DefaultRateLimitWindow),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		IdempotencyTTL: getEnvDuration(EnvIdempotencyTTL, DefaultIdempotencyTTL),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		Log: logger.New(logger.Config{
			Level:     getEnvStr(EnvLogLevel, logger.INFO),
			Format:    logger.JSON,
			AddSource: true,
			Service:   serviceName,
		}),
		Client: client.NewClient(),
	}

	return cfg
}

func (cfg *Config) SetMongo() {
	cfg.Client.SetMongo(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
}

// DayWindow returns the configured free-slot search window in minutes from
// midnight. Validate checks the bounds at startup, so this never fails later.
func (cfg *Config) DayWindow() interval.Interval {
	start, _ := interval.ParseClock(cfg.DayWindowStart)
	end, _ := interval.ParseClock(cfg.DayWindowEnd)
	return interval.Interval{Start: start, End: end}
}

func (cfg *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	if cfg.MongoURI == "" {
		errors = append(errors, "MongoURI cannot be empty")
	} else if !regexp.MustCompile(`^mongodb(\+srv)?://`).MatchString(cfg.MongoURI) {
		errors = append(errors, fmt.Sprintf("MongoURI must start with 'mongodb://' or 'mongodb+srv://', got: %s", cfg.MongoURI))
	}
	if cfg.MongoDatabaseName == "" {
		errors = append(errors, "MongoDatabaseName cannot be empty")
	}
	if cfg.MongoConnTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("MongoConnTimeout must be positive, got: %s", cfg.MongoConnTimeout))
	}

	urlRegex := regexp.MustCompile(`^https?://`)
	if !urlRegex.MatchString(cfg.UserServiceURL) {
		errors = append(errors, fmt.Sprintf("UserServiceURL must be an http(s) URL, got: %s", cfg.UserServiceURL))
	}
	if !urlRegex.MatchString(cfg.EventServiceURL) {
		errors = append(errors, fmt.Sprintf("EventServiceURL must be an http(s) URL, got: %s", cfg.EventServiceURL))
	}
	if cfg.RemoteTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("RemoteTimeout must be positive, got: %s", cfg.RemoteTimeout))
	}
	if cfg.MaxConcurrentResolves <= 0 {
		errors = append(errors, fmt.Sprintf("MaxConcurrentResolves must be positive, got: %d", cfg.MaxConcurrentResolves))
	}

	if cfg.BreakerFailureRate <= 0 || cfg.BreakerFailureRate > 1 {
		errors = append(errors, fmt.Sprintf("BreakerFailureRate must be in (0, 1], got: %g", cfg.BreakerFailureRate))
	}
	if cfg.BreakerMinRequests <= 0 {
		errors = append(errors, fmt.Sprintf("BreakerMinRequests must be positive, got: %d", cfg.BreakerMinRequests))
	}
	if cfg.BreakerWindowInterval <= 0 {
		errors = append(errors, fmt.Sprintf("BreakerWindowInterval must be positive, got: %s", cfg.BreakerWindowInterval))
	}
	if cfg.BreakerOpenTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("BreakerOpenTimeout must be positive, got: %s", cfg.BreakerOpenTimeout))
	}
	if cfg.BreakerHalfOpenMaxCalls <= 0 {
		errors = append(errors, fmt.Sprintf("BreakerHalfOpenMaxCalls must be positive, got: %d", cfg.BreakerHalfOpenMaxCalls))
	}

	windowStart, startErr := interval.ParseClock(cfg.DayWindowStart)
	if startErr != nil {
		errors = append(errors, fmt.Sprintf("DayWindowStart must be in HH:MM format, got: %s", cfg.DayWindowStart))
	}
	windowEnd, endErr := interval.ParseClock(cfg.DayWindowEnd)
	if endErr != nil {
		errors = append(errors, fmt.Sprintf("DayWindowEnd must be in HH:MM format (24:00 allowed), got: %s", cfg.DayWindowEnd))
	}
	if startErr == nil && endErr == nil && windowStart >= windowEnd {
		errors = append(errors, fmt.Sprintf("DayWindowStart (%s) must be before DayWindowEnd (%s)", cfg.DayWindowStart, cfg.DayWindowEnd))
	}
	if cfg.MaxRecommendations <= 0 {
		errors = append(errors, fmt.Sprintf("MaxRecommendations must be positive, got: %d", cfg.MaxRecommendations))
	}

	if cfg.RateLimitRequests <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitRequests must be positive, got: %d", cfg.RateLimitRequests))
	}
	if cfg.RateLimitWindow <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitWindow must be positive, got: %s", cfg.RateLimitWindow))
	}
	if cfg.RequestTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("RequestTimeout must be positive, got: %s", cfg.RequestTimeout))
	}
	if cfg.IdempotencyTTL <= 0 {
		errors = append(errors, fmt.Sprintf("IdempotencyTTL must be positive, got: %s", cfg.IdempotencyTTL))
	}
	if cfg.MaxRequestSize <= 0 {
		errors = append(errors, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}
	if cfg.ReadTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ReadTimeout must be positive, got: %s", cfg.ReadTimeout))
	}
	if cfg.WriteTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("WriteTimeout must be positive, got: %s", cfg.WriteTimeout))
	}
	if cfg.IdleTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("IdleTimeout must be positive, got: %s", cfg.IdleTimeout))
	}
	if cfg.ShutdownTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ShutdownTimeout must be positive, got: %s", cfg.ShutdownTimeout))
	}

	if len(errors) > 0 {
		errMsg := "Configuration validation failed:\n"
		for i, err := range errors {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, err)
		}
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"mongo_uri", redactMongoURI(cfg.MongoURI),
		"mongo_database", cfg.MongoDatabaseName,
		"mongo_conn_timeout", cfg.MongoConnTimeout,
		"port", cfg.Port,
		"user_service_url", cfg.UserServiceURL,
		"event_service_url", cfg.EventServiceURL,
		"service_token_set", cfg.ServiceToken != "",
		"remote_timeout", cfg.RemoteTimeout,
		"max_concurrent_resolves", cfg.MaxConcurrentResolves,
		"breaker_failure_rate", cfg.BreakerFailureRate,
		"breaker_min_requests", cfg.BreakerMinRequests,
		"breaker_window_interval", cfg.BreakerWindowInterval,
		"breaker_open_timeout", cfg.BreakerOpenTimeout,
		"breaker_half_open_max_calls", cfg.BreakerHalfOpenMaxCalls,
		"day_window_start", cfg.DayWindowStart,
		"day_window_end", cfg.DayWindowEnd,
		"max_recommendations", cfg.MaxRecommendations,
		"rate_limit_requests", cfg.RateLimitRequests,
		"rate_limit_window", cfg.RateLimitWindow,
		"request_timeout", cfg.RequestTimeout,
		"idempotency_ttl", cfg.IdempotencyTTL,
		"max_request_size", cfg.MaxRequestSize,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
	)
}

func redactMongoURI(uri string) string {
	credentialRegex := regexp.MustCompile(`(mongodb(\+srv)?://)[^:]+:[^@]+@`)
	return credentialRegex.ReplaceAllString(uri, "${1}***:***@")
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func NormalizePaginationLimit(limit int) int {
	if limit <= 0 {
		limit = 10
	} else if limit > DefaultPaginationLimit {
		limit = DefaultPaginationLimit
	}
	return limit
}

func NormalizeOffset(offset int64) int64 {
	return max(0, offset)
}
