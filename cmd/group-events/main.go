package main

import (
	"groupcal/internal/groupevents/handler"
	"groupcal/internal/groupevents/notifier"
	"groupcal/internal/groupevents/remote"
	"groupcal/internal/groupevents/repository"
	"groupcal/internal/groupevents/service"
	"groupcal/internal/groupevents/validator"
	"groupcal/pkg/app"
	"groupcal/pkg/client"
	"groupcal/pkg/config"
	kafka_config "groupcal/pkg/kafka/config"
)

const ServiceName = "group-events"

func main() {
	cfg := config.Load(ServiceName)

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}

	// Log all configuration values
	cfg.LogConfiguration()

	cfg.Log.Info("Starting Group Events service")
	cfg.SetMongo()

	eventNotifier, err := notifier.New(kafka_config.Load(), cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to initialize notifier", "error", err)
	}

	eventService, recommendationService := initServices(cfg, eventNotifier)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewGroupEventHandler(eventService, recommendationService, cfg.Log), eventNotifier)
	serverApp.Run()
}

func initServices(cfg *config.Config, eventNotifier notifier.EventNotifier) (service.GroupEventService, service.RecommendationService) {
	groupEventValidator := validator.NewGroupEventValidator(cfg.Log)
	groupEventRepo := repository.NewMongoGroupEventRepository(cfg)

	breakerSettings := remote.BreakerSettings{
		FailureRate:      cfg.BreakerFailureRate,
		MinRequests:      cfg.BreakerMinRequests,
		WindowInterval:   cfg.BreakerWindowInterval,
		OpenTimeout:      cfg.BreakerOpenTimeout,
		HalfOpenMaxCalls: cfg.BreakerHalfOpenMaxCalls,
	}
	resolver := remote.NewResilientResolver(
		client.NewUserClient(cfg.UserServiceURL, cfg.ServiceToken, cfg.RemoteTimeout),
		breakerSettings,
		cfg.Log,
	)
	fetcher := remote.NewResilientFetcher(
		client.NewEventClient(cfg.EventServiceURL, cfg.ServiceToken, cfg.RemoteTimeout),
		breakerSettings,
		cfg.Log,
	)

	eventService := service.NewGroupEventService(
		groupEventRepo,
		resolver,
		eventNotifier,
		groupEventValidator,
		cfg,
	)
	recommendationService := service.NewRecommendationService(
		groupEventRepo,
		fetcher,
		eventNotifier,
		groupEventValidator,
		cfg,
	)

	cfg.Log.Info("Group event services initialized", "database", cfg.MongoDatabaseName)
	return eventService, recommendationService
}
