package main

import (
	"pawresort/internal/pricing/handler"
	pricingservice "pawresort/internal/pricing/service"
	pricingvalidator "pawresort/internal/pricing/validator"
	rulesrepo "pawresort/internal/rules/repository"
	reservationsrepo "pawresort/internal/reservations/repository"
	occupancy "pawresort/internal/reservations/service"
	"pawresort/pkg/app"
	"pawresort/pkg/config"
	"pawresort/pkg/kafka"
	kafka_config "pawresort/pkg/kafka/config"
	kafka_middleware "pawresort/pkg/kafka/middleware"
)

const ServiceName = "pricing"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting pricing service")

	producer := initProducer(cfg)
	defer producer.Close()

	pricingHandler := initServices(cfg, producer)
	healthHandler := handler.NewHealthHandler(cfg.Client.Mongo, cfg.Log)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(pricingHandler, healthHandler)
	serverApp.Run()
}

func initProducer(cfg *config.Config) *kafka.Producer {
	kafkaCfg := kafka_config.Load()
	kafkaCfg.LogConfiguration(cfg.Log.Info)

	producer, err := kafka.NewProducer(kafkaCfg, pricingservice.TopicQuoteComputed, pricingservice.TopicQuoteComputedDLQ)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	if kafkaCfg.EnableMiddleware {
		producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))
	}
	return producer
}

func initServices(cfg *config.Config, producer *kafka.Producer) *handler.PricingHandler {
	occupancyService := occupancy.NewOccupancyService(
		reservationsrepo.NewMongoReservationRepository(cfg),
		reservationsrepo.NewMongoResourceRepository(cfg),
		cfg,
	)

	pricingService := pricingservice.NewPricingService(
		rulesrepo.NewMongoRuleRepository(cfg),
		rulesrepo.NewMongoHolidayRepository(cfg),
		rulesrepo.NewMongoSuiteConfigRepository(cfg),
		occupancyService,
		pricingvalidator.NewQuoteValidator(),
		producer,
		cfg,
	)

	cfg.Log.Info("Pricing service initialized", "database", cfg.MongoDatabaseName)
	return handler.NewPricingHandler(pricingService, cfg.Log)
}
