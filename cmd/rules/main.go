package main

import (
	"pawresort/internal/pricing/handler"
	ruleshandler "pawresort/internal/rules/handler"
	"pawresort/internal/rules/repository"
	"pawresort/internal/rules/service"
	"pawresort/internal/rules/validator"
	"pawresort/pkg/app"
	"pawresort/pkg/config"
	"pawresort/pkg/kafka"
	kafka_config "pawresort/pkg/kafka/config"
	kafka_middleware "pawresort/pkg/kafka/middleware"
)

const ServiceName = "rules"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting pricing catalog service")

	producer := initProducer(cfg)
	defer producer.Close()

	catalogHandler := initServices(cfg, producer)
	healthHandler := handler.NewHealthHandler(cfg.Client.Mongo, cfg.Log)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(catalogHandler, healthHandler)
	serverApp.Run()
}

func initProducer(cfg *config.Config) *kafka.Producer {
	kafkaCfg := kafka_config.Load()
	kafkaCfg.LogConfiguration(cfg.Log.Info)

	producer, err := kafka.NewProducer(kafkaCfg, service.TopicCatalogChanged, service.TopicCatalogChangedDLQ)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	if kafkaCfg.EnableMiddleware {
		producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))
	}
	return producer
}

func initServices(cfg *config.Config, producer *kafka.Producer) *ruleshandler.CatalogHandler {
	ruleRepo := repository.NewMongoRuleRepository(cfg)
	holidayRepo := repository.NewMongoHolidayRepository(cfg)
	suiteConfigRepo := repository.NewMongoSuiteConfigRepository(cfg)

	ruleService := service.NewRuleService(ruleRepo, validator.NewRuleValidator(), producer, cfg)
	holidayService := service.NewHolidayService(holidayRepo, validator.NewHolidayValidator(), producer, cfg)
	suiteConfigService := service.NewSuiteConfigService(suiteConfigRepo, validator.NewSuiteConfigValidator(), producer, cfg)

	cfg.Log.Info("Catalog services initialized", "database", cfg.MongoDatabaseName)

	return ruleshandler.NewCatalogHandler(
		ruleshandler.NewRuleHandler(ruleService, cfg.Log),
		ruleshandler.NewHolidayHandler(holidayService, cfg.Log),
		ruleshandler.NewSuiteConfigHandler(suiteConfigService, cfg.Log),
	)
}
