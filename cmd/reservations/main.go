package main

import (
	"context"

	"spacebook/internal/catalog"
	catalogvalidator "spacebook/internal/catalog/validator"
	"spacebook/internal/reservations/events"
	"spacebook/internal/reservations/handler"
	"spacebook/internal/reservations/repository"
	"spacebook/internal/reservations/service"
	"spacebook/internal/reservations/validator"
	"spacebook/pkg/app"
	"spacebook/pkg/config"
	"spacebook/pkg/kafka"
	kafka_config "spacebook/pkg/kafka/config"
	kafkamiddleware "spacebook/pkg/kafka/middleware"
	"spacebook/pkg/model"
)

const ServiceName = "reservations"

func main() {
	cfg := config.Load(ServiceName)

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}

	cfg.LogConfiguration()
	cfg.SetStores()

	cfg.Log.Info("Starting Reservations service")
	serverApp := app.NewApplication(cfg)
	serverApp.OnShutdown(cfg.GracefulShutdown)

	publisher := initPublisher(cfg, serverApp)
	reservationService := initServices(cfg, publisher)

	serverApp.SetApp(
		handler.NewReservationHandler(reservationService, cfg.Log),
		handler.NewHealthHandler(reservationService, cfg.Log),
	)
	serverApp.Run()
}

func initServices(cfg *config.Config, publisher events.Publisher) service.ReservationService {
	spaceCatalog := initCatalog(cfg)
	store := initStore(cfg)

	reservationService := service.NewReservationService(
		store,
		spaceCatalog,
		validator.NewBookingValidator(cfg.Log),
		publisher,
		cfg,
	)

	cfg.Log.Info("Reservation service initialized",
		"store_driver", cfg.StoreDriver,
		"spaces", len(spaceCatalog.ListSpaces()),
	)
	return reservationService
}

func initStore(cfg *config.Config) repository.ReservationStore {
	switch cfg.StoreDriver {
	case config.StoreDriverMongo:
		return repository.NewMongoReservationStore(cfg)
	case config.StoreDriverPostgres:
		return repository.NewPostgresReservationStore(cfg)
	default:
		cfg.Log.Warn("Using in-memory reservation store, reservations are lost on restart")
		return repository.NewMemoryReservationStore()
	}
}

func initCatalog(cfg *config.Config) catalog.Catalog {
	var (
		spaces []model.Space
		err    error
	)

	switch cfg.CatalogSource {
	case config.CatalogSourceMongo:
		source := catalog.NewMongoSource(cfg.Client.Mongo, cfg.MongoDatabaseName, cfg.MongoConnTimeout)
		spaces, err = source.Load(context.Background())
	default:
		spaces, err = catalog.LoadFile(cfg.CatalogFile)
	}
	if err != nil {
		cfg.Log.Fatal("Failed to load space catalog", "source", cfg.CatalogSource, "error", err)
	}

	spaceCatalog, err := catalog.New(spaces, catalogvalidator.NewSpaceValidator(cfg.Log))
	if err != nil {
		cfg.Log.Fatal("Invalid space catalog", "source", cfg.CatalogSource, "error", err)
	}
	return spaceCatalog
}

func initPublisher(cfg *config.Config, serverApp *app.Application) events.Publisher {
	if !cfg.KafkaEnabled {
		cfg.Log.Info("Kafka disabled, reservation events will not be published")
		return events.NewNopPublisher()
	}

	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kafkaCfg.LogConfiguration(cfg.Log)

	producer, err := kafka.NewProducer(kafkaCfg, cfg.Log, cfg.KafkaReservationsTopic, cfg.KafkaDLQTopic)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	if kafkaCfg.EnableMiddleware {
		producer.Use(kafkamiddleware.LoggingProducerMiddleware(cfg.Log))
	}

	serverApp.OnShutdown(func() {
		if err := producer.Close(); err != nil {
			cfg.Log.Error("Failed to close Kafka producer", "error", err)
		}
	})

	return events.NewKafkaPublisher(producer, ServiceName)
}
