package config

import "time"

const (
	StoreDriverMemory   = "memory"
	StoreDriverMongo    = "mongo"
	StoreDriverPostgres = "postgres"

	CatalogSourceFile  = "file"
	CatalogSourceMongo = "mongo"
)

const (
	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultStoreDriver = StoreDriverMemory

	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "spacebook"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPostgresURL         = "postgres://localhost:5432/spacebook?sslmode=disable"
	DefaultPostgresConnTimeout = 10 * time.Second

	DefaultCatalogSource = CatalogSourceFile
	DefaultCatalogFile   = "catalog.yaml"

	DefaultBookingTimeZone = "UTC"

	DefaultKafkaEnabled           = false
	DefaultKafkaReservationsTopic = "reservations.events"
	DefaultKafkaDLQTopic          = ""

	DefaultRateLimitRequests = 30
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
)
