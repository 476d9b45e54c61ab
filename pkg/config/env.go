package config

const (
	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvStoreDriver = "STORE_DRIVER"

	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPostgresURL         = "POSTGRES_URL"
	EnvPostgresConnTimeout = "POSTGRES_CONN_TIMEOUT"

	EnvCatalogSource = "CATALOG_SOURCE"
	EnvCatalogFile   = "CATALOG_FILE"

	EnvBookingTimeZone = "BOOKING_TIME_ZONE"

	EnvKafkaEnabled           = "KAFKA_ENABLED"
	EnvKafkaReservationsTopic = "KAFKA_RESERVATIONS_TOPIC"
	EnvKafkaDLQTopic          = "KAFKA_DLQ_TOPIC"

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
