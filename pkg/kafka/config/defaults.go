package kafka_config

import "time"

// Default values for Kafka configuration
const (
	DefaultKafkaEnabled         = false
	DefaultKafkaBrokers         = "localhost:9092"
	DefaultProducerMaxAttempts  = 3
	DefaultProducerBatchTimeout = 10 * time.Millisecond
	DefaultProducerRequireAcks  = -1 // all replicas
	DefaultProducerCompression  = "snappy"
)
