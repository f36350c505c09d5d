package kafka

import (
	"time"
)

// Config holds Kafka producer configuration
type Config struct {
	Brokers  []string
	ClientID string

	BatchSize    int
	BatchTimeout time.Duration
	RequiredAcks int // 0: no ack, 1: leader ack, -1: all replicas ack
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Brokers:  []string{"localhost:9092"},
		ClientID: "fulfillment-client",

		BatchSize:    100,
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: -1, // All replicas
	}
}

// Topics contains all fulfillment Kafka topic names
var Topics = struct {
	CartEvents           string
	DeliveryOptionEvents string
	PickupLocationEvents string
}{
	CartEvents:           "fulfillment.cart.events",
	DeliveryOptionEvents: "fulfillment.delivery-options.events",
	PickupLocationEvents: "fulfillment.pickup-locations.events",
}
