package kafka

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/segmentio/kafka-go"
)

// ProducerOption configures Producer.
type ProducerOption func(*producerConfig)

type producerConfig struct {
	brokers      []string
	requiredAcks int
	compression  string
	maxAttempts  int
	writeTimeout time.Duration
	batchTimeout time.Duration
	async        bool
	hashByKey    bool
	registerer   prometheus.Registerer
}

// Snapshots are small and infrequent, so batches are flushed quickly rather
// than filled.
func defaultProducerConfig() *producerConfig {
	return &producerConfig{
		requiredAcks: 1,
		compression:  "snappy",
		maxAttempts:  3,
		writeTimeout: 10 * time.Second,
		batchTimeout: 50 * time.Millisecond,
		hashByKey:    true,
	}
}

func (c *producerConfig) validate() error {
	if len(c.brokers) == 0 {
		return fmt.Errorf("brokers are required")
	}
	if c.requiredAcks < -1 || c.requiredAcks > 1 {
		return fmt.Errorf("required acks must be -1, 0 or 1, got %d", c.requiredAcks)
	}
	if _, ok := compressions[c.compression]; !ok {
		return fmt.Errorf("unknown compression %q", c.compression)
	}
	return nil
}

var compressions = map[string]kafka.Compression{
	"none":   0,
	"gzip":   kafka.Gzip,
	"snappy": kafka.Snappy,
	"lz4":    kafka.Lz4,
	"zstd":   kafka.Zstd,
}

func WithBrokers(brokers []string) ProducerOption {
	return func(c *producerConfig) { c.brokers = brokers }
}

// WithCompression takes none, gzip, snappy, lz4 or zstd.
func WithCompression(compression string) ProducerOption {
	return func(c *producerConfig) { c.compression = compression }
}

// WithRequiredAcks sets required acknowledgements (-1 = all).
func WithRequiredAcks(acks int) ProducerOption {
	return func(c *producerConfig) { c.requiredAcks = acks }
}

func WithWriteTimeout(d time.Duration) ProducerOption {
	return func(c *producerConfig) {
		if d > 0 {
			c.writeTimeout = d
		}
	}
}

// WithBatchTimeout caps how long a partial batch waits before it is sent.
func WithBatchTimeout(d time.Duration) ProducerOption {
	return func(c *producerConfig) {
		if d > 0 {
			c.batchTimeout = d
		}
	}
}

// WithAsync makes Publish return before the broker acknowledges.
func WithAsync(async bool) ProducerOption {
	return func(c *producerConfig) { c.async = async }
}

// WithHashByKey keeps every message for one key (a symbol) on one partition.
func WithHashByKey(hash bool) ProducerOption {
	return func(c *producerConfig) { c.hashByKey = hash }
}

// WithRegisterer sets where producer metrics are registered. Nil disables
// them.
func WithRegisterer(reg prometheus.Registerer) ProducerOption {
	return func(c *producerConfig) { c.registerer = reg }
}
