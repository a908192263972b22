package kafka

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProducer_RequiresBrokers(t *testing.T) {
	_, err := NewProducer()
	assert.Error(t, err)
}

func TestNewProducer_RejectsBadSettings(t *testing.T) {
	brokers := WithBrokers([]string{"localhost:9092"})

	_, err := NewProducer(brokers, WithCompression("brotli"))
	assert.Error(t, err)

	_, err = NewProducer(brokers, WithRequiredAcks(2))
	assert.Error(t, err)
}

func TestNewProducer_Defaults(t *testing.T) {
	p, err := NewProducer(WithBrokers([]string{"localhost:9092"}))
	require.NoError(t, err)
	defer p.Close()

	assert.Equal(t, kafka.Snappy, p.writer.Compression)
	assert.Equal(t, kafka.RequireOne, p.writer.RequiredAcks)
	assert.Equal(t, 50*time.Millisecond, p.writer.BatchTimeout)
	assert.False(t, p.writer.Async)
	assert.Nil(t, p.metrics)
}

func TestNewProducer_AppliesOptions(t *testing.T) {
	p, err := NewProducer(
		WithBrokers([]string{"localhost:9092"}),
		WithCompression("zstd"),
		WithRequiredAcks(-1),
		WithAsync(true),
		WithBatchTimeout(time.Second),
		WithRegisterer(prometheus.NewRegistry()),
	)
	require.NoError(t, err)
	defer p.Close()

	assert.Equal(t, kafka.Zstd, p.writer.Compression)
	assert.Equal(t, kafka.RequireAll, p.writer.RequiredAcks)
	assert.True(t, p.writer.Async)
	assert.Equal(t, time.Second, p.writer.BatchTimeout)
	assert.IsType(t, &kafka.Hash{}, p.writer.Balancer)
	assert.NotNil(t, p.metrics)
}

func TestEncodeValue(t *testing.T) {
	b, err := encodeValue("raw")
	require.NoError(t, err)
	assert.Equal(t, "raw", string(b))

	b, err = encodeValue(map[string]int{"a": 1})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(b))

	_, err = encodeValue(func() {})
	assert.Error(t, err)
}

func TestProducerMetrics_NilSafe(t *testing.T) {
	var m *producerMetrics
	assert.NotPanics(t, func() { m.observe("t", "snappy", 10, time.Millisecond, nil) })
}
