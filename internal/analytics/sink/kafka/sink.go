// Package kafka publishes analytics records to a Kafka topic consumed by the
// tag-management pipeline.
package kafka

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"
	"golang.org/x/crypto/blake2b"

	"leadengine/internal/analytics/events"
	"leadengine/pkg/requestcontext"
)

// DefaultTopic receives every analytics record.
const DefaultTopic = "leadengine.analytics.events"

// Sink produces one Kafka record per analytics event. Records are keyed by a
// hash of the visitor ID so one visitor's funnel lands on one partition in
// push order.
type Sink struct {
	client  *kgo.Client
	timeout time.Duration
}

// Config holds producer settings.
type Config struct {
	Brokers []string
	Topic   string
	// ProduceTimeout bounds each synchronous produce. Zero means 5s.
	ProduceTimeout time.Duration
}

// New connects a producer. The returned sink owns the client; call Close.
func New(cfg Config, opts ...kgo.Opt) (*Sink, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("kafka sink requires at least one broker")
	}
	topic := cfg.Topic
	if topic == "" {
		topic = DefaultTopic
	}
	timeout := cfg.ProduceTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	base := []kgo.Opt{
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.RecordPartitioner(kgo.StickyKeyPartitioner(nil)),
		kgo.ProducerLinger(0),
	}
	client, err := kgo.NewClient(append(base, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	return &Sink{client: client, timeout: timeout}, nil
}

// NewFromClient wraps an existing client. Used by tests that manage the client.
func NewFromClient(client *kgo.Client) *Sink {
	return &Sink{client: client, timeout: 5 * time.Second}
}

// Push produces synchronously so a later Push can never overtake an earlier one.
func (s *Sink) Push(ctx context.Context, record events.Event) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode analytics record: %w", err)
	}

	var key []byte
	if visitor := requestcontext.VisitorID(ctx); !visitor.IsNil() {
		key = PartitionKey(visitor.String())
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	rec := &kgo.Record{
		Key:   key,
		Value: payload,
		Headers: []kgo.RecordHeader{
			{Key: "event", Value: []byte(record.Name())},
		},
	}
	if err := s.client.ProduceSync(ctx, rec).FirstErr(); err != nil {
		return fmt.Errorf("produce analytics record: %w", err)
	}
	return nil
}

// PartitionKey pseudonymizes a visitor ID. Equal IDs map to equal keys, so
// partition affinity holds, but consumers never see the cookie value.
func PartitionKey(visitorID string) []byte {
	sum := blake2b.Sum256([]byte(visitorID))
	return []byte(hex.EncodeToString(sum[:16]))
}

// Ping checks broker connectivity for health reporting.
func (s *Sink) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}

// Close flushes and closes the producer.
func (s *Sink) Close() {
	s.client.Close()
}
