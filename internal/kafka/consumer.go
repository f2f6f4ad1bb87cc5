// Package kafka adapts a franz-go consumer to the listener stream contract.
// One Consumer reads one topic; ordering within a partition is the broker's.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/distributedbanking/processing/internal/listener"
)

// Config identifies the brokers and this node's consumer group.
type Config struct {
	Brokers  []string
	Group    string
	ClientID string
}

// Consumer subscribes to a single topic and decodes record values as JSON
// into V.
type Consumer[V any] struct {
	cfg   Config
	topic string
}

func NewConsumer[V any](cfg Config, topic string) *Consumer[V] {
	return &Consumer[V]{cfg: cfg, topic: topic}
}

// Subscribe opens a fresh client for this topic. The listener pipeline calls
// it again, with backoff, whenever the stream fails.
func (c *Consumer[V]) Subscribe(ctx context.Context) (listener.MessageStream[string, V], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Offsets are committed from marked records only: a record is marked once
	// the pipeline resolves it, so anything still buffered or mid-retry is
	// redelivered after a crash or resubscription instead of being skipped.
	client, err := kgo.NewClient(
		kgo.SeedBrokers(c.cfg.Brokers...),
		kgo.ConsumerGroup(c.cfg.Group),
		kgo.ConsumeTopics(c.topic),
		kgo.ClientID(c.cfg.ClientID),
		kgo.AutoCommitMarks(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka client for topic '%s': %w", c.topic, err)
	}
	return &stream[V]{client: client, topic: c.topic}, nil
}

type stream[V any] struct {
	client *kgo.Client
	topic  string
	buffer []*kgo.Record

	// inFlight is the record most recently handed to the pipeline, held back
	// from committing until Mark reports it resolved.
	inFlight *kgo.Record
}

// Next returns the next record in stream order. Records whose value does not
// decode are malformed input: they are dropped with a log line, never retried
// and never replied to; dropping resolves them, so they commit immediately.
func (s *stream[V]) Next(ctx context.Context) (listener.Message[string, V], error) {
	var msg listener.Message[string, V]

	for {
		for len(s.buffer) == 0 {
			fetches := s.client.PollFetches(ctx)
			if errs := fetches.Errors(); len(errs) > 0 {
				return msg, fmt.Errorf("kafka fetch on topic '%s': %w", errs[0].Topic, errs[0].Err)
			}
			fetches.EachRecord(func(record *kgo.Record) {
				s.buffer = append(s.buffer, record)
			})
		}

		record := s.buffer[0]
		s.buffer = s.buffer[1:]

		var value V
		if err := json.Unmarshal(record.Value, &value); err != nil {
			log.Printf("Dropping malformed message at %s:%d:%d: %v",
				record.Topic, record.Partition, record.Offset, err)
			s.client.MarkCommitRecords(record)
			continue
		}

		s.inFlight = record
		return listener.Message[string, V]{
			Key:       string(record.Key),
			Value:     value,
			Partition: record.Partition,
			Offset:    record.Offset,
		}, nil
	}
}

// Mark releases the in-flight record for commit once the pipeline has fully
// resolved it.
func (s *stream[V]) Mark(msg listener.Message[string, V]) {
	if s.inFlight != nil && s.inFlight.Partition == msg.Partition && s.inFlight.Offset == msg.Offset {
		s.client.MarkCommitRecords(s.inFlight)
		s.inFlight = nil
	}
}

func (s *stream[V]) Close() {
	s.client.Close()
}
