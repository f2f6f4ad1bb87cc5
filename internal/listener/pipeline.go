// Package listener contains the generic message-consumption pipeline and the
// per-kind listeners built on it. Each pipeline turns one ordered partitioned
// stream into ordered calls into the domain services, with per-message retry,
// pipeline-level resubscription retry and addressed reply publication.
package listener

import (
	"context"
	"fmt"
	"log"
	"time"
)

// Message is one stream record: the business value plus the partition/offset
// identity assigned by the transport.
type Message[K, V any] struct {
	Key       K
	Value     V
	Partition int32
	Offset    int64
}

// Response carries the reply for one processed message. The reply channel is
// derived from the message's partition and offset, so retried or duplicate
// deliveries of logically different messages never share an address.
type Response[R any] struct {
	Partition      int32
	Offset         int64
	ChannelPattern string
	Value          R
}

func NewResponse[K, V, R any](msg Message[K, V], pattern string, value R) Response[R] {
	return Response[R]{
		Partition:      msg.Partition,
		Offset:         msg.Offset,
		ChannelPattern: pattern,
		Value:          value,
	}
}

// Channel resolves the reply address as "{pattern}:{partition}:{offset}".
func (r Response[R]) Channel() string {
	return fmt.Sprintf("%s:%d:%d", r.ChannelPattern, r.Partition, r.Offset)
}

// Consumer opens a subscription to one ordered partitioned stream.
type Consumer[K, V any] interface {
	Subscribe(ctx context.Context) (MessageStream[K, V], error)
}

// MessageStream yields messages in stream order. Next blocks until a message
// arrives, the stream fails, or ctx is cancelled. Mark tells the stream the
// message is fully resolved; a transport must only ever advance its committed
// position over marked messages, so unresolved ones are redelivered after a
// crash or resubscription.
type MessageStream[K, V any] interface {
	Next(ctx context.Context) (Message[K, V], error)
	Mark(msg Message[K, V])
	Close()
}

// ReplyPublisher publishes a reply payload to an addressed channel.
type ReplyPublisher interface {
	Publish(ctx context.Context, channel string, payload any) error
}

// Backoff computes retry delays as max(Base, retry*Step).
type Backoff struct {
	Base time.Duration
	Step time.Duration
}

func (b Backoff) Delay(retry int) time.Duration {
	d := time.Duration(retry) * b.Step
	if d < b.Base {
		return b.Base
	}
	return d
}

var (
	// DefaultMessageBackoff paces retries of a single failing message.
	DefaultMessageBackoff = Backoff{Base: 60 * time.Second, Step: 2 * time.Second}
	// DefaultSubscribeBackoff paces resubscription after transport failures.
	DefaultSubscribeBackoff = Backoff{Base: 60 * time.Second, Step: 10 * time.Second}
)

// Config assembles a Pipeline from injected strategy functions. Filter and
// OnError are optional; Process is not.
type Config[K, V, R any] struct {
	Name     string
	Consumer Consumer[K, V]
	Replies  ReplyPublisher

	// Filter decides whether a message is handled at all. Messages failing
	// the filter are dropped silently: no processing, no reply, no retry.
	Filter func(Message[K, V]) bool

	// Process executes the domain operation. It must be safe to invoke more
	// than once for the same message: a retry re-executes the full operation.
	Process func(ctx context.Context, msg Message[K, V]) (Response[R], error)

	// OnError observes a failed attempt and the chosen delay. Logging only;
	// it never alters the retry decision.
	OnError func(err error, delay time.Duration, msg Message[K, V])

	MessageBackoff   Backoff
	SubscribeBackoff Backoff
}

// Pipeline handles messages strictly one at a time, in stream order. A failed
// message is retried with backoff until it succeeds, blocking intake of the
// next one, so the blast radius of a failure stays confined to that message.
type Pipeline[K, V, R any] struct {
	name       string
	consumer   Consumer[K, V]
	replies    ReplyPublisher
	filter     func(Message[K, V]) bool
	process    func(ctx context.Context, msg Message[K, V]) (Response[R], error)
	onError    func(err error, delay time.Duration, msg Message[K, V])
	msgBackoff Backoff
	subBackoff Backoff
}

func New[K, V, R any](cfg Config[K, V, R]) *Pipeline[K, V, R] {
	if cfg.MessageBackoff == (Backoff{}) {
		cfg.MessageBackoff = DefaultMessageBackoff
	}
	if cfg.SubscribeBackoff == (Backoff{}) {
		cfg.SubscribeBackoff = DefaultSubscribeBackoff
	}
	return &Pipeline[K, V, R]{
		name:       cfg.Name,
		consumer:   cfg.Consumer,
		replies:    cfg.Replies,
		filter:     cfg.Filter,
		process:    cfg.Process,
		onError:    cfg.OnError,
		msgBackoff: cfg.MessageBackoff,
		subBackoff: cfg.SubscribeBackoff,
	}
}

// Run consumes until ctx is cancelled. Transport failures resubscribe with
// their own unbounded backoff; handler failures retry the current message.
// Cancellation is observed at stream-read and backoff boundaries, so an
// in-flight attempt always finishes naturally.
func (p *Pipeline[K, V, R]) Run(ctx context.Context) error {
	log.Printf("Listener %s has started", p.name)

	failures := 0
	for {
		if ctx.Err() != nil {
			log.Printf("Listener %s has received a stop signal", p.name)
			return ctx.Err()
		}

		stream, err := p.consumer.Subscribe(ctx)
		if err != nil {
			failures++
			delay := p.subBackoff.Delay(failures)
			log.Printf("Listener %s failed to subscribe, retry in %s: %v", p.name, delay, err)
			if !sleep(ctx, delay) {
				return ctx.Err()
			}
			continue
		}

		err = p.consume(ctx, stream, &failures)
		stream.Close()

		if ctx.Err() != nil {
			log.Printf("Listener %s has received a stop signal", p.name)
			return ctx.Err()
		}

		failures++
		delay := p.subBackoff.Delay(failures)
		log.Printf("Listener %s lost its stream, resubscribing in %s: %v", p.name, delay, err)
		if !sleep(ctx, delay) {
			return ctx.Err()
		}
	}
}

func (p *Pipeline[K, V, R]) consume(ctx context.Context, stream MessageStream[K, V], failures *int) error {
	for {
		msg, err := stream.Next(ctx)
		if err != nil {
			return err
		}
		*failures = 0

		if p.filter != nil && !p.filter(msg) {
			stream.Mark(msg)
			continue
		}
		if err := p.handle(ctx, msg); err != nil {
			return err
		}
		stream.Mark(msg)
	}
}

// handle resolves one message fully, retrying the whole operation on every
// failure. It returns an error only on cancellation.
func (p *Pipeline[K, V, R]) handle(ctx context.Context, msg Message[K, V]) error {
	for retry := 0; ; {
		response, err := p.process(ctx, msg)
		if err == nil {
			p.publish(ctx, response)
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		retry++
		delay := p.msgBackoff.Delay(retry)
		if p.onError != nil {
			p.onError(err, delay, msg)
		}
		if !sleep(ctx, delay) {
			return ctx.Err()
		}
	}
}

// publish sends the reply after the domain operation has committed. A publish
// failure is logged and never re-triggers the mutation: processing is
// at-least-once, reply delivery is at-most-once best effort.
func (p *Pipeline[K, V, R]) publish(ctx context.Context, response Response[R]) {
	if err := p.replies.Publish(ctx, response.Channel(), response.Value); err != nil {
		log.Printf("Listener %s failed to publish a reply to '%s': %v", p.name, response.Channel(), err)
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
