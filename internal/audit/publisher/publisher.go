// Package publisher delivers audit events to a sink, synchronously by
// default or through a buffered worker when async mode is enabled.
package publisher

import (
	"context"
	"log/slog"
	"sync"

	"partnerhub/internal/audit"
)

// Sink receives audit events. Implementations: the in-memory store and
// the Kafka producer.
type Sink interface {
	Write(ctx context.Context, event audit.Event) error
}

// Publisher fans audit events out to its sink. Audit delivery must
// never fail a registration: sink errors are logged, not returned.
type Publisher struct {
	sink   Sink
	logger *slog.Logger

	buffer chan audit.Event
	wg     sync.WaitGroup
	once   sync.Once
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithAsyncBuffer enables asynchronous delivery through a buffer of the
// given size. When the buffer is full events are dropped, with a log
// line, rather than blocking the request path.
func WithAsyncBuffer(size int) Option {
	return func(p *Publisher) {
		if size > 0 {
			p.buffer = make(chan audit.Event, size)
		}
	}
}

// WithLogger sets the publisher logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// New constructs a Publisher over the sink.
func New(sink Sink, opts ...Option) *Publisher {
	p := &Publisher{sink: sink, logger: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	if p.buffer != nil {
		p.wg.Add(1)
		go p.drain()
	}
	return p
}

// Emit delivers one event. In async mode it enqueues and returns
// immediately.
func (p *Publisher) Emit(ctx context.Context, event audit.Event) {
	if p == nil || p.sink == nil {
		return
	}
	if p.buffer != nil {
		select {
		case p.buffer <- event:
		default:
			p.logger.Warn("audit buffer full, dropping event",
				"action", event.Action,
				"user_id", event.UserID,
			)
		}
		return
	}
	p.write(ctx, event)
}

// Close drains buffered events and stops the worker.
func (p *Publisher) Close() {
	if p == nil || p.buffer == nil {
		return
	}
	p.once.Do(func() {
		close(p.buffer)
	})
	p.wg.Wait()
}

func (p *Publisher) drain() {
	defer p.wg.Done()
	for event := range p.buffer {
		p.write(context.Background(), event)
	}
}

func (p *Publisher) write(ctx context.Context, event audit.Event) {
	if err := p.sink.Write(ctx, event); err != nil {
		p.logger.ErrorContext(ctx, "audit sink write failed",
			"action", event.Action,
			"user_id", event.UserID,
			"error", err,
		)
	}
}
