package memory

import (
	"context"
	"sync"

	"insight-backend/application/ports"
	"insight-backend/domain/events"
)

// EventPublisher collects published events in memory. It backs local
// development and lets tests assert on what was emitted.
type EventPublisher struct {
	mu        sync.Mutex
	published []events.DomainEvent
}

// NewEventPublisher creates a new in-memory event publisher
func NewEventPublisher() *EventPublisher {
	return &EventPublisher{}
}

// Publish records a single event
func (p *EventPublisher) Publish(ctx context.Context, event events.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, event)
	return nil
}

// PublishBatch records multiple events
func (p *EventPublisher) PublishBatch(ctx context.Context, batch []events.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, batch...)
	return nil
}

// Published returns a copy of everything recorded so far
func (p *EventPublisher) Published() []events.DomainEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]events.DomainEvent, len(p.published))
	copy(out, p.published)
	return out
}

var _ ports.EventPublisher = (*EventPublisher)(nil)
