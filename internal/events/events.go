// Package events emits service events for downstream consumers (the
// platform backend subscribes to fraud flags, for example). Publishing is
// best-effort from the caller's perspective: handlers log failures but
// never fail a request over them.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"

	"gigmatch/internal/retry"
)

// EventType enumerates emitted event categories.
type EventType string

const (
	TypeFraudFlagged EventType = "fraud.flagged"
)

// Event is one emitted record.
type Event struct {
	ID        uuid.UUID `json:"id"`
	Type      EventType `json:"type"`
	Payload   []byte    `json:"payload"`
	EmittedAt time.Time `json:"emitted_at"`
}

// Publisher delivers events to the bus.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// PublishWithRetry publishes with exponential backoff between attempts.
func PublishWithRetry(ctx context.Context, p Publisher, event Event, attempts int, base time.Duration) error {
	if attempts <= 0 {
		attempts = 1
	}
	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		if err = p.Publish(ctx, event); err == nil {
			return nil
		}
		if attempt == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retry.ExponentialBackoff(attempt, base, 5*time.Second)):
		}
	}
	return err
}
