package events

import "context"

// NoOpPublisher swallows events. Used when no bus is configured.
type NoOpPublisher struct{}

func NewNoOpPublisher() *NoOpPublisher {
	return &NoOpPublisher{}
}

func (p *NoOpPublisher) Publish(ctx context.Context, event Event) error {
	return nil
}

func (p *NoOpPublisher) Close() error {
	return nil
}
