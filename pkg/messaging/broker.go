package messaging

import (
	"context"
)

// Broker publishes cita change events for any listening session. Publishing
// is fire-and-forget: a failed publish is logged, never surfaced to the
// operator.
type Broker interface {
	Publish(ctx context.Context, channel string, message interface{}) error
	Subscribe(ctx context.Context, channel string) (<-chan []byte, error)
	Close() error
}

// Event is the payload published on cita mutations.
type Event struct {
	Type   string      `json:"type"`
	CitaID string      `json:"cita_id"`
	Data   interface{} `json:"data,omitempty"`
}

// NoopBroker drops everything, for deployments without Redis.
type NoopBroker struct{}

func (NoopBroker) Publish(context.Context, string, interface{}) error { return nil }

func (NoopBroker) Subscribe(context.Context, string) (<-chan []byte, error) {
	ch := make(chan []byte)
	close(ch)
	return ch, nil
}

func (NoopBroker) Close() error { return nil }
