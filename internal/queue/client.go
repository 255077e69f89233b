package queue

import "context"

// Client publishes settle events.
type Client interface {
	Send(ctx context.Context, msg Message) error
}
