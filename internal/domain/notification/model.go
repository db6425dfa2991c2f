package notification

import "context"

// Message is a plain-text run alert.
type Message struct {
	Subject string
	Body    string
}

// Notifier delivers run alerts. Callers treat delivery failures as non-fatal.
type Notifier interface {
	Notify(ctx context.Context, msg Message) error
}
