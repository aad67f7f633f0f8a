// Package notifier delivers the purchase notification email through a pluggable provider.
package notifier

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"
)

// Provider names.
const (
	ProviderSMTP = "smtp"
	ProviderSES  = "ses"
	ProviderNoop = "noop"
)

// Message is a single notification email.
type Message struct {
	From    string
	To      string
	Subject string
	Text    string
	HTML    string
}

// LogValue implements slog.LogValuer. Bodies are left out.
func (m Message) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("to", m.To),
		slog.String("subject", m.Subject),
	)
}

// Notifier sends a Message. Implementations may fail independently of the webhook.
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}

// Outcome is the result of a best-effort delivery attempt.
type Outcome struct {
	Sent bool
	Err  error
}

// Deliver attempts to send msg and reports the result as an Outcome. It never panics: a panic
// raised by the provider is converted into a failed Outcome.
func Deliver(ctx context.Context, n Notifier, msg Message) (out Outcome) {
	if n == nil {
		return Outcome{Err: errors.New("no notifier configured")}
	}
	defer func() {
		if r := recover(); r != nil {
			out = Outcome{Err: errors.Errorf("notifier panicked: %v", r)}
		}
	}()
	if err := n.Send(ctx, msg); err != nil {
		return Outcome{Err: err}
	}
	return Outcome{Sent: true}
}
