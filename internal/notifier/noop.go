package notifier

import (
	"context"
	"log/slog"

	"github.com/isometry/cakto-webhook-app/internal/helpers"
)

// Noop logs messages instead of sending them.
type Noop struct {
	logger *slog.Logger
}

// NewNoop returns a Notifier that only logs.
func NewNoop(logger *slog.Logger) *Noop {
	if logger == nil {
		logger = helpers.NewNoopLogger()
	}
	return &Noop{logger: logger}
}

// Send implements Notifier.
func (n *Noop) Send(_ context.Context, msg Message) error {
	n.logger.Info("email delivery disabled, dropping message", slog.Any("message", msg))
	return nil
}
