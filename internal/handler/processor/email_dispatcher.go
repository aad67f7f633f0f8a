package processor

import (
	"context"
	"log/slog"

	"github.com/isometry/cakto-webhook-app/internal/notifier"
	"github.com/isometry/cakto-webhook-app/internal/webhook"
	"github.com/pkg/errors"
)

type emailDispatcherProcessor struct {
	base
	notifier notifier.Notifier
	composer *notifier.Composer
}

// NewEmailDispatcherProcessor returns the final step: it builds and sends the purchase notification
// and always completes the request with 200, whether or not the email could be built or sent.
func NewEmailDispatcherProcessor(n notifier.Notifier, composer *notifier.Composer, opts ...Option) Processor {
	return &emailDispatcherProcessor{base: newBase("email-dispatcher", opts...), notifier: n, composer: composer}
}

func (p *emailDispatcherProcessor) Name() string { return "email-dispatcher" }

func (p *emailDispatcherProcessor) Process(ctx context.Context, bus *webhook.Bus) (*webhook.Bus, error) {
	if bus.Payload == nil {
		return bus, webhook.NewInternalError("payload not parsed")
	}
	if p.composer == nil {
		return bus, webhook.NewInternalError("no email composer configured")
	}

	var outcome notifier.Outcome
	msg, err := p.composer.Compose(bus.Payload.CustomerEmail, bus.Payload.ProductName)
	if err != nil {
		outcome = notifier.Outcome{Err: errors.Wrap(err, "failed to build notification email")}
		p.logger.Warn("failed to build email", slog.Any("payload", bus.Payload), slog.Any("error", outcome.Err))
	} else {
		outcome = notifier.Deliver(ctx, p.notifier, msg)
		if outcome.Err != nil {
			p.logger.Warn("failed to send email", slog.Any("message", msg), slog.Any("error", outcome.Err))
		} else {
			p.logger.Info("email sent", slog.Any("message", msg))
		}
	}
	bus.Outcome = &outcome

	bus.Halt(webhook.Processed, webhook.ProcessedResponse(bus.Payload, outcome.Sent))
	return bus, nil
}
