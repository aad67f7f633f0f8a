package processor

import (
	"context"
	"log/slog"

	"github.com/isometry/cakto-webhook-app/internal/webhook"
)

type eventFilterProcessor struct {
	base
}

// NewEventFilterProcessor returns the step that acknowledges and skips every event other than
// purchase_approved.
func NewEventFilterProcessor(opts ...Option) Processor {
	return &eventFilterProcessor{base: newBase("event-filter", opts...)}
}

func (p *eventFilterProcessor) Name() string { return "event-filter" }

func (p *eventFilterProcessor) Process(_ context.Context, bus *webhook.Bus) (*webhook.Bus, error) {
	if bus.Payload == nil {
		return bus, webhook.NewInternalError("payload not parsed")
	}
	if !bus.Payload.IsPurchaseApproved() {
		p.logger.Info("ignoring event", slog.String("event", bus.Payload.Event))
		bus.Halt(webhook.Skipped, webhook.SkippedResponse(bus.Payload.Event))
	}
	return bus, nil
}
