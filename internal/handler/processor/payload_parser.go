package processor

import (
	"context"
	"log/slog"

	"github.com/isometry/cakto-webhook-app/internal/webhook"
)

type payloadParserProcessor struct {
	base
}

// NewPayloadParserProcessor returns the step that extracts the Cakto payload from the request body.
func NewPayloadParserProcessor(opts ...Option) Processor {
	return &payloadParserProcessor{base: newBase("payload-parser", opts...)}
}

func (p *payloadParserProcessor) Name() string { return "payload-parser" }

func (p *payloadParserProcessor) Process(_ context.Context, bus *webhook.Bus) (*webhook.Bus, error) {
	bus.Payload = webhook.ParsePayload(bus.Request.Body)
	p.logger.Debug("parsed payload", slog.Any("payload", bus.Payload))
	return bus, nil
}
