package processor

import (
	"context"
	"log/slog"

	"github.com/isometry/cakto-webhook-app/internal/validation"
	"github.com/isometry/cakto-webhook-app/internal/webhook"
)

type secretValidatorProcessor struct {
	base
	secret *validation.WebhookSecret
}

// NewSecretValidatorProcessor returns the step that applies the shared-secret policy.
// With no secret configured every request passes, and a warning is logged each time.
func NewSecretValidatorProcessor(secret *validation.WebhookSecret, opts ...Option) Processor {
	return &secretValidatorProcessor{base: newBase("secret-validator", opts...), secret: secret}
}

func (p *secretValidatorProcessor) Name() string { return "secret-validator" }

func (p *secretValidatorProcessor) Process(_ context.Context, bus *webhook.Bus) (*webhook.Bus, error) {
	if bus.Payload == nil {
		return bus, webhook.NewInternalError("payload not parsed")
	}

	switch policy := p.secret.Check(bus.Payload.Secret); policy {
	case validation.SecretUnconfigured:
		p.logger.Warn("webhook secret is not configured, accepting request without validation")
	case validation.SecretMatched:
		p.logger.Debug("webhook secret matched")
	case validation.SecretMismatched:
		p.logger.Warn("rejecting request", "reason", "invalid secret", slog.Bool("secretProvided", bus.Payload.Secret != nil))
		bus.Halt(webhook.Rejected, webhook.InvalidSecretResponse())
	default:
		return bus, webhook.NewInternalErrorf("unhandled secret policy: %v", policy)
	}
	return bus, nil
}
