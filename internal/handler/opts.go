package handler

import (
	"context"
	"log/slog"

	"github.com/isometry/cakto-webhook-app/internal/notifier"
	"github.com/isometry/cakto-webhook-app/internal/validation"
)

// WithLogger sets the logger instance for the handler.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		h.logger = logger
	}
}

// WithContext sets the context for the handler.
func WithContext(ctx context.Context) Option {
	return func(h *Handler) {
		h.ctx = ctx
	}
}

// WithLambdaPayloadType sets the lambda payload type for a Handler instance.
func WithLambdaPayloadType(payloadType string) Option {
	return func(h *Handler) {
		h.lambdaPayloadType = payloadType
	}
}

// WithWebhookSecret configures the shared secret. An empty secret disables the check.
func WithWebhookSecret(secret string) Option {
	return func(h *Handler) {
		h.webhookSecret = validation.NewWebhookSecret(secret)
	}
}

// WithNotifier sets the email provider.
func WithNotifier(n notifier.Notifier) Option {
	return func(h *Handler) {
		h.notifier = n
	}
}

// WithComposer sets the message composer (sender and templates).
func WithComposer(c *notifier.Composer) Option {
	return func(h *Handler) {
		h.composer = c
	}
}
