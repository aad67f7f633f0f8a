// Package handler implements the Cakto webhook route: method dispatch, the POST pipeline and the
// last-resort conversion of failures into a 500 response.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/isometry/cakto-webhook-app/internal/handler/processor"
	"github.com/isometry/cakto-webhook-app/internal/helpers"
	"github.com/isometry/cakto-webhook-app/internal/models"
	"github.com/isometry/cakto-webhook-app/internal/notifier"
	"github.com/isometry/cakto-webhook-app/internal/validation"
	"github.com/isometry/cakto-webhook-app/internal/webhook"
	"github.com/pkg/errors"
)

// Option is a functional option used to configure a Handler.
type Option func(*Handler)

// Handler turns one inbound request into exactly one response.
type Handler struct {
	ctx               context.Context
	logger            *slog.Logger
	webhookSecret     *validation.WebhookSecret
	notifier          notifier.Notifier
	composer          *notifier.Composer
	lambdaPayloadType string

	processors []processor.Processor
}

// NewWebhookHandler builds a Handler. The shared secret and the notifier are injected as options;
// nothing is read from the environment here.
func NewWebhookHandler(options ...Option) (*Handler, error) {
	_inst := &Handler{
		logger: helpers.NewNoopLogger(),
	}
	for _, opt := range options {
		opt(_inst)
	}

	if _inst.ctx == nil {
		_inst.ctx = context.Background()
	}
	if _inst.notifier == nil {
		return nil, errors.New("missing email notifier")
	}
	if _inst.composer == nil {
		_inst.composer = notifier.NewComposer("", nil)
	}
	if !_inst.webhookSecret.Configured() {
		_inst.logger.Warn("webhook secret is not configured, every POST will be accepted")
	}

	procLogger := processor.WithLogger(_inst.logger)
	_inst.processors = []processor.Processor{
		processor.NewPayloadParserProcessor(procLogger),
		processor.NewSecretValidatorProcessor(_inst.webhookSecret, procLogger),
		processor.NewEventFilterProcessor(procLogger),
		processor.NewEmailDispatcherProcessor(_inst.notifier, _inst.composer, procLogger),
	}
	return _inst, nil
}

// Process dispatches on the request method. It never panics and always returns a response.
func (h *Handler) Process(ctx context.Context, req models.Request) models.Response {
	if ctx == nil {
		ctx = h.ctx
	}
	logger := h.logger.With(slog.String("method", req.Method))

	switch req.Method {
	case http.MethodOptions:
		logger.Debug("answering preflight")
		return webhook.PreflightResponse()
	case http.MethodGet:
		logger.Debug("answering health check")
		return webhook.ReadyResponse()
	case http.MethodPost:
		return h.processDelivery(ctx, logger, req)
	default:
		logger.Debug("rejecting request...", "reason", "method not allowed")
		return webhook.MethodNotAllowedResponse()
	}
}

func (h *Handler) processDelivery(ctx context.Context, logger *slog.Logger, req models.Request) (response models.Response) {
	defer func() {
		if r := recover(); r != nil {
			err := webhook.NewPanicError(r)
			logger.Error("webhook processing panicked", slog.Any("error", err))
			response = webhook.InternalErrorResponse(err)
		}
	}()

	logger = logger.With(slog.String("deliveryId", uuid.NewString()))
	logger.Info("processing webhook delivery...")
	bus, err := processor.Process(ctx, webhook.NewBus(req), h.processors...)
	if err != nil {
		logger.Error("webhook processing failed", slog.Any("error", err), slog.Any("bus", bus))
		return webhook.InternalErrorResponse(err)
	}
	logger.Info("webhook delivery handled", slog.Any("bus", bus))
	return bus.Response
}

// GetLambdaPayloadType returns the Lambda event shape the runtime should decode.
func (h *Handler) GetLambdaPayloadType() string {
	return h.lambdaPayloadType
}
