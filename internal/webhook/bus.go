package webhook

import (
	"log/slog"

	"github.com/isometry/cakto-webhook-app/internal/models"
	"github.com/isometry/cakto-webhook-app/internal/notifier"
)

// EventStatus represents how far a webhook delivery got through the pipeline.
type EventStatus string

const (
	// Pending means no processor has produced a final response yet.
	Pending EventStatus = ""
	// Rejected means the request was refused (secret mismatch).
	Rejected EventStatus = "rejected"
	// Skipped means the event was acknowledged but not acted upon.
	Skipped EventStatus = "skipped"
	// Processed means the approved purchase was handled.
	Processed EventStatus = "processed"
)

// Bus carries one webhook delivery through the processor chain.
type Bus struct {
	Request  models.Request
	Payload  *Payload
	Outcome  *notifier.Outcome
	Status   EventStatus
	Response models.Response
}

// NewBus returns a pending Bus for the given request.
func NewBus(req models.Request) *Bus {
	return &Bus{Request: req}
}

// Halt records the final status and response. Processors stop running once a Bus is halted.
func (b *Bus) Halt(status EventStatus, response models.Response) {
	b.Status = status
	b.Response = response
}

// Halted reports whether a final response has been recorded.
func (b *Bus) Halted() bool {
	return b.Status != Pending
}

// LogValue implements slog.LogValuer.
func (b *Bus) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("method", b.Request.Method),
		slog.String("status", string(b.Status)),
	}
	if b.Payload != nil {
		attrs = append(attrs, slog.Any("payload", b.Payload))
	}
	if b.Outcome != nil {
		attrs = append(attrs, slog.Bool("emailSent", b.Outcome.Sent))
	}
	return slog.GroupValue(attrs...)
}
