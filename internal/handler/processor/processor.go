// Package processor provides the ordered steps applied to a POSTed webhook delivery.
package processor

import (
	"context"
	"log/slog"

	"github.com/isometry/cakto-webhook-app/internal/helpers"
	"github.com/isometry/cakto-webhook-app/internal/webhook"
)

// Processor is a single pipeline step. A step either halts the Bus with a final response,
// leaves it pending for the next step, or returns an error.
type Processor interface {
	Name() string
	Process(ctx context.Context, bus *webhook.Bus) (*webhook.Bus, error)
}

// Option is a function that applies an option to a Processor.
type Option = func(*base)

// WithLogger sets the logger used by a Processor.
func WithLogger(logger *slog.Logger) Option {
	return func(b *base) {
		b.logger = logger
	}
}

type base struct {
	logger *slog.Logger
}

func newBase(group string, opts ...Option) base {
	b := base{logger: helpers.NewNoopLogger()}
	for _, opt := range opts {
		opt(&b)
	}
	b.logger = b.logger.WithGroup("processor:" + group)
	return b
}

// Process runs processors in order until one halts the Bus or fails.
// Processors hold no per-request state, so a chain may be shared between concurrent requests.
func Process(ctx context.Context, bus *webhook.Bus, processors ...Processor) (*webhook.Bus, error) {
	var err error
	for _, p := range processors {
		if bus.Halted() {
			break
		}
		if bus, err = p.Process(ctx, bus); err != nil {
			return bus, err
		}
		if bus == nil {
			return nil, webhook.NewInternalErrorf("processor %s returned no bus", p.Name())
		}
	}
	if !bus.Halted() {
		return bus, webhook.NewInternalError("no processor produced a response")
	}
	return bus, nil
}
