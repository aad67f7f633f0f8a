package notifier

import (
	"context"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/isometry/cakto-webhook-app/internal/helpers"
	"github.com/pkg/errors"
)

const charset = "UTF-8"

// SESAPI is the subset of the SES v2 client used by the SES notifier.
type SESAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// SES sends messages through Amazon SES.
type SES struct {
	client SESAPI
	logger *slog.Logger
}

// NewSES returns a notifier backed by the given SES client.
func NewSES(client SESAPI, logger *slog.Logger) *SES {
	if logger == nil {
		logger = helpers.NewNoopLogger()
	}
	return &SES{client: client, logger: logger.With("provider", ProviderSES)}
}

// Send implements Notifier.
func (s *SES) Send(ctx context.Context, msg Message) error {
	body := &types.Body{
		Text: &types.Content{Data: aws.String(msg.Text), Charset: aws.String(charset)},
	}
	if msg.HTML != "" {
		body.Html = &types.Content{Data: aws.String(msg.HTML), Charset: aws.String(charset)}
	}
	out, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(msg.From),
		Destination:      &types.Destination{ToAddresses: []string{msg.To}},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(msg.Subject), Charset: aws.String(charset)},
				Body:    body,
			},
		},
	})
	if err != nil {
		return errors.Wrap(err, "failed to send email via SES")
	}
	s.logger.Debug("email accepted by SES", slog.Any("message", msg), slog.String("messageId", helpers.String(out.MessageId)))
	return nil
}
