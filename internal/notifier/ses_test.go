package notifier_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/isometry/cakto-webhook-app/internal/notifier"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSES struct {
	err   error
	input *sesv2.SendEmailInput
}

func (f *fakeSES) SendEmail(_ context.Context, params *sesv2.SendEmailInput, _ ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sesv2.SendEmailOutput{MessageId: aws.String("0100018f")}, nil
}

func TestSES_Send(t *testing.T) {
	msg := notifier.Message{
		From:    "nao-responder@suaproducao.com",
		To:      "a@b.com",
		Subject: "Acesso liberado ✨",
		Text:    "text",
		HTML:    "<p>html</p>",
	}

	t.Run("success", func(t *testing.T) {
		api := &fakeSES{}
		err := notifier.NewSES(api, nil).Send(context.Background(), msg)
		require.NoError(t, err)
		require.NotNil(t, api.input)
		assert.Equal(t, msg.From, aws.ToString(api.input.FromEmailAddress))
		assert.Equal(t, []string{msg.To}, api.input.Destination.ToAddresses)
		assert.Equal(t, msg.Subject, aws.ToString(api.input.Content.Simple.Subject.Data))
		assert.Equal(t, msg.Text, aws.ToString(api.input.Content.Simple.Body.Text.Data))
		assert.Equal(t, msg.HTML, aws.ToString(api.input.Content.Simple.Body.Html.Data))
	})

	t.Run("failure", func(t *testing.T) {
		api := &fakeSES{err: errors.New("MessageRejected")}
		err := notifier.NewSES(api, nil).Send(context.Background(), msg)
		assert.ErrorContains(t, err, "MessageRejected")
	})

	t.Run("text_only", func(t *testing.T) {
		api := &fakeSES{}
		textOnly := msg
		textOnly.HTML = ""
		require.NoError(t, notifier.NewSES(api, nil).Send(context.Background(), textOnly))
		assert.Nil(t, api.input.Content.Simple.Body.Html)
	})
}
