package cmd

import (
	"context"
	"fmt"

	awsctl "github.com/isometry/cakto-webhook-app/internal/controllers/aws"
	"github.com/isometry/cakto-webhook-app/internal/config"
	"github.com/isometry/cakto-webhook-app/internal/handler"
	"github.com/isometry/cakto-webhook-app/internal/helpers"
	"github.com/isometry/cakto-webhook-app/internal/notifier"
	"github.com/isometry/cakto-webhook-app/internal/notifier/templates"
	"github.com/isometry/cakto-webhook-app/internal/runtime"
	"github.com/pkg/errors"
)

// awsProvider creates the AWS controller on first use so that deployments relying only on
// environment configuration and SMTP never load AWS credentials.
type awsProvider struct {
	ctx  context.Context
	opts []awsctl.Option
	ctl  *awsctl.Controller
}

func (p *awsProvider) get() (*awsctl.Controller, error) {
	if p.ctl != nil {
		return p.ctl, nil
	}
	opts := append([]awsctl.Option{
		awsctl.WithContext(p.ctx),
		awsctl.WithLogger(logger),
	}, p.opts...)
	ctl, err := awsctl.NewController(opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create AWS controller")
	}
	p.ctl = ctl
	return ctl, nil
}

// setup resolves the configured secret, notifier and templates and returns the runtime.
func setup(ctx context.Context, awsOpts ...awsctl.Option) (*runtime.Runtime, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	aws := &awsProvider{ctx: ctx, opts: awsOpts}

	secret, err := resolveSecret(aws)
	if err != nil {
		return nil, err
	}

	n, err := newNotifier(aws)
	if err != nil {
		return nil, err
	}

	set, err := loadTemplates(aws)
	if err != nil {
		return nil, err
	}

	hdl, err := handler.NewWebhookHandler(
		handler.WithContext(ctx),
		handler.WithLogger(logger),
		handler.WithLambdaPayloadType(config.Lambda.PayloadType),
		handler.WithWebhookSecret(secret),
		handler.WithNotifier(n),
		handler.WithComposer(notifier.NewComposer(config.Email.From, set)),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create webhook handler")
	}

	return runtime.NewRuntime(hdl, runtime.WithLogger(logger)), nil
}

func resolveSecret(aws *awsProvider) (string, error) {
	switch config.Cakto.SecretSource {
	case "", config.SecretSourceEnv:
		return config.Cakto.WebhookSecret, nil
	case config.SecretSourceSSM:
		ctl, err := aws.get()
		if err != nil {
			return "", err
		}
		secret, err := ctl.GetSecret(config.Cakto.SSMKey, true)
		if err != nil {
			return "", errors.Wrap(err, "failed to load webhook secret")
		}
		logger.Debug("webhook secret loaded from SSM", "key", config.Cakto.SSMKey, "secret", helpers.Redact(secret))
		return secret, nil
	default:
		return "", fmt.Errorf("invalid webhook secret source: %s", config.Cakto.SecretSource)
	}
}

func newNotifier(aws *awsProvider) (notifier.Notifier, error) {
	switch config.Email.Provider {
	case notifier.ProviderSMTP:
		return notifier.NewSMTP(notifier.SMTPConfig{
			Host:      config.Email.SMTP.Host,
			Port:      int(config.Email.SMTP.Port),
			Username:  config.Email.SMTP.Username,
			Password:  config.Email.SMTP.Password,
			TLSPolicy: config.Email.SMTP.TLSPolicy,
			Timeout:   config.Email.Timeout,
		}, logger)
	case notifier.ProviderSES:
		ctl, err := aws.get()
		if err != nil {
			return nil, err
		}
		client := ctl.SESClient()
		if client == nil {
			return nil, errors.New("SES client is not available")
		}
		return notifier.NewSES(client, logger), nil
	case notifier.ProviderNoop:
		return notifier.NewNoop(logger), nil
	default:
		return nil, fmt.Errorf("invalid email provider: %s", config.Email.Provider)
	}
}

// loadTemplates returns nil when no override is configured, which selects the embedded templates.
func loadTemplates(aws *awsProvider) (*templates.Set, error) {
	tpl := config.Email.Templates
	if tpl.TextKey == "" && tpl.HTMLKey == "" {
		return nil, nil
	}
	ctl, err := aws.get()
	if err != nil {
		return nil, err
	}
	text, err := ctl.GetS3Object(tpl.Bucket, tpl.TextKey)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load text template")
	}
	html, err := ctl.GetS3Object(tpl.Bucket, tpl.HTMLKey)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load HTML template")
	}
	set, err := templates.Parse(text, html)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse email templates")
	}
	logger.Info("email templates loaded from S3", "bucket", tpl.Bucket)
	return set, nil
}
