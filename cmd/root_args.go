package cmd

import (
	"time"

	"github.com/isometry/cakto-webhook-app/internal/config"
	"github.com/isometry/cakto-webhook-app/internal/helpers"
)

var envMapString = map[*string]boundEnvVar[string]{
	&config.Global.Mode: {
		Name:        "mode",
		Description: "The application runtime mode. Possible values are 'lambda' and 'service'",
		Short:       helpers.Ptr("m"),
	},
	&config.Cakto.WebhookSecret: {
		Name:        "webhook-secret",
		Description: "The secret expected in the 'secret' field of incoming Cakto payloads. If not specified, no validation is performed",
		Env:         helpers.Ptr("CAKTO_WEBHOOK_SECRET"),
	},
	&config.Cakto.SecretSource: {
		Name:        "webhook-secret-source",
		Description: "Where the webhook secret is read from. Supported values are 'env' and 'ssm'",
		Env:         helpers.Ptr("CAKTO_WEBHOOK_SECRET_SOURCE"),
	},
	&config.Cakto.SSMKey: {
		Name:        "webhook-secret-ssm-key",
		Description: "The SSM parameter holding the webhook secret when the source is 'ssm'",
		Env:         helpers.Ptr("CAKTO_WEBHOOK_SECRET_SSM_KEY"),
	},
	&config.Email.Provider: {
		Name:        "email-provider",
		Description: "The email delivery provider. Supported values are 'smtp', 'ses' and 'noop'",
	},
	&config.Email.From: {
		Name:        "email-from",
		Description: "The sender address of the notification email",
	},
	&config.Email.SMTP.Host: {
		Name:        "smtp-host",
		Description: "The SMTP relay host",
	},
	&config.Email.SMTP.Username: {
		Name:        "smtp-username",
		Description: "The SMTP username. Authentication is disabled when empty",
	},
	&config.Email.SMTP.Password: {
		Name:        "smtp-password",
		Description: "The SMTP password",
		Hidden:      true,
	},
	&config.Email.SMTP.TLSPolicy: {
		Name:        "smtp-tls-policy",
		Description: "The SMTP TLS policy. Supported values are 'opportunistic', 'mandatory' and 'none'",
	},
	&config.Email.Templates.Bucket: {
		Name:        "email-templates-bucket",
		Description: "The S3 bucket holding email template overrides",
	},
	&config.Email.Templates.TextKey: {
		Name:        "email-templates-text-key",
		Description: "The S3 key of the plain-text template override",
	},
	&config.Email.Templates.HTMLKey: {
		Name:        "email-templates-html-key",
		Description: "The S3 key of the HTML template override",
	},
}

var envMapBool = map[*bool]boundEnvVar[bool]{
	&config.Global.Logging.CallerTrace: {
		Name:        "verbosity-caller-trace",
		Description: "Enable caller trace in logs",
		Short:       helpers.Ptr("V"),
	},
}

var envMapCount = map[*int]boundEnvVar[int]{
	&config.Global.Logging.Verbosity: {
		Name:        "verbosity",
		Description: "Increase logger verbosity (default WarnLevel)",
		Short:       helpers.Ptr("v"),
	},
}

var envMapUint = map[*uint]boundEnvVar[uint]{
	&config.Email.SMTP.Port: {
		Name:        "smtp-port",
		Description: "The SMTP relay port",
	},
}

var envMapDuration = map[*time.Duration]boundEnvVar[time.Duration]{
	&config.Email.Timeout: {
		Name:        "email-timeout",
		Description: "The timeout for dialling and sending through the SMTP relay",
	},
}
