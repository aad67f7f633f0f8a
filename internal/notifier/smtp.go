package notifier

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/isometry/cakto-webhook-app/internal/helpers"
	"github.com/pkg/errors"
	"github.com/wneessen/go-mail"
)

// SMTPConfig holds the SMTP transport settings.
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	TLSPolicy string
	Timeout   time.Duration
}

// SMTP sends messages through an SMTP relay.
type SMTP struct {
	cfg    SMTPConfig
	policy mail.TLSPolicy
	logger *slog.Logger
}

// NewSMTP validates cfg and returns an SMTP notifier. No connection is opened until Send.
func NewSMTP(cfg SMTPConfig, logger *slog.Logger) (*SMTP, error) {
	if logger == nil {
		logger = helpers.NewNoopLogger()
	}
	if strings.TrimSpace(cfg.Host) == "" {
		return nil, errors.New("missing SMTP host")
	}
	policy, err := parseTLSPolicy(cfg.TLSPolicy)
	if err != nil {
		return nil, err
	}
	return &SMTP{cfg: cfg, policy: policy, logger: logger.With("provider", ProviderSMTP)}, nil
}

func parseTLSPolicy(v string) (mail.TLSPolicy, error) {
	switch strings.TrimSpace(strings.ToLower(v)) {
	case "", "opportunistic":
		return mail.TLSOpportunistic, nil
	case "mandatory":
		return mail.TLSMandatory, nil
	case "none":
		return mail.NoTLS, nil
	default:
		return mail.NoTLS, errors.Errorf("unsupported SMTP TLS policy: %s", v)
	}
}

// Send implements Notifier. A new connection is dialled per message.
func (s *SMTP) Send(ctx context.Context, msg Message) error {
	m, err := buildMsg(msg)
	if err != nil {
		return err
	}

	opts := []mail.Option{
		mail.WithTLSPolicy(s.policy),
	}
	if s.cfg.Port > 0 {
		opts = append(opts, mail.WithPort(s.cfg.Port))
	}
	if s.cfg.Timeout > 0 {
		opts = append(opts, mail.WithTimeout(s.cfg.Timeout))
	}
	if s.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.cfg.Username),
			mail.WithPassword(s.cfg.Password))
	}
	client, err := mail.NewClient(s.cfg.Host, opts...)
	if err != nil {
		return errors.Wrap(err, "failed to create SMTP client")
	}

	s.logger.Debug("sending email...", slog.Any("message", msg), slog.String("host", s.cfg.Host), slog.Int("port", s.cfg.Port))
	if err = client.DialAndSendWithContext(ctx, m); err != nil {
		return errors.Wrap(err, "failed to send email via SMTP")
	}
	return nil
}

func buildMsg(msg Message) (*mail.Msg, error) {
	m := mail.NewMsg()
	if err := m.From(msg.From); err != nil {
		return nil, errors.Wrapf(err, "invalid sender address %q", msg.From)
	}
	if err := m.To(msg.To); err != nil {
		return nil, errors.Wrapf(err, "invalid recipient address %q", msg.To)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextPlain, msg.Text)
	if msg.HTML != "" {
		m.AddAlternativeString(mail.TypeTextHTML, msg.HTML)
	}
	return m, nil
}
