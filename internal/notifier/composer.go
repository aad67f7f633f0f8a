package notifier

import (
	"github.com/isometry/cakto-webhook-app/internal/notifier/templates"
	"github.com/pkg/errors"
)

// DefaultSubject is the subject of the purchase notification.
const DefaultSubject = "Acesso liberado ✨"

// Composer builds purchase notification messages.
type Composer struct {
	From      string
	Subject   string
	Templates *templates.Set
}

// NewComposer returns a Composer using the given sender and templates. A nil set selects the
// embedded defaults.
func NewComposer(from string, set *templates.Set) *Composer {
	if set == nil {
		set = templates.Default()
	}
	return &Composer{From: from, Subject: DefaultSubject, Templates: set}
}

// Compose renders the notification for a purchaser.
func (c *Composer) Compose(customerEmail, productName string) (Message, error) {
	text, html, err := c.Templates.Render(templates.Data{
		CustomerEmail: customerEmail,
		ProductName:   productName,
	})
	if err != nil {
		return Message{}, errors.Wrap(err, "failed to compose notification")
	}
	return Message{
		From:    c.From,
		To:      customerEmail,
		Subject: c.Subject,
		Text:    text,
		HTML:    html,
	}, nil
}
