// Package templates renders the text and HTML bodies of the purchase notification email.
package templates

import (
	"bytes"
	_ "embed"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"github.com/pkg/errors"
)

//go:embed purchase.txt.tmpl
var defaultText string

//go:embed purchase.html.tmpl
var defaultHTML string

// Data is the view passed to both templates.
type Data struct {
	CustomerEmail string
	ProductName   string
}

// Set holds a parsed text template and a parsed HTML template.
type Set struct {
	text *texttemplate.Template
	html *htmltemplate.Template
}

// Default returns the embedded templates.
func Default() *Set {
	s, err := Parse(defaultText, defaultHTML)
	if err != nil {
		panic(err)
	}
	return s
}

// Parse builds a Set from raw sources. An empty source falls back to the embedded default.
func Parse(text, html string) (*Set, error) {
	if strings.TrimSpace(text) == "" {
		text = defaultText
	}
	if strings.TrimSpace(html) == "" {
		html = defaultHTML
	}
	t, err := texttemplate.New("text").Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse text template")
	}
	h, err := htmltemplate.New("html").Option("missingkey=error").Parse(html)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse html template")
	}
	return &Set{text: t, html: h}, nil
}

// Render executes both templates. HTML output is escaped contextually.
func (s *Set) Render(data Data) (text, html string, err error) {
	var tb, hb bytes.Buffer
	if err = s.text.Execute(&tb, data); err != nil {
		return "", "", errors.Wrap(err, "failed to render text template")
	}
	if err = s.html.Execute(&hb, data); err != nil {
		return "", "", errors.Wrap(err, "failed to render html template")
	}
	return strings.TrimSpace(tb.String()), strings.TrimSpace(hb.String()), nil
}
