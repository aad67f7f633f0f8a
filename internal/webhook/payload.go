// Package webhook provides the Cakto payload model and the Bus carried through the processing pipeline.
package webhook

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

const (
	// PurchaseApproved is the only event type that triggers a notification.
	PurchaseApproved = "purchase_approved"
	// UnknownEmail replaces a missing customer email.
	UnknownEmail = "sem-email"
	// UnknownProduct replaces a missing product name.
	UnknownProduct = "produto-desconhecido"
	// MissingEvent is how an absent event field is rendered.
	MissingEvent = "undefined"
	// NullEvent is how a null event field is rendered.
	NullEvent = "null"
)

// Payload holds the fields extracted from a Cakto webhook body.
type Payload struct {
	// Event is the event field rendered as text: MissingEvent when absent, NullEvent when null.
	Event string
	// Secret is nil when the body carries no secret or a non-string one.
	Secret        *string
	CustomerEmail string
	ProductName   string
}

// IsPurchaseApproved reports whether the payload is an approved-purchase event.
func (p *Payload) IsPurchaseApproved() bool {
	return p.Event == PurchaseApproved
}

// LogValue implements slog.LogValuer. The secret is never logged.
func (p *Payload) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("event", p.Event),
		slog.String("email", p.CustomerEmail),
		slog.String("productName", p.ProductName),
		slog.Bool("secretProvided", p.Secret != nil),
	)
}

// ParsePayload extracts a Payload from a raw body. A missing or unparseable body is treated as an
// empty document, and missing nested fields fall back to their sentinel values.
func ParsePayload(body []byte) *Payload {
	var doc map[string]any
	if len(body) > 0 {
		if err := json.Unmarshal(body, &doc); err != nil {
			doc = nil
		}
	}

	p := &Payload{
		CustomerEmail: UnknownEmail,
		ProductName:   UnknownProduct,
	}
	p.Event = MissingEvent
	if v, ok := doc["event"]; ok {
		p.Event = eventText(v)
	}
	if s, ok := doc["secret"].(string); ok {
		p.Secret = &s
	}
	if email := lookupString(doc, "data", "customer", "email"); email != "" {
		p.CustomerEmail = email
	}
	if name := lookupString(doc, "data", "product", "name"); name != "" {
		p.ProductName = name
	}
	return p
}

// lookupString walks nested objects and returns the string at path, or "" when any level is
// missing or of the wrong type.
func lookupString(doc map[string]any, path ...string) string {
	var cur any = doc
	for _, key := range path {
		obj, ok := cur.(map[string]any)
		if !ok {
			return ""
		}
		cur = obj[key]
	}
	s, _ := cur.(string)
	return s
}

// eventText renders a decoded JSON value the way it reads when interpolated into a message.
func eventText(v any) string {
	switch t := v.(type) {
	case nil:
		return NullEvent
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case []any:
		parts := make([]string, len(t))
		for i, e := range t {
			if e != nil {
				parts[i] = eventText(e)
			}
		}
		return strings.Join(parts, ",")
	case map[string]any:
		return "[object Object]"
	default:
		return fmt.Sprint(t)
	}
}
