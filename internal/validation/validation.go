// Package validation provides the shared-secret check applied to incoming webhook payloads.
package validation

import (
	"crypto/subtle"
)

// SecretPolicy is the outcome of comparing a provided secret against the configured one.
type SecretPolicy int

const (
	// SecretUnconfigured means no secret is configured; the request is let through.
	SecretUnconfigured SecretPolicy = iota
	// SecretMatched means the provided secret is identical to the configured one.
	SecretMatched
	// SecretMismatched means a secret is configured and the provided one differs or is absent.
	SecretMismatched
)

// String implements fmt.Stringer.
func (p SecretPolicy) String() string {
	switch p {
	case SecretUnconfigured:
		return "unconfigured"
	case SecretMatched:
		return "matched"
	case SecretMismatched:
		return "mismatched"
	default:
		return "unknown"
	}
}

// Allowed reports whether the request may proceed past the secret check.
func (p SecretPolicy) Allowed() bool {
	return p != SecretMismatched
}

// WebhookSecret represents the shared secret Cakto sends in the payload body.
type WebhookSecret string

// NewWebhookSecret creates a new WebhookSecret instance from the provided secret string and returns its address.
func NewWebhookSecret(secret string) *WebhookSecret {
	s := WebhookSecret(secret)
	return &s
}

// Configured reports whether a non-empty secret is set.
func (s *WebhookSecret) Configured() bool {
	return s != nil && *s != ""
}

// Check applies the secret policy. provided is nil when the payload carries no secret field.
func (s *WebhookSecret) Check(provided *string) SecretPolicy {
	if !s.Configured() {
		return SecretUnconfigured
	}
	if provided == nil {
		return SecretMismatched
	}
	if subtle.ConstantTimeCompare([]byte(*s), []byte(*provided)) != 1 {
		return SecretMismatched
	}
	return SecretMatched
}
