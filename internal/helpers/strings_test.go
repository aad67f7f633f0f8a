package helpers_test

import (
	"testing"

	"github.com/isometry/cakto-webhook-app/internal/helpers"
	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	testCases := []struct {
		Name     string
		Input    *string
		Expected string
	}{
		{
			Name:     "nil_string",
			Input:    nil,
			Expected: "",
		},
		{
			Name:     "empty_string",
			Input:    new(string),
			Expected: "",
		},
		{
			Name:     "value",
			Input:    helpers.Ptr("abc123"),
			Expected: "abc123",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			assert.Equal(t, tc.Expected, helpers.String(tc.Input))
		})
	}
}

func TestRedact(t *testing.T) {
	testCases := []struct {
		Name     string
		Input    string
		Expected string
	}{
		{Name: "empty", Input: "", Expected: "**"},
		{Name: "short", Input: "ab", Expected: "**"},
		{Name: "secret", Input: "abc123", Expected: "a***3"},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			assert.Equal(t, tc.Expected, helpers.Redact(tc.Input))
		})
	}
}
