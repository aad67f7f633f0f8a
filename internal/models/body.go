package models

// Body is the JSON document returned to the caller on every path.
// Optional fields are omitted when unset so each path only exposes the keys it owns.
type Body struct {
	OK          *bool  `json:"ok,omitempty"`
	Skipped     bool   `json:"skipped,omitempty"`
	Message     string `json:"message,omitempty"`
	Error       string `json:"error,omitempty"`
	Detail      string `json:"detail,omitempty"`
	Details     string `json:"details,omitempty"`
	Email       string `json:"email,omitempty"`
	ProductName string `json:"productName,omitempty"`
	EmailSent   *bool  `json:"emailSent,omitempty"`
}
