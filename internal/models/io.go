// Package models provides the core data structures for handling webhook requests and responses.
package models

// Request represents an incoming client request, independent of the transport that delivered it.
type Request struct {
	Method  string
	Path    string
	Body    []byte
	Headers map[string]string // lowercase keys to match AWS Lambda proxy requests
}

// Response defines the structure for an HTTP response containing a body, headers, and a status code.
type Response struct {
	Body       []byte
	Headers    map[string]string
	StatusCode int
}
