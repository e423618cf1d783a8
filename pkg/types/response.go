// Package types holds the JSON envelopes shared by every endpoint.
package types

// SuccessEnvelope wraps successful payloads under a single "data" key so
// list and detail responses decode the same way on the client.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the public error body. Details is populated only for codes
// that allow field-level detail, never for internal failures.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope wraps APIError under an "error" key, mirroring SuccessEnvelope.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
