package types

// SuccessEnvelope wraps every 2xx payload under a data key.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the wire shape of a typed failure: a stable machine code, a
// human message, and optional client-correctable details.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope wraps an APIError for non-2xx responses.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
