package types

// SuccessEnvelope wraps every 2xx payload so clients can rely on a single
// top-level shape regardless of endpoint.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the public error shape. Message is only client-safe text; raw
// driver and validation internals stay in the logs.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope wraps every non-2xx payload.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
