package llm

import "errors"

var (
	// ErrTimeout is returned when the model does not respond within the
	// configured deadline.
	ErrTimeout = errors.New("model response timed out")

	// ErrConnection is returned on transport-level failures reaching the
	// model service.
	ErrConnection = errors.New("connecting to model service failed")

	// ErrDecode is returned when the response body is not valid JSON.
	ErrDecode = errors.New("model response body failed to parse")

	// ErrMalformed is returned when the response parses but is missing the
	// expected message content.
	ErrMalformed = errors.New("model response missing content")
)
