package gemini

import "errors"

// Error definitions for the gemini package.
var (
	// ErrInvalidConfig is returned when the LLM settings cannot build a client.
	ErrInvalidConfig = errors.New("invalid gemini configuration")

	// ErrEmptyResponse is returned when the model answers without any text.
	ErrEmptyResponse = errors.New("gemini returned an empty response")

	// ErrAdviceFailed is returned once every retry attempt has failed.
	ErrAdviceFailed = errors.New("failed to generate advice")
)
