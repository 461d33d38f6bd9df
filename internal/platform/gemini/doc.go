// Package gemini implements service.Advisor on top of Google's Gemini API.
//
// The Advisor renders a short coaching prompt from an overload hint, the
// exercise history and its progression policy, sends it to the configured
// model and returns the model's text. Transient failures are retried with
// exponential backoff and jitter; context cancellation is never retried.
//
// The package is an infrastructure adapter: the service layer depends only on
// the Advisor interface and falls back to a static advisor when the LLM is
// disabled.
package gemini
