package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// LLM is a chat-completion client. Implementations send exactly one request
// per call: no retries, no backoff, no caching.
type LLM interface {
	Chat(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Sentinel errors for the transport failures that get their own user-facing
// messages. Everything else surfaces as a *StatusError.
var (
	ErrRateLimited    = errors.New("rate limit exceeded, please try again in a moment")
	ErrQuotaExhausted = errors.New("AI credits exhausted, please add credits to continue")
	ErrNoResponse     = errors.New("no response from AI")
)

// StatusError is a non-2xx reply that isn't a rate-limit or quota failure.
type StatusError struct {
	Provider string
	Code     int
	Body     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s API error (status %d): %s", e.Provider, e.Code, e.Body)
}

// classifyStatus maps a non-2xx response to the error the caller surfaces.
func classifyStatus(provider string, code int, body []byte) error {
	switch code {
	case http.StatusTooManyRequests:
		return ErrRateLimited
	case http.StatusPaymentRequired:
		return ErrQuotaExhausted
	default:
		return &StatusError{Provider: provider, Code: code, Body: string(body)}
	}
}
