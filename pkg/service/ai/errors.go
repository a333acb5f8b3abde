package ai

import (
	"errors"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	openai "github.com/sashabaranov/go-openai"
)

// Sentinel errors describing why a rule-extraction call failed. Workflows
// convert each into a specific user-facing message.
var (
	ErrNoCredentials      = goerr.New("missing AI credentials")
	ErrEmptyInput         = goerr.New("empty input text")
	ErrQuotaExceeded      = goerr.New("AI quota exceeded")
	ErrInvalidCredentials = goerr.New("invalid AI credentials")
	ErrUnknown            = goerr.New("unknown AI failure")
)

// classify maps an OpenAI client error onto one of the sentinel causes
func classify(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return ErrInvalidCredentials
		case http.StatusTooManyRequests:
			return ErrQuotaExceeded
		}
	}
	return ErrUnknown
}

// UserMessage returns the user-facing explanation for a failed
// extraction. Every cause maps to exactly one message; unrecognized
// errors get the unknown-cause message.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrNoCredentials):
		return "⚠️ AI analysis is not configured on this bot (missing API credentials). Ask an admin to set the OpenAI key."
	case errors.Is(err, ErrEmptyInput):
		return "⚠️ The document contained no readable text to analyze."
	case errors.Is(err, ErrQuotaExceeded):
		return "⚠️ The AI service quota is exhausted right now. Please try again later."
	case errors.Is(err, ErrInvalidCredentials):
		return "⚠️ The AI service rejected the bot's credentials. Ask an admin to rotate the OpenAI key."
	default:
		return "⚠️ AI analysis failed unexpectedly. Please try again later."
	}
}
