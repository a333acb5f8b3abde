package ai

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	openai "github.com/sashabaranov/go-openai"
)

// maxInputChars truncates document text before sending it to the model
const maxInputChars = 8000

const systemPrompt = "You are a legal compliance assistant. Extract and list clear, actionable compliance rules from the following policy document."

// Extractor extracts compliance rules from policy text via the OpenAI
// chat completion API.
type Extractor struct {
	client      *openai.Client
	model       string
	temperature float32
}

// Option is a functional option for Extractor configuration
type Option func(*Extractor)

// WithModel overrides the chat model
func WithModel(model string) Option {
	return func(x *Extractor) {
		x.model = model
	}
}

// WithTemperature overrides the sampling temperature
func WithTemperature(t float32) Option {
	return func(x *Extractor) {
		x.temperature = t
	}
}

// New creates an extractor. An empty API key is allowed; calls will then
// fail with ErrNoCredentials so the workflow can explain the failure to
// the user instead of crashing at startup.
func New(apiKey string, opts ...Option) *Extractor {
	x := &Extractor{
		model:       openai.GPT4o,
		temperature: 0.3,
	}
	if apiKey != "" {
		x.client = openai.NewClient(apiKey)
	}

	for _, opt := range opts {
		opt(x)
	}
	return x
}

// ExtractRules sends the document text to the model and returns the
// extracted rule list. Input is truncated to maxInputChars.
func (x *Extractor) ExtractRules(ctx context.Context, text string) (string, error) {
	if x.client == nil {
		return "", goerr.Wrap(ErrNoCredentials, "OpenAI API key is not configured")
	}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", goerr.Wrap(ErrEmptyInput, "no document text to analyze")
	}
	if len(trimmed) > maxInputChars {
		trimmed = trimmed[:maxInputChars]
	}

	req := openai.ChatCompletionRequest{
		Model:       x.model,
		Temperature: x.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: trimmed},
		},
	}

	resp, err := x.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", goerr.Wrap(classify(err), "rule extraction call failed")
	}

	if len(resp.Choices) == 0 {
		return "", goerr.Wrap(ErrUnknown, "no completion choices returned")
	}

	rules := strings.TrimSpace(resp.Choices[0].Message.Content)
	if rules == "" {
		return "", goerr.Wrap(ErrUnknown, "model returned empty content")
	}

	return rules, nil
}
