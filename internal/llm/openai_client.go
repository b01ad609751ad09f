package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

var (
	// ErrLLMUnavailable indicates the LLM service is not configured.
	ErrLLMUnavailable = errors.New("LLM service unavailable")
	// ErrLLMRequest indicates an error during the chat completion request.
	ErrLLMRequest = errors.New("LLM request failed")
	// ErrLLMResponse indicates the completion carried no usable content.
	ErrLLMResponse = errors.New("invalid LLM response")
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gpt-4o-mini"

// AdviceLLM generates free-text sleep advice from a prompt.
type AdviceLLM interface {
	// GenerateAdvice returns the raw model reply for the given prompts.
	GenerateAdvice(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// OpenAIClient implements AdviceLLM using any OpenAI-compatible chat completion API.
type OpenAIClient struct {
	client openai.Client
	model  string
}

// NewOpenAIClient creates a client for generating advice.
// Returns nil if apiKey is empty. An empty baseURL uses the OpenAI default.
func NewOpenAIClient(apiKey, model, baseURL string) *OpenAIClient {
	if apiKey == "" {
		return nil
	}

	if model == "" {
		model = DefaultModel
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		// The advisor never retries.
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &OpenAIClient{
		client: openai.NewClient(opts...),
		model:  model,
	}
}

// Model returns the configured model name.
func (c *OpenAIClient) Model() string {
	if c == nil {
		return ""
	}
	return c.model
}

// GenerateAdvice calls the chat completion API and returns the first choice's content.
func (c *OpenAIClient) GenerateAdvice(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if c == nil {
		return "", ErrLLMUnavailable
	}

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrLLMRequest, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in response", ErrLLMResponse)
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("%w: empty content", ErrLLMResponse)
	}

	return content, nil
}
