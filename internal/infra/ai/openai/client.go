package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/bryanwahyu/propsight-ai/internal/domain/analysis"
)

const defaultMaxTokens = 4096

// Client wraps the hosted chat-completion endpoint. One best-effort call
// per request: no retry, no backoff, no local timeout.
type Client struct {
	*openai.Client
	model     string
	maxTokens int
}

func NewClient(apiKey, model string, maxTokens int) *Client {
	if model == "" {
		model = openai.GPT4oMini
	}
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	return &Client{Client: openai.NewClient(apiKey), model: model, maxTokens: maxTokens}
}

func (c *Client) Model() string { return c.model }

// Generate submits the prompt as the sole user message and returns the raw
// reply text plus the provider-reported token counters.
func (c *Client) Generate(ctx context.Context, prompt string) (string, analysis.Usage, error) {
	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}
	// For reasoning models (o1/o3/o4/gpt-5*) use MaxCompletionTokens instead of MaxTokens
	if strings.HasPrefix(c.model, "o1") || strings.HasPrefix(c.model, "o3") || strings.HasPrefix(c.model, "o4") || strings.HasPrefix(c.model, "gpt-5") {
		req.MaxCompletionTokens = c.maxTokens
	} else {
		req.MaxTokens = c.maxTokens
	}

	resp, err := c.CreateChatCompletion(ctx, req)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == 429 {
			return "", analysis.Usage{}, analysis.ErrQuotaExceeded
		}
		return "", analysis.Usage{}, fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", analysis.Usage{}, fmt.Errorf("chat completion returned no choices")
	}

	usage := analysis.Usage{Input: resp.Usage.PromptTokens, Output: resp.Usage.CompletionTokens}
	return resp.Choices[0].Message.Content, usage, nil
}
