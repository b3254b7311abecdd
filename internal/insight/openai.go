package insight

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sashabaranov/go-openai"
)

// OpenAI talks to any OpenAI-compatible chat completions endpoint.
type OpenAI struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewOpenAI(baseURL string, httpClient *http.Client) *OpenAI {
	return &OpenAI{BaseURL: baseURL, HTTPClient: httpClient}
}

func (o *OpenAI) client(credential string) *openai.Client {
	cfg := openai.DefaultConfig(credential)
	if o.BaseURL != "" {
		cfg.BaseURL = o.BaseURL
	}
	if o.HTTPClient != nil {
		cfg.HTTPClient = o.HTTPClient
	}
	return openai.NewClientWithConfig(cfg)
}

func (o *OpenAI) Generate(ctx context.Context, credential, model, prompt string) (string, error) {
	resp, err := o.client(credential).CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai %s: %w", model, err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrPartialResponse
	}
	return resp.Choices[0].Message.Content, nil
}

func (o *OpenAI) ListModels(ctx context.Context, credential string) ([]string, error) {
	list, err := o.client(credential).ListModels(ctx)
	if err != nil {
		return nil, fmt.Errorf("openai list models: %w", err)
	}
	names := make([]string, 0, len(list.Models))
	for _, m := range list.Models {
		names = append(names, m.ID)
	}
	return names, nil
}
