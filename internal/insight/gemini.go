package insight

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

// Gemini calls the Gemini API through the genai SDK. A client is built per
// call because the credential belongs to the user, not the process.
type Gemini struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewGemini(baseURL string, httpClient *http.Client) *Gemini {
	return &Gemini{BaseURL: baseURL, HTTPClient: httpClient}
}

func (g *Gemini) client(ctx context.Context, credential string) (*genai.Client, error) {
	cfg := &genai.ClientConfig{
		APIKey:     credential,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: g.HTTPClient,
	}
	if g.BaseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: g.BaseURL}
	}
	c, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return c, nil
}

func (g *Gemini) Generate(ctx context.Context, credential, model, prompt string) (string, error) {
	c, err := g.client(ctx, credential)
	if err != nil {
		return "", err
	}
	resp, err := c.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini %s: %w", model, err)
	}
	if resp == nil {
		return "", ErrPartialResponse
	}
	return resp.Text(), nil
}

func (g *Gemini) ListModels(ctx context.Context, credential string) ([]string, error) {
	c, err := g.client(ctx, credential)
	if err != nil {
		return nil, err
	}
	page, err := c.Models.List(ctx, &genai.ListModelsConfig{PageSize: 100})
	if err != nil {
		return nil, fmt.Errorf("gemini list models: %w", err)
	}
	var names []string
	for {
		for _, m := range page.Items {
			if m == nil {
				continue
			}
			names = append(names, strings.TrimPrefix(m.Name, "models/"))
		}
		page, err = page.Next(ctx)
		if errors.Is(err, genai.ErrPageDone) {
			return names, nil
		}
		if err != nil {
			return nil, fmt.Errorf("gemini list models: %w", err)
		}
	}
}
