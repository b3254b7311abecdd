package insight

import (
	"fmt"
	"net/http"
	"strings"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

func NewBackend(provider, baseURL string, httpClient *http.Client) (Backend, error) {
	switch strings.ToLower(provider) {
	case ProviderGemini:
		return NewGemini(baseURL, httpClient), nil
	case ProviderOpenAI:
		return NewOpenAI(baseURL, httpClient), nil
	default:
		return nil, fmt.Errorf("unknown insight provider: %s", provider)
	}
}
