package openai

import (
	"net/http"
	"strings"

	goopenai "github.com/sashabaranov/go-openai"
)

// Option customises a Client.
type Option func(*options)

type options struct {
	httpClient *http.Client
}

// WithHTTPClient replaces the instrumented default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		if client != nil {
			o.httpClient = client
		}
	}
}

func newConfig(apiKey, baseURL string, httpClient *http.Client) goopenai.ClientConfig {
	cfg := goopenai.DefaultConfig(apiKey)
	if baseURL != "" {
		// go-openai appends "/chat/completions" itself.
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	cfg.HTTPClient = httpClient
	return cfg
}
