package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvider(t *testing.T) {
	ctx := WithProvider(context.Background(), "OpenAI")
	assert.Equal(t, "OpenAI", Provider(ctx))
	assert.Equal(t, "", Provider(context.Background()))
}

func TestSpanName(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "https://api.openai.com/v1/chat/completions", nil)
	assert.Equal(t, "POST /v1/chat/completions", spanName("", req))

	req = req.WithContext(WithProvider(req.Context(), "OpenAI"))
	assert.Equal(t, "OpenAI: POST /v1/chat/completions", spanName("", req))
}

func TestNewDefaultsTimeout(t *testing.T) {
	assert.Equal(t, DefaultTimeout, New(0).Timeout)
	assert.Equal(t, 5*time.Second, New(5*time.Second).Timeout)
}

func TestInstrumentedClientRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer srv.Close()

	client := Wrap(&http.Client{})
	req, err := http.NewRequestWithContext(WithProvider(context.Background(), "Test"), http.MethodGet, srv.URL, nil)
	require.NoError(t, err)

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusTeapot, resp.StatusCode)
}
