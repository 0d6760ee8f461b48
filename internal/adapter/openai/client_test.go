package openai

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joeruch23/colorado-weather-network/internal/observability"
)

func testClient(baseURL string) *Client {
	return &Client{
		apiKey:     "sk-test",
		model:      "gpt-4o-mini",
		httpClient: &http.Client{Timeout: 5 * time.Second},
		baseURL:    baseURL,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics:    observability.NewMetricsForTesting(),
	}
}

func TestPolish_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o-mini", req.Model)
		assert.Equal(t, 0.2, req.Temperature)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Contains(t, req.Messages[0].Content, "Do not invent facts")
		assert.Equal(t, "ANSWER:\nraw draft", req.Messages[1].Content)

		_, _ = w.Write([]byte(`{"choices": [{"message": {"role": "assistant", "content": "  Polished reply.  "}}]}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	got, err := c.Polish(context.Background(), "raw draft")
	require.NoError(t, err)
	assert.Equal(t, "Polished reply.", got)
}

func TestPolish_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.Polish(context.Background(), "draft")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestPolish_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices": []}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.Polish(context.Background(), "draft")
	require.Error(t, err)
}

func TestPolish_EmptyContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices": [{"message": {"content": "   "}}]}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.Polish(context.Background(), "draft")
	require.Error(t, err)
}
