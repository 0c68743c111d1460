package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeminiGenerateText(t *testing.T) {
	var got generateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/gemini-1.5-flash:generateContent", r.URL.Path)
		assert.Equal(t, "k", r.Header.Get("x-goog-api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Rotate "},{"text":"crops."}]}}]}`))
	}))
	defer srv.Close()

	c, err := NewGeminiClient("k", WithBaseURL(srv.URL))
	require.NoError(t, err)
	out, err := NewGeminiGenerator(c, "models/gemini-1.5-flash").GenerateText(context.Background(), "be helpful", "how to keep soil healthy?")
	require.NoError(t, err)

	assert.Equal(t, "Rotate crops.", out)
	require.Len(t, got.Contents, 1)
	assert.Equal(t, "how to keep soil healthy?", got.Contents[0].Parts[0].Text)
	require.NotNil(t, got.SystemInstruction)
	assert.Equal(t, "be helpful", got.SystemInstruction.Parts[0].Text)
}

func TestGeminiErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/models/empty:generateContent" {
			_, _ = w.Write([]byte(`{"candidates":[]}`))
			return
		}
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"quota exceeded"}}`))
	}))
	defer srv.Close()

	c, err := NewGeminiClient("k", WithBaseURL(srv.URL))
	require.NoError(t, err)

	_, err = c.GenerateText(context.Background(), "empty", "", "hi")
	assert.ErrorIs(t, err, ErrEmptyResponse)

	_, err = c.GenerateText(context.Background(), "busy", "", "hi")
	assert.EqualError(t, err, "gemini api error: quota exceeded")
}

func TestNewGeminiClientRequiresKey(t *testing.T) {
	_, err := NewGeminiClient("  ")
	assert.Error(t, err)
}
