package translator

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/enkerewpo/autodocs/internal/llm"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*llm.Client, func()) {
	t.Helper()
	server := httptest.NewServer(handler)

	client, err := llm.NewClient(&llm.Config{
		APIKey:      "test-key",
		APIURL:      server.URL,
		Model:       "test-model",
		MaxTokens:   1000,
		Temperature: 0.7,
		Timeout:     10,
	})
	require.NoError(t, err)

	return client, server.Close
}

func chatResponse(content string) string {
	return `{
		"id": "chat-1",
		"choices": [{
			"index": 0,
			"message": {"role": "assistant", "content": ` + mustQuote(content) + `},
			"finish_reason": "stop"
		}]
	}`
}

func mustQuote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func TestTranslateSendsContentAndTargetLanguage(t *testing.T) {
	var gotPrompt string

	client, closeFn := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req llm.ChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 1)
		gotPrompt = req.Messages[0].Content

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(chatResponse("translated body")))
	})
	defer closeFn()

	tr := NewLLMTranslator(client, language.English)

	out, err := tr.Translate(context.Background(), "Bonjour le monde, ceci est un document.")
	require.NoError(t, err)
	assert.Equal(t, "translated body", out)

	assert.Contains(t, gotPrompt, "English")
	assert.Contains(t, gotPrompt, "Bonjour le monde")
	assert.Contains(t, gotPrompt, "please just reply with the translated content")
}

func TestTranslateBackendError(t *testing.T) {
	client, closeFn := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": {"message": "backend down", "type": "server_error"}}`))
	})
	defer closeFn()

	tr := NewLLMTranslator(client, language.English)

	_, err := tr.Translate(context.Background(), "some content")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "translation request failed"))
	assert.Contains(t, err.Error(), "backend down")
}
