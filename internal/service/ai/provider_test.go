package ai_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alpine/translate/internal/service/ai"
)

func TestNewProvider_Validation(t *testing.T) {
	_, err := ai.NewProvider(ai.Config{Provider: ai.ProviderOpenAI, Model: "gpt-4o-mini"})
	require.ErrorIs(t, err, ai.ErrMissingAPIKey)

	_, err = ai.NewProvider(ai.Config{Provider: ai.ProviderOpenAI, APIKey: "k"})
	require.ErrorIs(t, err, ai.ErrMissingModel)

	_, err = ai.NewProvider(ai.Config{Provider: ai.ProviderCompatible, APIKey: "k", Model: "m"})
	require.ErrorIs(t, err, ai.ErrMissingBaseURL)

	_, err = ai.NewProvider(ai.Config{Provider: "bard", APIKey: "k", Model: "m"})
	require.ErrorIs(t, err, ai.ErrInvalidProvider)
}

func TestNewProvider_Names(t *testing.T) {
	cases := map[string]ai.Config{
		ai.ProviderGemini:     {Provider: ai.ProviderGemini, APIKey: "k"},
		ai.ProviderOpenAI:     {Provider: ai.ProviderOpenAI, APIKey: "k", Model: "gpt-4o-mini"},
		ai.ProviderAnthropic:  {Provider: ai.ProviderAnthropic, APIKey: "k", Model: "claude-haiku"},
		ai.ProviderCompatible: {Provider: ai.ProviderCompatible, APIKey: "k", Model: "m", BaseURL: "http://localhost:11434/v1"},
	}
	for want, cfg := range cases {
		p, err := ai.NewProvider(cfg)
		require.NoError(t, err, want)
		require.Equal(t, want, p.Name())
	}
}

func chatServer(t *testing.T, reply string, gotBody *map[string]any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer k", r.Header.Get("Authorization"))
		raw, _ := io.ReadAll(r.Body)
		*gotBody = map[string]any{}
		assert.NoError(t, json.Unmarshal(raw, gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"c1","object":"chat.completion","created":1,"model":"gemini-2.0-flash","choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":`+reply+`}}]}`)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGeminiProvider_Complete(t *testing.T) {
	var body map[string]any
	srv := chatServer(t, `"Hello"`, &body)

	p, err := ai.NewProvider(ai.Config{Provider: ai.ProviderGemini, APIKey: "k", BaseURL: srv.URL})
	require.NoError(t, err)

	out, err := p.Complete(context.Background(), "", ai.TranslatePrompt("Hola", "Español", "Inglés"))
	require.NoError(t, err)
	require.Equal(t, "Hello", out)

	require.Equal(t, ai.GeminiDefaultModel, body["model"])
	messages := body["messages"].([]any)
	require.Len(t, messages, 1, "no system message when systemPrompt is empty")
	require.Equal(t, "user", messages[0].(map[string]any)["role"])
}

func TestCompatibleProvider_DisablesReasoning(t *testing.T) {
	var body map[string]any
	srv := chatServer(t, `"Bonjour"`, &body)

	p, err := ai.NewProvider(ai.Config{Provider: ai.ProviderCompatible, APIKey: "k", BaseURL: srv.URL, Model: "m"})
	require.NoError(t, err)

	out, err := p.Complete(context.Background(), "system", "Hola")
	require.NoError(t, err)
	require.Equal(t, "Bonjour", out)
	require.Equal(t, map[string]any{"enabled": false}, body["reasoning"])
	require.Len(t, body["messages"], 2)
}

func TestGeminiProvider_ReasoningEffort(t *testing.T) {
	var body map[string]any
	srv := chatServer(t, `"Hello"`, &body)

	p, err := ai.NewProvider(ai.Config{
		Provider:        ai.ProviderGemini,
		APIKey:          "k",
		BaseURL:         srv.URL,
		Model:           "gemini-2.5-flash",
		Thinking:        true,
		ReasoningEffort: "low",
	})
	require.NoError(t, err)

	_, err = p.Complete(context.Background(), "", "Hola")
	require.NoError(t, err)
	require.Equal(t, "low", body["reasoning_effort"])

	// Models without reasoning support never get the field.
	p, err = ai.NewProvider(ai.Config{Provider: ai.ProviderGemini, APIKey: "k", BaseURL: srv.URL, Thinking: true, ReasoningEffort: "low"})
	require.NoError(t, err)
	_, err = p.Complete(context.Background(), "", "Hola")
	require.NoError(t, err)
	require.NotContains(t, body, "reasoning_effort")
}

func TestCompatibleProvider_ReasoningEnabled(t *testing.T) {
	var body map[string]any
	srv := chatServer(t, `"Bonjour"`, &body)

	p, err := ai.NewProvider(ai.Config{Provider: ai.ProviderCompatible, APIKey: "k", BaseURL: srv.URL, Model: "m", Thinking: true, ThinkingBudget: 1024})
	require.NoError(t, err)
	_, err = p.Complete(context.Background(), "", "Hola")
	require.NoError(t, err)
	require.Equal(t, map[string]any{"max_tokens": float64(1024)}, body["reasoning"])

	p, err = ai.NewProvider(ai.Config{Provider: ai.ProviderCompatible, APIKey: "k", BaseURL: srv.URL, Model: "m", Thinking: true, ReasoningEffort: "high"})
	require.NoError(t, err)
	_, err = p.Complete(context.Background(), "", "Hola")
	require.NoError(t, err)
	require.Equal(t, map[string]any{"effort": "high"}, body["reasoning"])
}

func TestAnthropicProvider_Thinking(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "k", r.Header.Get("X-Api-Key"))
		raw, _ := io.ReadAll(r.Body)
		body = map[string]any{}
		assert.NoError(t, json.Unmarshal(raw, &body))

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"msg_1","type":"message","role":"assistant","model":"claude-haiku","content":[{"type":"thinking","thinking":"...","signature":"s"},{"type":"text","text":"Hello"}],"stop_reason":"end_turn","usage":{"input_tokens":1,"output_tokens":1}}`)
	}))
	t.Cleanup(srv.Close)

	p, err := ai.NewProvider(ai.Config{Provider: ai.ProviderAnthropic, APIKey: "k", BaseURL: srv.URL, Model: "claude-haiku", Thinking: true, ThinkingBudget: 1024})
	require.NoError(t, err)
	out, err := p.Complete(context.Background(), "", "Hola")
	require.NoError(t, err)
	require.Equal(t, "Hello", out)
	require.Equal(t, map[string]any{"type": "enabled", "budget_tokens": float64(1024)}, body["thinking"])
	require.Equal(t, float64(1024+2048), body["max_tokens"])

	p, err = ai.NewProvider(ai.Config{Provider: ai.ProviderAnthropic, APIKey: "k", BaseURL: srv.URL, Model: "claude-haiku"})
	require.NoError(t, err)
	_, err = p.Complete(context.Background(), "", "Hola")
	require.NoError(t, err)
	require.Equal(t, map[string]any{"type": "disabled"}, body["thinking"])
	require.Equal(t, float64(2048), body["max_tokens"])
}
