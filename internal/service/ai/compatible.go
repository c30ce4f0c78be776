package ai

import (
	"context"
	"net/http"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// CompatibleProvider implements Provider for OpenAI-compatible APIs.
// This supports services like OpenRouter, Azure OpenAI, Ollama, etc.
type CompatibleProvider struct {
	client          openai.Client
	model           string
	thinking        bool
	thinkingBudget  int
	reasoningEffort string
}

// NewCompatibleProvider creates a new OpenAI-compatible provider.
func NewCompatibleProvider(apiKey, baseURL, model string, thinking bool, thinkingBudget int, reasoningEffort string, httpClient *http.Client) (*CompatibleProvider, error) {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
	}
	if httpClient != nil {
		opts = append(opts, option.WithHTTPClient(httpClient))
	}
	client := openai.NewClient(opts...)
	return &CompatibleProvider{
		client:          client,
		model:           model,
		thinking:        thinking,
		thinkingBudget:  thinkingBudget,
		reasoningEffort: reasoningEffort,
	}, nil
}

// Name returns the provider name.
func (p *CompatibleProvider) Name() string {
	return ProviderCompatible
}

// Test sends a test message and returns the response.
func (p *CompatibleProvider) Test(ctx context.Context) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(p.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage("Hello world"),
		},
	}
	opts, limited := p.reasoningOptions()
	if !limited {
		params.MaxTokens = openai.Int(50)
	}
	return p.send(ctx, params, opts...)
}

// Complete generates a response without streaming.
func (p *CompatibleProvider) Complete(ctx context.Context, systemPrompt, content string) (string, error) {
	messages := []openai.ChatCompletionMessageParamUnion{}
	if systemPrompt != "" {
		messages = append(messages, openai.SystemMessage(systemPrompt))
	}
	messages = append(messages, openai.UserMessage(content))

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(p.model),
		Messages: messages,
	}
	opts, _ := p.reasoningOptions()
	return p.send(ctx, params, opts...)
}

// reasoningOptions builds the non-standard "reasoning" body field. The bool is
// true when reasoning is enabled with an effort or budget.
func (p *CompatibleProvider) reasoningOptions() ([]option.RequestOption, bool) {
	if !p.thinking {
		return []option.RequestOption{
			option.WithJSONSet("reasoning", map[string]any{"enabled": false}),
		}, false
	}

	reasoning := map[string]any{}
	if p.reasoningEffort != "" {
		// Effort-based mode for o1/Grok models
		reasoning["effort"] = p.reasoningEffort
	} else if p.thinkingBudget > 0 {
		// Budget-based mode for Anthropic/Gemini models
		reasoning["max_tokens"] = p.thinkingBudget
	}
	if len(reasoning) == 0 {
		return nil, false
	}
	return []option.RequestOption{option.WithJSONSet("reasoning", reasoning)}, true
}

func (p *CompatibleProvider) send(ctx context.Context, params openai.ChatCompletionNewParams, opts ...option.RequestOption) (string, error) {
	resp, err := p.client.Chat.Completions.New(ctx, params, opts...)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
