package llmprovider

import (
	"context"
	"fmt"

	"task-assignment-bot/pkg/ollama"
	"task-assignment-bot/pkg/openai"
)

// OpenAIAdapter adapts pkg/openai to the llmprovider.Provider interface
type OpenAIAdapter struct {
	client openai.IOpenAI
}

// NewOpenAIAdapter creates a new OpenAI adapter
func NewOpenAIAdapter(client openai.IOpenAI) *OpenAIAdapter {
	return &OpenAIAdapter{client: client}
}

// GenerateContent implements Provider interface
func (a *OpenAIAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	messages := make([]openai.Message, 0, 2)
	if req.System != "" {
		messages = append(messages, openai.Message{Role: "system", Content: req.System})
	}
	messages = append(messages, openai.Message{Role: "user", Content: req.Prompt})

	resp, err := a.client.GenerateContent(ctx, &openai.Request{
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("openai: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai: empty response")
	}

	return &Response{
		Text:         resp.Choices[0].Message.Content,
		ProviderName: "openai",
		ModelName:    resp.Model,
		Usage: &Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}, nil
}

// Name returns the provider name
func (a *OpenAIAdapter) Name() string {
	return "openai"
}

// Model returns the model name
func (a *OpenAIAdapter) Model() string {
	return a.client.Model()
}

// OllamaAdapter adapts pkg/ollama to the llmprovider.Provider interface
type OllamaAdapter struct {
	client ollama.IOllama
}

// NewOllamaAdapter creates a new Ollama adapter
func NewOllamaAdapter(client ollama.IOllama) *OllamaAdapter {
	return &OllamaAdapter{client: client}
}

// GenerateContent implements Provider interface. Ollama's generate endpoint
// takes one flat prompt, so the system instruction is prepended to it.
func (a *OllamaAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	if !a.client.Available(ctx) {
		return nil, fmt.Errorf("ollama: model %s not available", a.client.Model())
	}

	prompt := req.Prompt
	if req.System != "" {
		prompt = req.System + "\n\n" + req.Prompt
	}

	resp, err := a.client.Generate(ctx, &ollama.Request{
		Prompt: prompt,
		Options: ollama.Options{
			Temperature: req.Temperature,
			TopP:        0.9,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("ollama: %w", err)
	}

	return &Response{
		Text:         resp.Response,
		ProviderName: "ollama",
		ModelName:    resp.Model,
		Usage: &Usage{
			InputTokens:  resp.PromptEvalCount,
			OutputTokens: resp.EvalCount,
			TotalTokens:  resp.PromptEvalCount + resp.EvalCount,
		},
	}, nil
}

// Name returns the provider name
func (a *OllamaAdapter) Name() string {
	return "ollama"
}

// Model returns the model name
func (a *OllamaAdapter) Model() string {
	return a.client.Model()
}
