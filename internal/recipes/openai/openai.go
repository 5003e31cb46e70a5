// Package openai generates recipes with the OpenAI chat completions API
// using a vision-capable model.
package openai

import (
	"context"
	"fmt"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/acapps/fridgechef/internal/domain"
	"github.com/acapps/fridgechef/internal/recipes"
)

type Generator struct {
	client *goopenai.Client
	model  string
}

func NewGenerator(apiKey, model string) *Generator {
	return newGenerator(apiKey, model, "")
}

// newGenerator allows tests to point the client at a fake server.
func newGenerator(apiKey, model, baseURL string) *Generator {
	cfg := goopenai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Generator{
		client: goopenai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (g *Generator) Generate(ctx context.Context, imageDataURL string) (string, error) {
	resp, err := g.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model:     g.model,
		MaxTokens: recipes.MaxResponseTokens,
		Messages: []goopenai.ChatCompletionMessage{
			{
				Role: goopenai.ChatMessageRoleUser,
				MultiContent: []goopenai.ChatMessagePart{
					{
						Type: goopenai.ChatMessagePartTypeText,
						Text: recipes.GenerationPrompt,
					},
					{
						Type: goopenai.ChatMessagePartTypeImageURL,
						ImageURL: &goopenai.ChatMessageImageURL{
							URL: imageDataURL,
						},
					},
				},
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to call openai: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", domain.ErrEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}
