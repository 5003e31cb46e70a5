// Package anthropic generates recipes with the Anthropic Messages API.
package anthropic

import (
	"context"
	"fmt"

	goanthropic "github.com/liushuangls/go-anthropic/v2"

	"github.com/acapps/fridgechef/internal/domain"
	"github.com/acapps/fridgechef/internal/recipes"
)

type Generator struct {
	client *goanthropic.Client
	model  string
}

func NewGenerator(apiKey, model string) *Generator {
	return newGenerator(apiKey, model, "")
}

// newGenerator allows tests to point the client at a fake server.
func newGenerator(apiKey, model, baseURL string) *Generator {
	var opts []goanthropic.ClientOption
	if baseURL != "" {
		opts = append(opts, goanthropic.WithBaseURL(baseURL))
	}
	return &Generator{
		client: goanthropic.NewClient(apiKey, opts...),
		model:  model,
	}
}

func (g *Generator) Generate(ctx context.Context, imageDataURL string) (string, error) {
	// The Messages API wants raw base64 with an explicit media type, not a
	// data URL, so unpack it first.
	mimeType, imageData, err := recipes.DecodeDataURL(imageDataURL)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	resp, err := g.client.CreateMessages(ctx, goanthropic.MessagesRequest{
		Model:     goanthropic.Model(g.model),
		MaxTokens: recipes.MaxResponseTokens,
		Messages: []goanthropic.Message{
			{
				Role: goanthropic.RoleUser,
				Content: []goanthropic.MessageContent{
					goanthropic.NewImageMessageContent(
						goanthropic.NewMessageContentSource(
							goanthropic.MessagesContentSourceTypeBase64,
							mimeType,
							imageData,
						),
					),
					goanthropic.NewTextMessageContent(recipes.GenerationPrompt),
				},
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to call anthropic: %w", err)
	}

	for _, content := range resp.Content {
		if content.Type == goanthropic.MessagesContentTypeText && content.Text != nil {
			return *content.Text, nil
		}
	}
	return "", domain.ErrEmptyResponse
}
