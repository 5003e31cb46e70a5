package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/acapps/fridgechef/internal/domain"
	"github.com/acapps/fridgechef/internal/recipes"
)

// mediaFetcher is the subset of whatsapp.MediaFetcher that RecipeService
// requires.
type mediaFetcher interface {
	FetchAsDataURL(ctx context.Context, mediaURL string) (string, error)
}

// RecipeService orchestrates a single generation: build the multimodal
// request, call the model, hand the raw text to the extractor. It holds no
// per-request state and is safe for concurrent use.
type RecipeService struct {
	generator recipes.Generator
	fetcher   mediaFetcher
	extractor *recipes.Extractor
	logger    *slog.Logger
}

// NewRecipeService wires the orchestrator. generator may be nil when model
// credentials are absent; fetcher may be nil when messaging credentials are
// absent. Calls through a nil dependency fail with domain.ErrNotConfigured
// before any network activity.
func NewRecipeService(generator recipes.Generator, fetcher mediaFetcher, extractor *recipes.Extractor, logger *slog.Logger) *RecipeService {
	return &RecipeService{
		generator: generator,
		fetcher:   fetcher,
		extractor: extractor,
		logger:    logger,
	}
}

// Configured reports whether the generation backend is available.
func (s *RecipeService) Configured() bool {
	return s.generator != nil
}

// GenerateFromImage produces exactly domain.RecipeCount recipes for an inline
// data-URL image.
func (s *RecipeService) GenerateFromImage(ctx context.Context, imageDataURL string) ([]domain.Recipe, error) {
	if s.generator == nil {
		return nil, domain.ErrNotConfigured
	}
	if strings.TrimSpace(imageDataURL) == "" {
		return nil, domain.ErrMissingImage
	}

	s.logger.Info("recipe generation started", "image_bytes", len(imageDataURL))

	raw, err := s.generator.Generate(ctx, imageDataURL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate recipes: %w", err)
	}

	result, err := s.extractor.Extract(raw)
	if err != nil {
		var parseErr *recipes.ParseError
		if errors.As(err, &parseErr) {
			// The raw text is diagnostic only; it never reaches the end user.
			s.logger.Error("failed to parse model response", "raw", parseErr.Raw)
		}
		return nil, err
	}

	s.logger.Info("recipe generation complete", "recipes", len(result))
	return result, nil
}

// GenerateFromMediaURL fetches a messaging-provider attachment, re-wraps it
// as a data URL, and generates recipes from it.
func (s *RecipeService) GenerateFromMediaURL(ctx context.Context, mediaURL string) ([]domain.Recipe, error) {
	if s.fetcher == nil {
		return nil, domain.ErrNotConfigured
	}

	dataURL, err := s.fetcher.FetchAsDataURL(ctx, mediaURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch attachment: %w", err)
	}

	return s.GenerateFromImage(ctx, dataURL)
}
