package recipes

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
)

// GenerationPrompt is the shared instruction used by all generation backends.
// It pins the recipe count, the required fields, and the output shape so the
// extractor has a predictable target to recover.
const GenerationPrompt = `Analyze this image of leftover ingredients from a kitchen and generate EXACTLY 3 different creative recipes.

For each recipe, provide:
1. Recipe name (creative and appetizing)
2. Brief description (2-3 sentences)
3. List of ingredients (be specific with quantities)
4. Step-by-step cooking instructions
5. Estimated cooking time
6. Difficulty level (Easy/Medium/Hard)

Format your response as a valid JSON array with this exact structure:
[
  {
    "name": "Recipe Name",
    "description": "Brief description of the dish",
    "ingredients": ["ingredient 1", "ingredient 2", ...],
    "instructions": ["step 1", "step 2", ...],
    "cookingTime": "XX minutes",
    "difficulty": "Easy|Medium|Hard"
  }
]

Make sure to generate 3 diverse recipes that use the ingredients shown in different ways. Focus on practical, delicious recipes that can be made with common kitchen items.`

// MaxResponseTokens bounds the model response length. Three recipes with
// descriptions and step lists fit comfortably; the bound keeps a rambling
// model from running away.
const MaxResponseTokens = 2000

// Generator produces raw model text for an image of ingredients. The image is
// a data URL (base64-encoded bytes with a MIME type). Implementations return
// domain.ErrEmptyResponse when the model yields no usable text.
type Generator interface {
	Generate(ctx context.Context, imageDataURL string) (string, error)
}

// DecodeDataURL splits a "data:<mime>;base64,<payload>" URL into its MIME
// type and decoded bytes. The MIME type defaults to image/jpeg when absent.
func DecodeDataURL(dataURL string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(dataURL, "data:")
	if !ok {
		return "", nil, fmt.Errorf("not a data URL")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("malformed data URL: no payload")
	}
	if !strings.HasSuffix(meta, ";base64") {
		return "", nil, fmt.Errorf("malformed data URL: not base64 encoded")
	}
	mimeType := strings.TrimSuffix(meta, ";base64")
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("malformed data URL: %w", err)
	}
	return mimeType, data, nil
}
