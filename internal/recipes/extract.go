package recipes

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/acapps/fridgechef/internal/domain"
)

// ParseError is returned when neither the bracket span nor the whole response
// parses as JSON. Raw carries the full model text for diagnostics; it is
// logged, never shown to the end user.
type ParseError struct {
	Raw string
}

func (e *ParseError) Error() string {
	return "no JSON recipe array found in model response"
}

// InsufficientRecipesError is returned when the response parses but does not
// hold at least the required number of recipes.
type InsufficientRecipesError struct {
	Count int
}

func (e *InsufficientRecipesError) Error() string {
	return fmt.Sprintf("model returned %d recipes, need %d", e.Count, domain.RecipeCount)
}

// MalformedRecipeError is returned in strict mode when a kept recipe is
// missing a required sub-field.
type MalformedRecipeError struct {
	Index int
	Field string
}

func (e *MalformedRecipeError) Error() string {
	return fmt.Sprintf("recipe %d is missing %s", e.Index+1, e.Field)
}

// Extractor recovers a fixed-size recipe list from free-form model output.
// Strict additionally rejects recipes with empty required sub-fields; the
// default lenient mode leaves that to the renderer.
type Extractor struct {
	Strict bool
}

// Extract parses raw model text into exactly domain.RecipeCount recipes.
// The model is instructed to return a bare JSON array but is not guaranteed
// to: prose and markdown fences around the array are common. Extraction is
// therefore two-stage: first the greedy span from the first '[' to the last
// ']', then the whole text as-is. Extra recipes are dropped, order preserved.
func (x *Extractor) Extract(raw string) ([]domain.Recipe, error) {
	var recipes []domain.Recipe
	parsed := false

	if span, ok := bracketSpan(raw); ok {
		if err := json.Unmarshal([]byte(span), &recipes); err == nil {
			parsed = true
		} else if json.Valid([]byte(span)) {
			// Valid JSON of the wrong shape, e.g. a single object.
			return nil, &InsufficientRecipesError{Count: 0}
		}
	}
	if !parsed {
		trimmed := strings.TrimSpace(raw)
		if err := json.Unmarshal([]byte(trimmed), &recipes); err != nil {
			if json.Valid([]byte(trimmed)) {
				return nil, &InsufficientRecipesError{Count: 0}
			}
			return nil, &ParseError{Raw: raw}
		}
	}

	if len(recipes) < domain.RecipeCount {
		return nil, &InsufficientRecipesError{Count: len(recipes)}
	}
	recipes = recipes[:domain.RecipeCount]

	if x.Strict {
		for i, r := range recipes {
			switch {
			case strings.TrimSpace(r.Name) == "":
				return nil, &MalformedRecipeError{Index: i, Field: "name"}
			case len(r.Ingredients) == 0:
				return nil, &MalformedRecipeError{Index: i, Field: "ingredients"}
			case len(r.Instructions) == 0:
				return nil, &MalformedRecipeError{Index: i, Field: "instructions"}
			}
		}
	}

	return recipes, nil
}

// bracketSpan returns the substring from the first '[' through the last ']'.
func bracketSpan(s string) (string, bool) {
	start := strings.IndexByte(s, '[')
	end := strings.LastIndexByte(s, ']')
	if start < 0 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}
