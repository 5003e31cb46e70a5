package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/acapps/fridgechef/internal/domain"
	"github.com/acapps/fridgechef/internal/recipes"
)

// handleGenerateRecipes serves the browser flow: a JSON body with an inline
// data-URL image, answered with exactly three recipes or an error message.
func (s *Server) handleGenerateRecipes(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Image string `json:"image"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Image == "" {
		s.writeJSONError(w, http.StatusBadRequest, "No image provided")
		return
	}

	result, err := s.service.GenerateFromImage(r.Context(), req.Image)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotConfigured):
			s.writeJSONError(w, http.StatusInternalServerError, "Model API key not configured")
		case errors.Is(err, domain.ErrMissingImage):
			s.writeJSONError(w, http.StatusBadRequest, "No image provided")
		default:
			s.logger.Error("recipe generation failed", "error", err)
			s.writeJSONError(w, http.StatusInternalServerError, generationErrorMessage(err))
		}
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"recipes": result})
}

// generationErrorMessage maps internal failures to short client-safe text.
// Raw model output never leaves the server.
func generationErrorMessage(err error) string {
	var parseErr *recipes.ParseError
	var insufficient *recipes.InsufficientRecipesError
	var malformed *recipes.MalformedRecipeError
	switch {
	case errors.As(err, &parseErr):
		return "Failed to parse recipe data"
	case errors.As(err, &insufficient), errors.As(err, &malformed):
		return "Failed to generate 3 recipes"
	case errors.Is(err, domain.ErrEmptyResponse):
		return "No response from model"
	default:
		return "Failed to generate recipes"
	}
}
