package domain

// RecipeCount is the number of recipes every successful generation yields.
const RecipeCount = 3

// Recipe is the structured shape shared by every consumer of a generation
// result. It is built fresh per request from model output and never mutated
// after construction. Any field may be empty when the model under-delivers;
// renderers must cope with missing fields.
type Recipe struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	CookingTime  string   `json:"cookingTime"`
	Difficulty   string   `json:"difficulty"`
}
