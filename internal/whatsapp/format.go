package whatsapp

import (
	"fmt"
	"strings"

	"github.com/acapps/fridgechef/internal/domain"
)

// FormatRecipe renders one recipe as a WhatsApp text block. number is the
// 1-based position in the result list. Instruction order is step order and is
// preserved exactly as given. A recipe with missing sub-fields renders as an
// empty section rather than failing.
func FormatRecipe(r domain.Recipe, number int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📋 *Recipe %d: %s*\n\n", number, r.Name)
	fmt.Fprintf(&b, "%s\n\n", r.Description)
	fmt.Fprintf(&b, "⏱️ Time: %s\n", r.CookingTime)
	fmt.Fprintf(&b, "📊 Difficulty: %s\n\n", r.Difficulty)

	b.WriteString("*Ingredients:*\n")
	for _, ing := range r.Ingredients {
		fmt.Fprintf(&b, "• %s\n", ing)
	}

	b.WriteString("\n*Instructions:*\n")
	for i, step := range r.Instructions {
		fmt.Fprintf(&b, "%d. %s\n", i+1, step)
	}

	return b.String()
}
