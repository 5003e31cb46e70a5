package whatsapp

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/acapps/fridgechef/internal/domain"
)

const (
	welcomeMessage = "👋 Welcome to Leftover Recipe AI!\n\nPlease send me an image of your leftover ingredients, and I'll generate 3 delicious recipes for you! 📸🍳"

	processingMessage = "🔄 Analyzing your ingredients... I'll send you 3 amazing recipes in a moment!"

	completionMessage = "✅ All recipes sent! Enjoy cooking! 👨‍🍳\n\nSend another image anytime for more recipes!"

	errorMessage = "❌ Sorry, I encountered an error processing your image. Please try again or check if the image is clear."
)

// DefaultPacing is the minimum delay between consecutive sends. WhatsApp
// delivers messages in submission order only when they are not submitted in
// a burst, so the dispatcher paces them.
const DefaultPacing = time.Second

// Dispatcher sends recipe messages to a recipient strictly in order, one at a
// time, with a pacing delay between consecutive sends. It is stateless apart
// from its configuration and safe for concurrent use across recipients.
type Dispatcher struct {
	sender Sender
	pacing time.Duration
	logger *slog.Logger

	// sleep is swapped out in tests to observe pacing without waiting.
	sleep func(time.Duration)
}

func NewDispatcher(sender Sender, pacing time.Duration, logger *slog.Logger) *Dispatcher {
	if pacing <= 0 {
		pacing = DefaultPacing
	}
	return &Dispatcher{
		sender: sender,
		pacing: pacing,
		logger: logger,
		sleep:  time.Sleep,
	}
}

// SendRecipes delivers the full recipe sequence: a processing notice, one
// message per recipe in index order, and a completion notice. The next send
// starts only after the previous one completes; concurrent fan-out would
// break the numbered presentation. Any send failure aborts the remainder.
func (d *Dispatcher) SendRecipes(ctx context.Context, to string, recipes []domain.Recipe) error {
	if err := d.sender.Send(ctx, to, processingMessage); err != nil {
		return fmt.Errorf("failed to send processing notice: %w", err)
	}
	d.sleep(d.pacing)

	for i, recipe := range recipes {
		if err := d.sender.Send(ctx, to, FormatRecipe(recipe, i+1)); err != nil {
			return fmt.Errorf("failed to send recipe %d: %w", i+1, err)
		}
		d.logger.Info("recipe message sent", "to", to, "recipe", i+1, "name", recipe.Name)
		d.sleep(d.pacing)
	}

	if err := d.sender.Send(ctx, to, completionMessage); err != nil {
		return fmt.Errorf("failed to send completion notice: %w", err)
	}
	return nil
}

// SendWelcome sends the help message for events that carried no image.
func (d *Dispatcher) SendWelcome(ctx context.Context, to string) error {
	if err := d.sender.Send(ctx, to, welcomeMessage); err != nil {
		return fmt.Errorf("failed to send welcome message: %w", err)
	}
	return nil
}

// SendErrorNotice makes a best-effort attempt to tell the sender something
// went wrong. A failure here is logged and swallowed so it never masks the
// original error.
func (d *Dispatcher) SendErrorNotice(ctx context.Context, to string) {
	if err := d.sender.Send(ctx, to, errorMessage); err != nil {
		d.logger.Error("failed to send error notice", "to", to, "error", err)
	}
}
