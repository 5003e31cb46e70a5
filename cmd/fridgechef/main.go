package main

import (
	"log"
	"log/slog"

	"github.com/joho/godotenv"

	"github.com/acapps/fridgechef/internal/config"
	"github.com/acapps/fridgechef/internal/logging"
	"github.com/acapps/fridgechef/internal/recipes"
	anthropicrecipes "github.com/acapps/fridgechef/internal/recipes/anthropic"
	openairecipes "github.com/acapps/fridgechef/internal/recipes/openai"
	"github.com/acapps/fridgechef/internal/service"
	"github.com/acapps/fridgechef/internal/web"
	"github.com/acapps/fridgechef/internal/whatsapp"
)

func main() {
	// A .env file is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFormat, cfg.LogFile)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer cleanup()

	generator := newGenerator(cfg, logger)
	extractor := &recipes.Extractor{Strict: cfg.StrictValidation()}

	// The messaging pieces stay nil when Twilio credentials are absent; the
	// webhook then answers 503 while the browser flow keeps working.
	svc := service.NewRecipeService(generator, nil, extractor, logger)
	var dispatcher web.Dispatcher
	if cfg.MessagingConfigured() {
		fetcher := whatsapp.NewMediaFetcher(cfg.TwilioAccountSID, cfg.TwilioAuthToken)
		sender := whatsapp.NewTwilioSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioWhatsAppNumber)
		dispatcher = whatsapp.NewDispatcher(sender, cfg.MessagePacing, logger)
		svc = service.NewRecipeService(generator, fetcher, extractor, logger)
		logger.Info("whatsapp messaging enabled", "from", cfg.TwilioWhatsAppNumber)
	} else {
		logger.Warn("whatsapp messaging disabled: twilio credentials not set")
	}

	webhookURL := cfg.PublicBaseURL + "/api/whatsapp/webhook"
	server := web.NewServer(svc, dispatcher, webhookURL, logger)

	if err := server.ListenAndServe(cfg.ListenAddr); err != nil {
		logger.Error("server error", "error", err)
	}
}

// newGenerator selects the generation backend. A nil return means no model
// credentials are configured; the service reports that per request instead of
// refusing to start, so the status endpoint stays reachable.
func newGenerator(cfg *config.Config, logger *slog.Logger) recipes.Generator {
	switch cfg.ModelBackend {
	case "anthropic":
		if cfg.AnthropicAPIKey == "" {
			logger.Warn("ANTHROPIC_API_KEY is not set; recipe generation disabled")
			return nil
		}
		logger.Info("using Anthropic generation backend", "model", cfg.AnthropicModel)
		return anthropicrecipes.NewGenerator(cfg.AnthropicAPIKey, cfg.AnthropicModel)
	default:
		if cfg.OpenAIAPIKey == "" {
			logger.Warn("OPENAI_API_KEY is not set; recipe generation disabled")
			return nil
		}
		logger.Info("using OpenAI generation backend", "model", cfg.OpenAIModel)
		return openairecipes.NewGenerator(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	}
}
