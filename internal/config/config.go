package config

import (
	"os"
	"time"
)

// Config holds every runtime setting. It is constructed once at startup and
// treated as read-only afterwards; components receive the fields they need
// explicitly rather than reading the environment themselves.
type Config struct {
	ListenAddr    string
	PublicBaseURL string

	ModelBackend    string
	OpenAIAPIKey    string
	OpenAIModel     string
	AnthropicAPIKey string
	AnthropicModel  string

	TwilioAccountSID     string
	TwilioAuthToken      string
	TwilioWhatsAppNumber string

	ValidationMode string
	MessagePacing  time.Duration

	LogLevel  string
	LogFormat string
	LogFile   string
}

func Load() *Config {
	return &Config{
		ListenAddr:    getEnv("LISTEN_ADDR", ":8080"),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", "http://localhost:8080"),

		ModelBackend:    getEnv("MODEL_BACKEND", "openai"),
		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:     getEnv("OPENAI_MODEL", "gpt-4o"),
		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
		AnthropicModel:  getEnv("ANTHROPIC_MODEL", "claude-3-5-sonnet-latest"),

		TwilioAccountSID:     getEnv("TWILIO_ACCOUNT_SID", ""),
		TwilioAuthToken:      getEnv("TWILIO_AUTH_TOKEN", ""),
		TwilioWhatsAppNumber: getEnv("TWILIO_WHATSAPP_NUMBER", ""),

		ValidationMode: getEnv("VALIDATION_MODE", "lenient"),
		MessagePacing:  getDuration("MESSAGE_PACING", time.Second),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
		LogFile:   getEnv("LOG_FILE", ""),
	}
}

// ModelAPIKey returns the API key for the selected model backend.
func (c *Config) ModelAPIKey() string {
	if c.ModelBackend == "anthropic" {
		return c.AnthropicAPIKey
	}
	return c.OpenAIAPIKey
}

// ModelConfigured reports whether the selected generation backend has
// credentials.
func (c *Config) ModelConfigured() bool {
	return c.ModelAPIKey() != ""
}

// MessagingConfigured reports whether all Twilio credentials are present.
func (c *Config) MessagingConfigured() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != "" && c.TwilioWhatsAppNumber != ""
}

// FullyConfigured reports whether both the model and messaging credentials
// are present. The status endpoint exposes this to operators.
func (c *Config) FullyConfigured() bool {
	return c.ModelConfigured() && c.MessagingConfigured()
}

// StrictValidation reports whether extraction should reject recipes with
// missing required sub-fields.
func (c *Config) StrictValidation() bool {
	return c.ValidationMode == "strict"
}

func getEnv(key, defaultVal string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	val, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}
	return d
}
