package config

import "os"

type Config struct {
	Port string

	// Default AI provider for new sessions: "openai" | "gemini".
	AIProvider string

	GeminiAPIKey string
	GeminiModel  string
	OpenAIAPIKey string
	OpenAIModel  string

	// Optional. Empty means report/order persistence is disabled.
	DatabaseURL string

	// Optional. Empty means the simulated gateway is used.
	PaystackSecretKey string

	TelegramToken string
	// Optional. Empty means the bot falls back to long polling.
	WebhookURL string
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Load reads configuration from the environment. API keys are deliberately
// optional: the service must start unconfigured and report that state to
// callers instead of refusing to boot.
func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8000"),

		AIProvider: getEnv("AI_PROVIDER", "openai"),

		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:  getEnv("OPENAI_MODEL", "gpt-4o-mini"),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		PaystackSecretKey: os.Getenv("PAYSTACK_SECRET_KEY"),

		TelegramToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		WebhookURL:    os.Getenv("WEBHOOK_URL"),
	}
}
