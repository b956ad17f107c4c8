package config

import "time"

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		Provider:           ProviderOpenAI,
		Model:              "gpt-4o",
		DataDir:            "data",
		FAQFile:            "data/faqs.json",
		IntentFile:         "data/intents.json",
		Port:               8080,
		MaxConversationAge: 24 * time.Hour,
		EvictInterval:      time.Hour,
		HistoryWindow:      6,
		FAQThreshold:       0.6,
		LLMTimeout:         30 * time.Second,
		RequestsPerMinute:  60,
		Support: SupportConfig{
			Email: "support@company.com",
			Phone: "1-800-SUPPORT",
		},
	}
}
