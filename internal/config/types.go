package config

import "time"

// ProviderType identifies an LLM provider.
type ProviderType string

const (
	ProviderOpenAI ProviderType = "openai"
	ProviderOllama ProviderType = "ollama"
)

// Config is the top-level supportdesk configuration, corresponding to .supportdesk.yml.
type Config struct {
	Provider ProviderType `yaml:"provider" koanf:"provider"`
	Model    string       `yaml:"model" koanf:"model"`

	// DataDir holds the FAQ/intent catalogs and the conversation archive.
	DataDir    string `yaml:"data_dir" koanf:"data_dir"`
	FAQFile    string `yaml:"faq_file" koanf:"faq_file"`
	IntentFile string `yaml:"intent_file" koanf:"intent_file"`

	Port int `yaml:"port" koanf:"port"`

	// MaxConversationAge controls the eviction sweep: conversations idle
	// longer than this are removed.
	MaxConversationAge time.Duration `yaml:"max_conversation_age" koanf:"max_conversation_age"`
	EvictInterval      time.Duration `yaml:"evict_interval" koanf:"evict_interval"`

	// HistoryWindow is the number of prior messages sent to the model for context.
	HistoryWindow int `yaml:"history_window" koanf:"history_window"`

	// FAQThreshold is the minimum combined similarity score for an FAQ answer.
	FAQThreshold float64 `yaml:"faq_threshold" koanf:"faq_threshold"`

	// LLMTimeout bounds every external model call.
	LLMTimeout time.Duration `yaml:"llm_timeout" koanf:"llm_timeout"`

	// RequestsPerMinute throttles model calls. Zero disables throttling.
	RequestsPerMinute int `yaml:"requests_per_minute" koanf:"requests_per_minute"`

	Support SupportConfig `yaml:"support" koanf:"support"`

	// AllowAllOrigins relaxes CORS for local development.
	AllowAllOrigins bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}

// SupportConfig holds the human-support contact details used in escalation
// and fallback replies.
type SupportConfig struct {
	Email string `yaml:"email" koanf:"email"`
	Phone string `yaml:"phone" koanf:"phone"`
}
