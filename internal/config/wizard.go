package config

import (
	"fmt"
	"strconv"

	"github.com/manifoldco/promptui"
)

// RunWizard walks the user through the settings that matter most and
// saves the result to path. Everything not asked keeps its default.
func RunWizard(path string) (*Config, error) {
	cfg := DefaultConfig()

	providerPrompt := promptui.Select{
		Label: "Select LLM provider",
		Items: []string{"openai", "ollama"},
	}
	_, providerStr, err := providerPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("provider selection: %w", err)
	}
	cfg.Provider = ProviderType(providerStr)

	defaultModel := "gpt-4o"
	if cfg.Provider == ProviderOllama {
		defaultModel = "llama3.1"
	}
	modelPrompt := promptui.Prompt{
		Label:   "Model name",
		Default: defaultModel,
	}
	if cfg.Model, err = modelPrompt.Run(); err != nil {
		return nil, fmt.Errorf("model: %w", err)
	}

	dataPrompt := promptui.Prompt{
		Label:   "Data directory (FAQ catalog, intents, archive)",
		Default: cfg.DataDir,
	}
	if cfg.DataDir, err = dataPrompt.Run(); err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}
	cfg.FAQFile = cfg.DataDir + "/faqs.json"
	cfg.IntentFile = cfg.DataDir + "/intents.json"

	portPrompt := promptui.Prompt{
		Label:   "HTTP port",
		Default: strconv.Itoa(cfg.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 || n > 65535 {
				return fmt.Errorf("port must be between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Port, _ = strconv.Atoi(portStr)

	emailPrompt := promptui.Prompt{
		Label:   "Support email shown in escalations",
		Default: cfg.Support.Email,
	}
	if cfg.Support.Email, err = emailPrompt.Run(); err != nil {
		return nil, fmt.Errorf("support email: %w", err)
	}

	phonePrompt := promptui.Prompt{
		Label:   "Support phone shown in escalations",
		Default: cfg.Support.Phone,
	}
	if cfg.Support.Phone, err = phonePrompt.Run(); err != nil {
		return nil, fmt.Errorf("support phone: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("Configuration written to %s\n", path)
	return cfg, nil
}
