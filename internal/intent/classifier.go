package intent

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/omarzayed/supportdesk/internal/llm"
)

// Classifier labels a message with one of the cataloged intents using the
// external model, falling back to general_inquiry when the model fails or
// returns a label outside the catalog.
type Classifier struct {
	mu          sync.RWMutex
	definitions map[string]Definition
	path        string

	provider llm.Provider
	model    string
	timeout  time.Duration
	log      zerolog.Logger
}

// Load reads the intent catalog from the given JSON file, falling back to
// the in-code defaults when the file does not exist.
func Load(path string, provider llm.Provider, model string, timeout time.Duration, log zerolog.Logger) (*Classifier, error) {
	c := &Classifier{
		definitions: DefaultDefinitions(),
		path:        path,
		provider:    provider,
		model:       model,
		timeout:     timeout,
		log:         log.With().Str("component", "intent").Logger(),
	}

	if path == "" {
		return c, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading intent catalog %s: %w", path, err)
	}

	var definitions map[string]Definition
	if err := json.Unmarshal(data, &definitions); err != nil {
		return nil, fmt.Errorf("parsing intent catalog %s: %w", path, err)
	}
	c.definitions = definitions
	return c, nil
}

const classifierSystemPrompt = "You are an expert intent classification system for customer support. " +
	"Analyze customer messages and classify them accurately."

func (c *Classifier) classificationPrompt(message string) string {
	c.mu.RLock()
	descriptions := make(map[string]string, len(c.definitions))
	for name, def := range c.definitions {
		descriptions[name] = def.Description
	}
	c.mu.RUnlock()

	encoded, _ := json.MarshalIndent(descriptions, "", "  ")

	var b strings.Builder
	b.WriteString("Classify the following customer message into one of these intents and provide a confidence score.\n\n")
	b.WriteString("Available intents:\n")
	b.Write(encoded)
	fmt.Fprintf(&b, "\n\nCustomer message: %q\n\n", message)
	b.WriteString(`Please respond with JSON in this exact format:
{
  "intent": "intent_name",
  "confidence": 0.95,
  "reasoning": "Brief explanation of why this intent was chosen"
}

Choose the most appropriate intent from the list above.`)
	return b.String()
}

// Classify labels the message. It never returns an error: any failure
// degrades to the fallback result.
func (c *Classifier) Classify(ctx context.Context, message string) Result {
	if c.provider == nil {
		return fallbackResult("no classification provider configured")
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp, err := c.provider.Complete(ctx, llm.CompletionRequest{
		Model: c.model,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: classifierSystemPrompt},
			{Role: llm.RoleUser, Content: c.classificationPrompt(message)},
		},
		Temperature: 0.1,
		JSONMode:    true,
	})
	if err != nil {
		c.log.Warn().Err(err).Msg("intent classification failed")
		return fallbackResult("Fallback due to classification error")
	}

	var result Result
	if err := json.Unmarshal([]byte(resp.Content), &result); err != nil {
		c.log.Warn().Err(err).Msg("unparseable intent classification response")
		return fallbackResult("Fallback due to classification error")
	}

	c.mu.RLock()
	_, known := c.definitions[result.Intent]
	c.mu.RUnlock()
	if !known {
		result.Intent = FallbackIntent
		result.Confidence = FallbackConfidence
	}

	if result.Confidence < 0 {
		result.Confidence = 0
	} else if result.Confidence > 1 {
		result.Confidence = 1
	}
	return result
}

func fallbackResult(reasoning string) Result {
	return Result{
		Intent:     FallbackIntent,
		Confidence: FallbackConfidence,
		Reasoning:  reasoning,
	}
}

// Get returns the definition of the named intent.
func (c *Classifier) Get(name string) (Definition, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	def, ok := c.definitions[name]
	return def, ok
}

// Names returns the sorted intent names.
func (c *Classifier) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.definitions))
	for name := range c.definitions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Add registers a new intent and persists the catalog. A persistence failure
// is logged; the in-memory change stands.
func (c *Classifier) Add(name, description string, examples []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.definitions[name] = Definition{Description: description, Examples: examples}
	c.persistLocked()
}

// persistLocked re-serializes the full catalog. Must be called with the
// write lock held.
func (c *Classifier) persistLocked() {
	if c.path == "" {
		return
	}

	data, err := json.MarshalIndent(c.definitions, "", "  ")
	if err != nil {
		c.log.Error().Err(err).Msg("marshalling intent catalog")
		return
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0755); err != nil {
		c.log.Error().Err(err).Str("path", c.path).Msg("creating intent catalog directory")
		return
	}
	if err := os.WriteFile(c.path, data, 0644); err != nil {
		c.log.Error().Err(err).Str("path", c.path).Msg("saving intent catalog")
	}
}
