package entities

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/omarzayed/supportdesk/internal/llm"
)

// Extractor produces a deduplicated list of typed entities from one message.
// The pattern stage always runs; the model stage is best-effort and its
// failures never fail the overall extraction.
type Extractor struct {
	provider llm.Provider
	model    string
	timeout  time.Duration
	log      zerolog.Logger
}

// New creates an extractor. A nil provider disables the model stage. A
// timeout of zero leaves the caller's context bound unchanged.
func New(provider llm.Provider, model string, timeout time.Duration, log zerolog.Logger) *Extractor {
	return &Extractor{
		provider: provider,
		model:    model,
		timeout:  timeout,
		log:      log.With().Str("component", "entities").Logger(),
	}
}

// Extract runs both stages and merges the results, keeping the highest
// confidence per (type, lowercased value).
func (e *Extractor) Extract(ctx context.Context, text string) []Entity {
	found := ExtractPatterns(text)

	if e.provider != nil {
		modelEntities, err := e.extractWithModel(ctx, text)
		if err != nil {
			e.log.Warn().Err(err).Msg("model entity extraction failed, using pattern results only")
		} else {
			found = append(found, modelEntities...)
		}
	}

	return Deduplicate(found)
}

// ExtractPatterns runs only the regex stage.
func ExtractPatterns(text string) []Entity {
	var found []Entity
	for _, p := range patterns {
		for _, m := range p.re.FindAllStringSubmatchIndex(text, -1) {
			start, end := m[0], m[1]
			value := text[start:end]
			// Use the captured group when the pattern has one and it matched.
			if p.re.NumSubexp() > 0 && m[2] >= 0 {
				value = text[m[2]:m[3]]
			}
			found = append(found, Entity{
				Type:       p.entityType,
				Value:      strings.TrimSpace(value),
				Confidence: patternConfidence,
				Source:     SourcePattern,
				Start:      start,
				End:        end,
			})
		}
	}
	return found
}

const extractionSystemPrompt = "You are an expert entity extraction system for customer support. " +
	"Extract relevant entities accurately from customer messages."

func extractionPrompt(text string) string {
	return fmt.Sprintf(`Extract relevant entities from this customer support message. Focus on:
- Product names or models
- Account numbers or IDs
- Transaction amounts
- Dates and times
- Customer names
- Technical terms or error codes
- Location information

Customer message: %q

Respond with JSON in this format:
{
  "entities": [
    {"type": "entity_type", "value": "extracted_value", "confidence": 0.95}
  ]
}

Only extract entities that are clearly present in the text. If no entities
are found, return an empty entities array.`, text)
}

type modelEntity struct {
	Type       string   `json:"type"`
	Value      string   `json:"value"`
	Confidence *float64 `json:"confidence"`
}

type modelExtraction struct {
	Entities []modelEntity `json:"entities"`
}

func (e *Extractor) extractWithModel(ctx context.Context, text string) ([]Entity, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	resp, err := e.provider.Complete(ctx, llm.CompletionRequest{
		Model: e.model,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: extractionSystemPrompt},
			{Role: llm.RoleUser, Content: extractionPrompt(text)},
		},
		Temperature: 0.1,
		JSONMode:    true,
	})
	if err != nil {
		return nil, fmt.Errorf("model completion: %w", err)
	}

	var parsed modelExtraction
	if err := json.Unmarshal([]byte(resp.Content), &parsed); err != nil {
		return nil, fmt.Errorf("parsing model response: %w", err)
	}

	var found []Entity
	for _, me := range parsed.Entities {
		if me.Type == "" || me.Value == "" {
			continue
		}
		confidence := 0.8
		if me.Confidence != nil {
			confidence = clamp(*me.Confidence, 0, 1)
		}
		found = append(found, Entity{
			Type:       me.Type,
			Value:      me.Value,
			Confidence: confidence,
			Source:     SourceModel,
			Start:      -1,
			End:        -1,
		})
	}
	return found, nil
}

// Deduplicate merges entities by (type, lowercased value), keeping the one
// with strictly higher confidence. The first occurrence wins ties and output
// preserves first-seen order.
func Deduplicate(found []Entity) []Entity {
	best := make(map[string]int)
	var out []Entity

	for _, ent := range found {
		key := ent.Type + "_" + strings.ToLower(ent.Value)
		if i, ok := best[key]; ok {
			if ent.Confidence > out[i].Confidence {
				out[i] = ent
			}
			continue
		}
		best[key] = len(out)
		out = append(out, ent)
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
