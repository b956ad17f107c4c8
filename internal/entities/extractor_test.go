package entities

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/omarzayed/supportdesk/internal/llm"
)

// mockProvider returns a canned completion or error.
type mockProvider struct {
	content string
	err     error
	delay   time.Duration
}

func (m *mockProvider) Name() string { return "mock" }

func (m *mockProvider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	if m.delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(m.delay):
		}
	}
	if m.err != nil {
		return nil, m.err
	}
	return &llm.CompletionResponse{Content: m.content}, nil
}

func findEntity(found []Entity, entityType, value string) *Entity {
	for i := range found {
		if found[i].Type == entityType && found[i].Value == value {
			return &found[i]
		}
	}
	return nil
}

func TestExtractPatterns(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		entityType string
		value      string
	}{
		{"order with hash", "my order #ABC1234 never arrived", "order_number", "ABC1234"},
		{"order with colon", "order: XYZ999Q is late", "order_number", "XYZ999Q"},
		{"email", "reach me at jane.doe@example.com please", "email", "jane.doe@example.com"},
		{"phone dashes", "call 555-123-4567 tomorrow", "phone", "555-123-4567"},
		{"phone dots", "it's 212.555.0199", "phone", "212.555.0199"},
		{"product id", "the sku: B00X1234 is defective", "product_id", "B00X1234"},
		{"amount with symbol", "I was charged $49.99 twice", "amount", "$49.99"},
		{"date relative", "it should arrive tomorrow", "date", "tomorrow"},
		{"date numeric", "ordered on 12/05/2024", "date", "12/05/2024"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found := ExtractPatterns(tt.text)
			ent := findEntity(found, tt.entityType, tt.value)
			if ent == nil {
				t.Fatalf("expected %s %q in %v", tt.entityType, tt.value, found)
			}
			if ent.Confidence != 0.9 {
				t.Errorf("confidence = %v, want 0.9", ent.Confidence)
			}
			if ent.Source != SourcePattern {
				t.Errorf("source = %q, want pattern", ent.Source)
			}
			if ent.Start < 0 || ent.End <= ent.Start {
				t.Errorf("span [%d,%d) is not a valid offset range", ent.Start, ent.End)
			}
		})
	}
}

func TestExtractPatternsNothingFound(t *testing.T) {
	if found := ExtractPatterns("just a plain sentence"); len(found) != 0 {
		t.Errorf("expected no entities, got %v", found)
	}
}

func TestDeduplicateKeepsHighestConfidence(t *testing.T) {
	found := []Entity{
		{Type: "order_number", Value: "ABC123", Confidence: 0.6, Source: SourceModel},
		{Type: "order_number", Value: "abc123", Confidence: 0.9, Source: SourcePattern},
	}

	out := Deduplicate(found)
	if len(out) != 1 {
		t.Fatalf("got %d entities, want 1", len(out))
	}
	if out[0].Confidence != 0.9 {
		t.Errorf("confidence = %v, want 0.9", out[0].Confidence)
	}
}

func TestDeduplicateFirstWinsOnTie(t *testing.T) {
	found := []Entity{
		{Type: "email", Value: "a@b.com", Confidence: 0.9, Source: SourcePattern},
		{Type: "email", Value: "A@B.COM", Confidence: 0.9, Source: SourceModel},
	}

	out := Deduplicate(found)
	if len(out) != 1 {
		t.Fatalf("got %d entities, want 1", len(out))
	}
	if out[0].Source != SourcePattern {
		t.Errorf("source = %q, want the first-seen entity kept on equal confidence", out[0].Source)
	}
}

func TestDeduplicateDistinctTypesKept(t *testing.T) {
	found := []Entity{
		{Type: "order_number", Value: "ABC123", Confidence: 0.9},
		{Type: "product_id", Value: "ABC123", Confidence: 0.9},
	}
	if out := Deduplicate(found); len(out) != 2 {
		t.Errorf("got %d entities, want 2 (identity is type+value)", len(out))
	}
}

func TestExtractMergesModelEntities(t *testing.T) {
	provider := &mockProvider{
		content: `{"entities": [
			{"type": "product_name", "value": "UltraWidget 3000", "confidence": 0.95},
			{"type": "amount", "value": "$49.99", "confidence": 1.7}
		]}`,
	}
	ex := New(provider, "test-model", 0, zerolog.Nop())

	found := ex.Extract(context.Background(), "my UltraWidget 3000 cost $49.99")

	product := findEntity(found, "product_name", "UltraWidget 3000")
	if product == nil {
		t.Fatalf("expected model entity in %v", found)
	}
	if product.Source != SourceModel {
		t.Errorf("source = %q, want model", product.Source)
	}

	// The pattern match for the amount has confidence 0.9; the model's
	// claimed 1.7 clamps to 1.0 and wins the dedup.
	amount := findEntity(found, "amount", "$49.99")
	if amount == nil {
		t.Fatal("expected amount entity")
	}
	if amount.Confidence != 1.0 {
		t.Errorf("amount confidence = %v, want clamped 1.0", amount.Confidence)
	}
}

func TestExtractSurvivesModelFailure(t *testing.T) {
	provider := &mockProvider{err: errors.New("model unavailable")}
	ex := New(provider, "test-model", 0, zerolog.Nop())

	found := ex.Extract(context.Background(), "my order #ABC1234 is late")
	if ent := findEntity(found, "order_number", "ABC1234"); ent == nil {
		t.Errorf("pattern results should survive a model failure, got %v", found)
	}
}

func TestExtractSurvivesModelGarbage(t *testing.T) {
	provider := &mockProvider{content: "not json at all"}
	ex := New(provider, "test-model", 0, zerolog.Nop())

	found := ex.Extract(context.Background(), "email me at a@b.com")
	if ent := findEntity(found, "email", "a@b.com"); ent == nil {
		t.Errorf("pattern results should survive an unparseable model reply, got %v", found)
	}
}

func TestExtractDegradesOnTimeout(t *testing.T) {
	provider := &mockProvider{
		content: `{"entities": [{"type": "customer_name", "value": "Dana"}]}`,
		delay:   time.Second,
	}
	ex := New(provider, "test-model", 10*time.Millisecond, zerolog.Nop())

	start := time.Now()
	found := ex.Extract(context.Background(), "this is Dana, order #ABC1234")
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("extraction took %v, should be bounded by the timeout", elapsed)
	}

	if ent := findEntity(found, "order_number", "ABC1234"); ent == nil {
		t.Error("pattern results should survive a model timeout")
	}
	if ent := findEntity(found, "customer_name", "Dana"); ent != nil {
		t.Error("timed-out model entities should not appear")
	}
}

func TestExtractWithoutProvider(t *testing.T) {
	ex := New(nil, "", 0, zerolog.Nop())
	found := ex.Extract(context.Background(), "order #ABC1234")
	if ent := findEntity(found, "order_number", "ABC1234"); ent == nil {
		t.Fatalf("expected pattern-only extraction to work without a provider, got %v", found)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		entityType string
		value      string
		want       bool
	}{
		{"email", "user@example.com", true},
		{"email", "not-an-email", false},
		{"email", "trailing@example.com extra", false},
		{"phone", "555-123-4567", true},
		{"phone", "+1 (555) 123-4567", true},
		{"phone", "12345", false},
		{"order_number", "ABC123", true},
		{"order_number", "AB12", false},
		{"order_number", "ABC-123", false},
		{"amount", "$49.99", true},
		{"amount", "49.99", true},
		{"amount", "$forty", false},
		{"mystery_type", "anything", true},
	}

	for _, tt := range tests {
		t.Run(tt.entityType+"/"+tt.value, func(t *testing.T) {
			if got := Validate(tt.entityType, tt.value); got != tt.want {
				t.Errorf("Validate(%q, %q) = %v, want %v", tt.entityType, tt.value, got, tt.want)
			}
		})
	}
}
