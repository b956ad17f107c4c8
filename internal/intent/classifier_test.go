package intent

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/omarzayed/supportdesk/internal/llm"
)

type mockProvider struct {
	content string
	err     error
	calls   int
}

func (m *mockProvider) Name() string { return "mock" }

func (m *mockProvider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return &llm.CompletionResponse{Content: m.content}, nil
}

func newTestClassifier(t *testing.T, provider llm.Provider) *Classifier {
	t.Helper()
	c, err := Load("", provider, "test-model", 0, zerolog.Nop())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return c
}

func TestClassify(t *testing.T) {
	provider := &mockProvider{
		content: `{"intent": "billing", "confidence": 0.92, "reasoning": "mentions a charge"}`,
	}
	c := newTestClassifier(t, provider)

	result := c.Classify(context.Background(), "I was charged twice")
	if result.Intent != "billing" {
		t.Errorf("intent = %q, want billing", result.Intent)
	}
	if result.Confidence != 0.92 {
		t.Errorf("confidence = %v, want 0.92", result.Confidence)
	}
	if provider.calls != 1 {
		t.Errorf("provider calls = %d, want 1", provider.calls)
	}
}

func TestClassifyUnknownIntentFallsBack(t *testing.T) {
	provider := &mockProvider{
		content: `{"intent": "interpretive_dance", "confidence": 0.99}`,
	}
	c := newTestClassifier(t, provider)

	result := c.Classify(context.Background(), "anything")
	if result.Intent != FallbackIntent {
		t.Errorf("intent = %q, want %q", result.Intent, FallbackIntent)
	}
	if result.Confidence != FallbackConfidence {
		t.Errorf("confidence = %v, want %v", result.Confidence, FallbackConfidence)
	}
}

func TestClassifyClampsConfidence(t *testing.T) {
	provider := &mockProvider{
		content: `{"intent": "complaint", "confidence": 1.8}`,
	}
	c := newTestClassifier(t, provider)

	result := c.Classify(context.Background(), "this is terrible")
	if result.Confidence != 1.0 {
		t.Errorf("confidence = %v, want clamped 1.0", result.Confidence)
	}
}

func TestClassifyProviderErrorFallsBack(t *testing.T) {
	provider := &mockProvider{err: errors.New("model unavailable")}
	c := newTestClassifier(t, provider)

	result := c.Classify(context.Background(), "anything")
	if result.Intent != FallbackIntent || result.Confidence != FallbackConfidence {
		t.Errorf("result = %+v, want fallback", result)
	}
}

func TestClassifyGarbageResponseFallsBack(t *testing.T) {
	provider := &mockProvider{content: "certainly! here is your answer"}
	c := newTestClassifier(t, provider)

	result := c.Classify(context.Background(), "anything")
	if result.Intent != FallbackIntent {
		t.Errorf("intent = %q, want fallback", result.Intent)
	}
}

func TestClassifyWithoutProvider(t *testing.T) {
	c := newTestClassifier(t, nil)

	result := c.Classify(context.Background(), "anything")
	if result.Intent != FallbackIntent {
		t.Errorf("intent = %q, want fallback", result.Intent)
	}
}

func TestAddAndNames(t *testing.T) {
	c := newTestClassifier(t, nil)

	c.Add("warranty", "Warranty coverage questions", []string{"is this covered"})

	def, ok := c.Get("warranty")
	if !ok {
		t.Fatal("expected new intent to be registered")
	}
	if def.Description != "Warranty coverage questions" {
		t.Errorf("description = %q", def.Description)
	}

	names := c.Names()
	if len(names) != 8 {
		t.Errorf("got %d intents, want 8 (7 defaults + 1 added)", len(names))
	}
}
