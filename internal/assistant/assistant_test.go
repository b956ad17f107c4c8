package assistant

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/omarzayed/supportdesk/internal/conversation"
	"github.com/omarzayed/supportdesk/internal/entities"
	"github.com/omarzayed/supportdesk/internal/faq"
	"github.com/omarzayed/supportdesk/internal/intent"
	"github.com/omarzayed/supportdesk/internal/llm"
)

// mockProvider answers classification requests (JSON mode) and generation
// requests with separate canned content.
type mockProvider struct {
	mu          sync.Mutex
	jsonContent string
	textContent string
	textErr     error
	generations []llm.CompletionRequest
}

func (m *mockProvider) Name() string { return "mock" }

func (m *mockProvider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if req.JSONMode {
		return &llm.CompletionResponse{Content: m.jsonContent}, nil
	}
	m.generations = append(m.generations, req)
	if m.textErr != nil {
		return nil, m.textErr
	}
	return &llm.CompletionResponse{Content: m.textContent}, nil
}

func newTestAssistant(t *testing.T, provider llm.Provider) *Assistant {
	t.Helper()
	log := zerolog.Nop()

	store := conversation.NewStore(0, log)
	extractor := entities.New(provider, "test-model", 0, log)
	classifier, err := intent.Load("", provider, "test-model", 0, log)
	if err != nil {
		t.Fatalf("intent.Load: %v", err)
	}
	catalog, err := faq.Load("", 0, log)
	if err != nil {
		t.Fatalf("faq.Load: %v", err)
	}

	return New(store, extractor, classifier, catalog, provider, Options{
		Model:         "test-model",
		HistoryWindow: 6,
		SupportEmail:  "support@company.com",
		SupportPhone:  "1-800-SUPPORT",
	}, log)
}

func TestRespondAnswersFromFAQ(t *testing.T) {
	provider := &mockProvider{
		jsonContent: `{"intent": "general_inquiry", "confidence": 0.9, "entities": []}`,
	}
	a := newTestAssistant(t, provider)

	reply := a.Respond(context.Background(), "", "what time do you open")
	if reply.Source != SourceFAQ {
		t.Fatalf("source = %q, want faq", reply.Source)
	}
	if !strings.Contains(reply.Response, "Monday through Friday") {
		t.Errorf("response = %q, want the business hours answer", reply.Response)
	}

	// No generation call should have happened.
	if len(provider.generations) != 0 {
		t.Errorf("got %d generation calls, want 0 on an FAQ hit", len(provider.generations))
	}

	// Both turns are in the store.
	msgs := a.Store().GetMessages(reply.ConversationID, 0)
	if len(msgs) != 2 {
		t.Fatalf("got %d messages, want 2", len(msgs))
	}
	if msgs[0].Role != conversation.RoleUser || msgs[1].Role != conversation.RoleAssistant {
		t.Errorf("roles = %q, %q", msgs[0].Role, msgs[1].Role)
	}
	if msgs[1].Metadata == nil || msgs[1].Metadata.Source != SourceFAQ {
		t.Error("assistant message should carry source metadata")
	}
}

func TestRespondFallsThroughToModel(t *testing.T) {
	provider := &mockProvider{
		jsonContent: `{"intent": "technical_support", "confidence": 0.85, "entities": []}`,
		textContent: "Let's try restarting the device first.",
	}
	a := newTestAssistant(t, provider)

	reply := a.Respond(context.Background(), "", "my gizmo started making a grinding noise")
	if reply.Source != SourceModel {
		t.Fatalf("source = %q, want model", reply.Source)
	}
	if reply.Response != "Let's try restarting the device first." {
		t.Errorf("response = %q", reply.Response)
	}
	if reply.Intent != "technical_support" {
		t.Errorf("intent = %q, want technical_support", reply.Intent)
	}

	if len(provider.generations) != 1 {
		t.Fatalf("got %d generation calls, want 1", len(provider.generations))
	}
	gen := provider.generations[0]
	if gen.Messages[0].Role != llm.RoleSystem {
		t.Error("generation should start with the system prompt")
	}
	last := gen.Messages[len(gen.Messages)-1]
	if !strings.Contains(last.Content, "Detected intent: technical_support") {
		t.Errorf("enhanced message missing intent context: %q", last.Content)
	}
	if gen.MaxTokens != 500 {
		t.Errorf("max tokens = %d, want 500", gen.MaxTokens)
	}
}

func TestRespondIncludesHistoryWindow(t *testing.T) {
	provider := &mockProvider{
		jsonContent: `{"intent": "general_inquiry", "confidence": 0.5}`,
		textContent: "ok",
	}
	a := newTestAssistant(t, provider)

	id := a.Store().Create()
	for i := 0; i < 10; i++ {
		a.Store().AddMessage(id, conversation.RoleUser, "earlier turn", nil)
	}

	a.Respond(context.Background(), id, "zzyzx quux flurble")

	gen := provider.generations[0]
	// System prompt + 6 history turns + enhanced message.
	if len(gen.Messages) != 8 {
		t.Errorf("got %d prompt messages, want 8", len(gen.Messages))
	}
}

func TestRespondTotalFailureUsesFallback(t *testing.T) {
	provider := &mockProvider{
		jsonContent: `{"intent": "general_inquiry", "confidence": 0.5}`,
		textErr:     errors.New("model down"),
	}
	a := newTestAssistant(t, provider)

	reply := a.Respond(context.Background(), "", "zzyzx quux flurble")
	if reply.Source != SourceError {
		t.Fatalf("source = %q, want error", reply.Source)
	}
	if reply.Intent != "error" || reply.Confidence != 0 {
		t.Errorf("intent/confidence = %q/%v, want error/0", reply.Intent, reply.Confidence)
	}
	if !strings.Contains(reply.Response, "technical difficulties") {
		t.Errorf("response = %q, want the apologetic fallback", reply.Response)
	}
}

func TestRespondCreatesConversationForUnknownID(t *testing.T) {
	provider := &mockProvider{
		jsonContent: `{"intent": "general_inquiry", "confidence": 0.5}`,
		textContent: "ok",
	}
	a := newTestAssistant(t, provider)

	reply := a.Respond(context.Background(), "no-such-id", "zzyzx quux flurble")
	if reply.ConversationID == "" || reply.ConversationID == "no-such-id" {
		t.Errorf("conversation id = %q, want a freshly created id", reply.ConversationID)
	}
	if a.Store().Get(reply.ConversationID) == nil {
		t.Error("the new conversation should exist in the store")
	}
}

func TestRespondExtractsEntities(t *testing.T) {
	provider := &mockProvider{
		jsonContent: `{"intent": "order_tracking", "confidence": 0.9, "entities": []}`,
		textContent: "Checking on that order now.",
	}
	a := newTestAssistant(t, provider)

	reply := a.Respond(context.Background(), "", "order #ZK81PQ4 hasn't moved in a week")

	var foundOrder bool
	for _, ent := range reply.Entities {
		if ent.Type == "order_number" && ent.Value == "ZK81PQ4" {
			foundOrder = true
		}
	}
	if !foundOrder {
		t.Errorf("entities = %v, want order_number ZK81PQ4", reply.Entities)
	}
}

func TestEscalate(t *testing.T) {
	a := newTestAssistant(t, &mockProvider{})

	id := a.Store().Create()
	message, ok := a.Escalate(id, "refund dispute")
	if !ok {
		t.Fatal("Escalate failed")
	}
	if !strings.Contains(message, "refund dispute") || !strings.Contains(message, id) {
		t.Errorf("message should mention the issue and conversation id: %q", message)
	}
	if !strings.Contains(message, "support@company.com") {
		t.Errorf("message should include the support contact: %q", message)
	}

	conv := a.Store().Get(id)
	if !conv.Escalated {
		t.Error("conversation should be marked escalated")
	}

	if _, ok := a.Escalate("no-such-id", "x"); ok {
		t.Error("Escalate on unknown id should return false")
	}
}
