package archive

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/omarzayed/supportdesk/internal/conversation"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	db, err := OpenMemory()
	if err != nil {
		t.Fatalf("opening in-memory database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewStore(db)
}

func sampleConversation(t *testing.T) (*conversation.Store, *conversation.Conversation) {
	t.Helper()
	convs := conversation.NewStore(time.Hour, zerolog.Nop())
	id := convs.Create()
	convs.AddMessage(id, conversation.RoleUser, "where is my order?", nil)
	convs.AddMessage(id, conversation.RoleAssistant, "let me check that for you", nil)
	score := 5
	convs.Resolve(id, &score)
	return convs, convs.Export(id)
}

func TestSaveAndGet(t *testing.T) {
	store := setupStore(t)
	_, conv := sampleConversation(t)

	if err := store.Save(context.Background(), conv); err != nil {
		t.Fatalf("saving conversation: %v", err)
	}

	got, err := store.Get(context.Background(), conv.ID)
	if err != nil {
		t.Fatalf("getting archived conversation: %v", err)
	}
	if got.ID != conv.ID {
		t.Errorf("id = %q, want %q", got.ID, conv.ID)
	}
	if len(got.Messages) != 2 {
		t.Errorf("messages = %d, want 2", len(got.Messages))
	}
	if !got.Resolved {
		t.Error("expected archived conversation to be resolved")
	}
	if got.SatisfactionScore == nil || *got.SatisfactionScore != 5 {
		t.Errorf("satisfaction score = %v, want 5", got.SatisfactionScore)
	}
}

func TestGetUnknownID(t *testing.T) {
	store := setupStore(t)
	if _, err := store.Get(context.Background(), "nope"); err != ErrNotFound {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestSaveReplacesExisting(t *testing.T) {
	store := setupStore(t)
	convs, conv := sampleConversation(t)

	if err := store.Save(context.Background(), conv); err != nil {
		t.Fatalf("first save: %v", err)
	}

	convs.AddMessage(conv.ID, conversation.RoleUser, "one more thing", nil)
	if err := store.Save(context.Background(), convs.Export(conv.ID)); err != nil {
		t.Fatalf("second save: %v", err)
	}

	records, err := store.List(context.Background(), 0)
	if err != nil {
		t.Fatalf("listing: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
	if records[0].MessageCount != 3 {
		t.Errorf("message count = %d, want 3", records[0].MessageCount)
	}
}

func TestListOrderAndLimit(t *testing.T) {
	store := setupStore(t)
	convs := conversation.NewStore(time.Hour, zerolog.Nop())

	var last string
	for i := 0; i < 3; i++ {
		id := convs.Create()
		convs.AddMessage(id, conversation.RoleUser, "hello", nil)
		if err := store.Save(context.Background(), convs.Export(id)); err != nil {
			t.Fatalf("saving: %v", err)
		}
		last = id
		time.Sleep(5 * time.Millisecond)
	}

	records, err := store.List(context.Background(), 2)
	if err != nil {
		t.Fatalf("listing: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
	if records[0].ID != last {
		t.Errorf("newest record = %q, want %q", records[0].ID, last)
	}
}

func TestDelete(t *testing.T) {
	store := setupStore(t)
	_, conv := sampleConversation(t)

	if err := store.Save(context.Background(), conv); err != nil {
		t.Fatalf("saving: %v", err)
	}
	if err := store.Delete(context.Background(), conv.ID); err != nil {
		t.Fatalf("deleting: %v", err)
	}
	if err := store.Delete(context.Background(), conv.ID); err != ErrNotFound {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}
}

func TestArchiveRoute(t *testing.T) {
	store := setupStore(t)
	convs, conv := sampleConversation(t)

	r := chi.NewRouter()
	RegisterRoutes(r, store, convs)
	srv := httptest.NewServer(r)
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/api/archive/"+conv.ID+"?delete=true", "application/json", nil)
	if err != nil {
		t.Fatalf("posting: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}

	if convs.Get(conv.ID) != nil {
		t.Error("expected conversation to be deleted from the live store")
	}
	if _, err := store.Get(context.Background(), conv.ID); err != nil {
		t.Errorf("archived copy missing: %v", err)
	}

	resp, err = http.Post(srv.URL+"/api/archive/unknown", "application/json", nil)
	if err != nil {
		t.Fatalf("posting: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
}
