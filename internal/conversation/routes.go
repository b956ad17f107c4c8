package conversation

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts conversation endpoints under /api/conversations.
func RegisterRoutes(r chi.Router, store *Store) {
	r.Route("/api/conversations", func(r chi.Router) {
		r.Post("/", handleCreate(store))
		r.Get("/active", handleListActive(store))
		r.Get("/search", handleSearch(store))

		r.Route("/{id}", func(r chi.Router) {
			r.Delete("/", handleDelete(store))
			r.Post("/messages", handleAddMessage(store))
			r.Get("/messages", handleGetMessages(store))
			r.Patch("/context", handleUpdateContext(store))
			r.Patch("/user-info", handleSetUserInfo(store))
			r.Post("/escalate", handleEscalate(store))
			r.Post("/resolve", handleResolve(store))
			r.Get("/summary", handleSummary(store))
			r.Get("/export", handleExport(store))
		})
	})
}

func handleCreate(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := store.Create()
		writeJSON(w, http.StatusCreated, map[string]string{"id": id})
	}
}

type addMessageRequest struct {
	Role     Role      `json:"role"`
	Content  string    `json:"content"`
	Metadata *Metadata `json:"metadata,omitempty"`
}

func handleAddMessage(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addMessageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if req.Content == "" {
			http.Error(w, "content is required", http.StatusBadRequest)
			return
		}
		switch req.Role {
		case RoleUser, RoleAssistant, RoleSystem:
		default:
			http.Error(w, "role must be user, assistant or system", http.StatusBadRequest)
			return
		}

		if !store.AddMessage(chi.URLParam(r, "id"), req.Role, req.Content, req.Metadata) {
			http.Error(w, "conversation not found", http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleGetMessages(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 0
		if v := r.URL.Query().Get("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				limit = n
			}
		}
		writeJSON(w, http.StatusOK, store.GetMessages(chi.URLParam(r, "id"), limit))
	}
}

func handleUpdateContext(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var updates map[string]any
		if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if !store.UpdateContext(chi.URLParam(r, "id"), updates) {
			http.Error(w, "conversation not found", http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleSetUserInfo(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var info map[string]any
		if err := json.NewDecoder(r.Body).Decode(&info); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if !store.SetUserInfo(chi.URLParam(r, "id"), info) {
			http.Error(w, "conversation not found", http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleEscalate(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Reason string `json:"reason"`
		}
		// An empty body means escalation without a reason.
		json.NewDecoder(r.Body).Decode(&req)

		if !store.Escalate(chi.URLParam(r, "id"), req.Reason) {
			http.Error(w, "conversation not found", http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleResolve(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			SatisfactionScore *int `json:"satisfaction_score"`
		}
		json.NewDecoder(r.Body).Decode(&req)

		if !store.Resolve(chi.URLParam(r, "id"), req.SatisfactionScore) {
			http.Error(w, "conversation not found", http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleSummary(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sum := store.Summarize(chi.URLParam(r, "id"))
		if sum == nil {
			http.Error(w, "conversation not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, sum)
	}
}

func handleExport(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conv := store.Export(chi.URLParam(r, "id"))
		if conv == nil {
			http.Error(w, "conversation not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, conv)
	}
}

func handleListActive(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		active := store.ListActive()
		if active == nil {
			active = []Summary{}
		}
		writeJSON(w, http.StatusOK, active)
	}
}

func handleSearch(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		if q == "" {
			http.Error(w, "q is required", http.StatusBadRequest)
			return
		}
		limit := 10
		if v := r.URL.Query().Get("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				limit = n
			}
		}
		results := store.Search(q, limit)
		if results == nil {
			results = []Summary{}
		}
		writeJSON(w, http.StatusOK, results)
	}
}

func handleDelete(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !store.Delete(chi.URLParam(r, "id")) {
			http.Error(w, "conversation not found", http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
