package archive

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/omarzayed/supportdesk/internal/conversation"
)

// RegisterRoutes mounts archive endpoints under /api/archive.
func RegisterRoutes(r chi.Router, store *Store, conversations *conversation.Store) {
	r.Route("/api/archive", func(r chi.Router) {
		r.Get("/", handleList(store))
		r.Route("/{id}", func(r chi.Router) {
			r.Post("/", handleArchive(store, conversations))
			r.Get("/", handleGet(store))
			r.Delete("/", handleDelete(store))
		})
	})
}

func handleList(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				http.Error(w, "limit must be an integer", http.StatusBadRequest)
				return
			}
			limit = n
		}
		records, err := store.List(r.Context(), limit)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, records)
	}
}

// handleArchive snapshots a live conversation into the archive. The
// conversation stays in the in-memory store; pass ?delete=true to
// remove it once archived.
func handleArchive(store *Store, conversations *conversation.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		conv := conversations.Export(id)
		if conv == nil {
			http.Error(w, "conversation not found", http.StatusNotFound)
			return
		}
		if err := store.Save(r.Context(), conv); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if r.URL.Query().Get("delete") == "true" {
			conversations.Delete(id)
		}
		writeJSON(w, http.StatusCreated, map[string]string{"id": id, "status": "archived"})
	}
}

func handleGet(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conv, err := store.Get(r.Context(), chi.URLParam(r, "id"))
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "archived conversation not found", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, conv)
	}
}

func handleDelete(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := store.Delete(r.Context(), chi.URLParam(r, "id"))
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "archived conversation not found", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
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
