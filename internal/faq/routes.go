package faq

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts FAQ endpoints under /api/faqs.
func RegisterRoutes(r chi.Router, catalog *Catalog) {
	r.Route("/api/faqs", func(r chi.Router) {
		r.Get("/", handleList(catalog))
		r.Get("/categories", handleCategories(catalog))
		r.Get("/search", handleSearch(catalog))
		r.Post("/match", handleMatch(catalog))
		r.Put("/{id}", handleUpsert(catalog))
		r.Patch("/{id}", handleUpdate(catalog))
	})
}

func handleList(catalog *Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, catalog.Entries())
	}
}

func handleCategories(catalog *Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, catalog.Categories())
	}
}

func handleSearch(catalog *Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		if q == "" {
			http.Error(w, "q is required", http.StatusBadRequest)
			return
		}
		results := catalog.Search(q, r.URL.Query().Get("category"))
		if results == nil {
			results = []SearchResult{}
		}
		writeJSON(w, http.StatusOK, results)
	}
}

func handleMatch(catalog *Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Message == "" {
			http.Error(w, "message is required", http.StatusBadRequest)
			return
		}

		match, ok := catalog.Match(req.Message)
		if !ok {
			// A miss is a normal outcome.
			writeJSON(w, http.StatusOK, map[string]any{"matched": false})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"matched": true, "match": match})
	}
}

func handleUpsert(catalog *Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var entry Entry
		if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if len(entry.Questions) == 0 || entry.Answer == "" {
			http.Error(w, "questions and answer are required", http.StatusBadRequest)
			return
		}

		catalog.Add(chi.URLParam(r, "id"), entry.Questions, entry.Answer, entry.Category)
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleUpdate(catalog *Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var upd EntryUpdate
		if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if !catalog.Update(chi.URLParam(r, "id"), upd) {
			http.Error(w, "entry not found", http.StatusNotFound)
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
