package intent

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts intent endpoints under /api/intents.
func RegisterRoutes(r chi.Router, classifier *Classifier) {
	r.Route("/api/intents", func(r chi.Router) {
		r.Get("/", handleList(classifier))
		r.Get("/{name}", handleGet(classifier))
		r.Put("/{name}", handleAdd(classifier))
		r.Post("/classify", handleClassify(classifier))
	})
}

func handleList(classifier *Classifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, classifier.Names())
	}
}

func handleGet(classifier *Classifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		def, ok := classifier.Get(chi.URLParam(r, "name"))
		if !ok {
			http.Error(w, "intent not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, def)
	}
}

func handleAdd(classifier *Classifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var def Definition
		if err := json.NewDecoder(r.Body).Decode(&def); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if def.Description == "" {
			http.Error(w, "description is required", http.StatusBadRequest)
			return
		}
		classifier.Add(chi.URLParam(r, "name"), def.Description, def.Examples)
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleClassify(classifier *Classifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Message == "" {
			http.Error(w, "message is required", http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusOK, classifier.Classify(r.Context(), req.Message))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
