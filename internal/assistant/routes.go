package assistant

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts the chat endpoints under /api/chat.
func RegisterRoutes(r chi.Router, a *Assistant) {
	r.Post("/api/chat", handleChat(a))
	r.Post("/api/chat/escalate", handleEscalate(a))
}

type chatRequest struct {
	ConversationID string `json:"conversation_id"`
	Message        string `json:"message"`
}

func handleChat(a *Assistant) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Message == "" {
			http.Error(w, "message is required", http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusOK, a.Respond(r.Context(), req.ConversationID, req.Message))
	}
}

type escalateRequest struct {
	ConversationID string `json:"conversation_id"`
	Issue          string `json:"issue"`
}

func handleEscalate(a *Assistant) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req escalateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ConversationID == "" {
			http.Error(w, "conversation_id is required", http.StatusBadRequest)
			return
		}

		message, ok := a.Escalate(req.ConversationID, req.Issue)
		if !ok {
			http.Error(w, "conversation not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{
			"conversation_id": req.ConversationID,
			"response":        message,
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
