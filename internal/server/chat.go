package server

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/omarzayed/supportdesk/internal/entities"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// chatRequest is the incoming WebSocket message format.
type chatRequest struct {
	Type           string `json:"type"`            // "message" or "escalate"
	ConversationID string `json:"conversation_id"` // empty for new conversations
	Content        string `json:"content"`
}

// chatResponse is the outgoing WebSocket message format.
type chatResponse struct {
	Type           string            `json:"type"` // "response" or "error"
	ConversationID string            `json:"conversation_id"`
	Content        string            `json:"content"`
	Intent         string            `json:"intent,omitempty"`
	Confidence     float64           `json:"confidence,omitempty"`
	Entities       []entities.Entity `json:"entities,omitempty"`
	Source         string            `json:"source,omitempty"`
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Warn().Err(err).Msg("websocket read failed")
			}
			return
		}

		var req chatRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			s.sendChatError(conn, "", "invalid message format")
			continue
		}

		if req.Content == "" {
			s.sendChatError(conn, req.ConversationID, "content is required")
			continue
		}

		switch req.Type {
		case "message":
			reply := s.assistant.Respond(r.Context(), req.ConversationID, req.Content)
			s.sendChatResponse(conn, chatResponse{
				Type:           "response",
				ConversationID: reply.ConversationID,
				Content:        reply.Response,
				Intent:         reply.Intent,
				Confidence:     reply.Confidence,
				Entities:       reply.Entities,
				Source:         reply.Source,
			})
		case "escalate":
			message, ok := s.assistant.Escalate(req.ConversationID, req.Content)
			if !ok {
				s.sendChatError(conn, req.ConversationID, "conversation not found")
				continue
			}
			s.sendChatResponse(conn, chatResponse{
				Type:           "response",
				ConversationID: req.ConversationID,
				Content:        message,
			})
		default:
			s.sendChatError(conn, req.ConversationID, "unknown message type: "+req.Type)
		}
	}
}

func (s *Server) sendChatResponse(conn *websocket.Conn, resp chatResponse) {
	if err := conn.WriteJSON(resp); err != nil {
		s.log.Warn().Err(err).Msg("websocket write failed")
	}
}

func (s *Server) sendChatError(conn *websocket.Conn, conversationID, message string) {
	s.sendChatResponse(conn, chatResponse{
		Type:           "error",
		ConversationID: conversationID,
		Content:        message,
	})
}
