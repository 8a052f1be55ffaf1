package chats

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/wellbot/wellbot/internal/auth"
	"github.com/wellbot/wellbot/internal/users"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// socketRequest is the incoming WebSocket message format.
type socketRequest struct {
	Message string `json:"message"`
}

// socketResponse is the outgoing WebSocket message format.
type socketResponse struct {
	Type     string `json:"type"` // "response" or "error"
	Response string `json:"response,omitempty"`
	Error    string `json:"error,omitempty"`
}

// handleSocket runs a live chat loop over a websocket. Authentication happens
// before the upgrade, via the token query parameter.
func handleSocket(store *Store, userStore *users.Store, responder Responder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := auth.FromContext(r.Context())

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("chats: websocket upgrade: %v", err)
			return
		}
		defer conn.Close()

		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Printf("chats: websocket read: %v", err)
				}
				return
			}

			var req socketRequest
			if err := json.Unmarshal(msg, &req); err != nil {
				writeSocket(conn, socketResponse{Type: "error", Error: "invalid message format"})
				continue
			}
			if req.Message == "" {
				writeSocket(conn, socketResponse{Type: "error", Error: "message is required"})
				continue
			}

			response, err := produce(r.Context(), store, userStore, responder, claims, req.Message)
			if err != nil {
				writeSocket(conn, socketResponse{Type: "error", Error: "internal error"})
				continue
			}
			writeSocket(conn, socketResponse{Type: "response", Response: response})
		}
	}
}

func writeSocket(conn *websocket.Conn, resp socketResponse) {
	if err := conn.WriteJSON(resp); err != nil {
		log.Printf("chats: websocket write: %v", err)
	}
}
