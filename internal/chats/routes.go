package chats

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/wellbot/wellbot/internal/auth"
	"github.com/wellbot/wellbot/internal/users"
)

// Responder produces one localized bot response per inbound message. It is
// satisfied by the dialogue engine.
type Responder interface {
	Respond(ctx context.Context, message, language string, userID int64) string
}

// RegisterRoutes mounts the chat endpoints. All of them require a user token.
func RegisterRoutes(r chi.Router, store *Store, userStore *users.Store, responder Responder, tokens *auth.Manager) {
	r.Group(func(r chi.Router) {
		r.Use(tokens.RequireUser)
		r.Post("/api/chat", handleChat(store, userStore, responder))
		r.Get("/api/chats/{userID}", handleHistory(store))
		r.Delete("/api/chats/{userID}", handleClear(store))
		r.Get("/ws/chat", handleSocket(store, userStore, responder))
	})
}

type chatRequest struct {
	Message string `json:"message"`
}

// produce runs one chat turn for the authenticated user and records it.
func produce(ctx context.Context, store *Store, userStore *users.Store, responder Responder, claims *auth.Claims, message string) (string, error) {
	language := "English"
	if user, err := userStore.GetByID(ctx, claims.UserID); err == nil && user != nil && user.Language != "" {
		language = user.Language
	}

	response := responder.Respond(ctx, message, language, claims.UserID)

	if _, err := store.Add(ctx, claims.UserID, message, response); err != nil {
		return "", err
	}
	return response, nil
}

func handleChat(store *Store, userStore *users.Store, responder Responder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := auth.FromContext(r.Context())

		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}
		if req.Message == "" {
			http.Error(w, `{"error":"message is required"}`, http.StatusBadRequest)
			return
		}

		response, err := produce(r.Context(), store, userStore, responder, claims, req.Message)
		if err != nil {
			http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "response": response})
	}
}

// ownUserID parses the {userID} parameter and verifies it belongs to the
// token holder.
func ownUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	claims, _ := auth.FromContext(r.Context())
	id, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		http.Error(w, `{"error":"invalid user id"}`, http.StatusBadRequest)
		return 0, false
	}
	if claims.UserID != id {
		http.Error(w, `{"error":"access denied"}`, http.StatusForbidden)
		return 0, false
	}
	return id, true
}

func handleHistory(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := ownUserID(w, r)
		if !ok {
			return
		}
		history, err := store.History(r.Context(), id)
		if err != nil {
			http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
			return
		}
		if history == nil {
			history = []Exchange{}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "chats": history})
	}
}

func handleClear(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := ownUserID(w, r)
		if !ok {
			return
		}
		if err := store.Clear(r.Context(), id); err != nil {
			http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "message": "chat history cleared"})
	}
}
