package feedback

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wellbot/wellbot/internal/auth"
)

// RegisterRoutes mounts the user-facing feedback endpoints.
func RegisterRoutes(r chi.Router, store *Store, tokens *auth.Manager) {
	r.Group(func(r chi.Router) {
		r.Use(tokens.RequireUser)
		r.Post("/api/feedback", handleSubmit(store))
		r.Get("/api/feedbacks", handleList(store))
	})
}

type submitRequest struct {
	Rating string `json:"rating"`
	Review string `json:"review"`
}

func handleSubmit(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := auth.FromContext(r.Context())

		var req submitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}

		_, err := store.Add(r.Context(), claims.UserID, req.Rating, req.Review)
		if errors.Is(err, ErrInvalidRating) {
			http.Error(w, `{"error":"rating must be positive or negative"}`, http.StatusBadRequest)
			return
		}
		if err != nil {
			http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "message": "feedback submitted successfully"})
	}
}

func handleList(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := auth.FromContext(r.Context())

		entries, err := store.ForUser(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
			return
		}
		if entries == nil {
			entries = []Entry{}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "feedbacks": entries})
	}
}
