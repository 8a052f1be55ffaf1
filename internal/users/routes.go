package users

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wellbot/wellbot/internal/auth"
)

// RegisterRoutes mounts registration, login and profile endpoints.
func RegisterRoutes(r chi.Router, store *Store, tokens *auth.Manager) {
	r.Post("/api/register", handleRegister(store))
	r.Post("/api/login", handleLogin(store, tokens))

	r.Group(func(r chi.Router) {
		r.Use(tokens.RequireUser)
		r.Put("/api/user/update", handleUpdate(store))
		r.Delete("/api/user/delete", handleDelete(store))
	})
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Language string `json:"language"`
	Age      int    `json:"age"`
	Gender   string `json:"gender"`
}

func handleRegister(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}
		if req.Username == "" || req.Email == "" || req.Password == "" {
			http.Error(w, `{"error":"username, email and password are required"}`, http.StatusBadRequest)
			return
		}
		if req.Language == "" {
			req.Language = "English"
		}

		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
			return
		}

		_, err = store.Create(r.Context(), req.Username, req.Email, hash, req.Language, req.Age, req.Gender)
		if errors.Is(err, ErrEmailTaken) {
			http.Error(w, `{"error":"email already registered"}`, http.StatusBadRequest)
			return
		}
		if err != nil {
			http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "message": "user registered successfully"})
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func handleLogin(store *Store, tokens *auth.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}

		user, err := store.GetByEmail(r.Context(), req.Email)
		if err != nil {
			http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
			return
		}
		if user == nil || !auth.CheckPassword(req.Password, user.PasswordHash) {
			http.Error(w, `{"error":"invalid email or password"}`, http.StatusUnauthorized)
			return
		}

		token, err := tokens.Issue(user.ID, user.Email)
		if err != nil {
			http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "user": user, "token": token})
	}
}

type updateRequest struct {
	Username string `json:"username"`
	Language string `json:"language"`
	Age      int    `json:"age"`
	Gender   string `json:"gender"`
}

func handleUpdate(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := auth.FromContext(r.Context())

		var req updateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}
		if req.Username == "" {
			http.Error(w, `{"error":"username is required"}`, http.StatusBadRequest)
			return
		}
		if req.Language == "" {
			req.Language = "English"
		}

		if err := store.UpdateProfile(r.Context(), claims.UserID, req.Username, req.Language, req.Age, req.Gender); err != nil {
			http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "message": "profile updated successfully"})
	}
}

func handleDelete(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := auth.FromContext(r.Context())
		if err := store.Delete(r.Context(), claims.UserID); err != nil {
			http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "message": "account deleted successfully"})
	}
}
