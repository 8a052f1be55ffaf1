package admin

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/wellbot/wellbot/internal/auth"
	"github.com/wellbot/wellbot/internal/chats"
	"github.com/wellbot/wellbot/internal/feedback"
	"github.com/wellbot/wellbot/internal/kb"
	"github.com/wellbot/wellbot/internal/users"
)

// Knowledge reports the conditions the responder can match. Satisfied by the
// knowledge-base store.
type Knowledge interface {
	Snapshot() ([]kb.Entry, error)
}

// Credentials holds the configured administrator login. There is exactly one
// administrator account and it lives in the config file, not the database.
type Credentials struct {
	Email    string
	Password string
}

// RegisterRoutes mounts the admin login and dashboard endpoints.
func RegisterRoutes(r chi.Router, creds Credentials, tokens *auth.Manager, userStore *users.Store, chatStore *chats.Store, feedbackStore *feedback.Store, knowledge Knowledge) {
	r.Post("/api/admin/login", handleLogin(creds, tokens))

	r.Group(func(r chi.Router) {
		r.Use(tokens.RequireAdmin)
		r.Get("/api/admin/dashboard", handleDashboard(userStore, chatStore, feedbackStore))
		r.Get("/api/admin/stats", handleStats(userStore, chatStore, feedbackStore, knowledge))
		r.Get("/api/admin/feedbacks", handleFeedbacks(feedbackStore, 0))
		r.Get("/api/admin/latest-reviews", handleFeedbacks(feedbackStore, latestReviewCount))
	})
}

// latestReviewCount bounds the latest-reviews endpoint.
const latestReviewCount = 3

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func handleLogin(creds Credentials, tokens *auth.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}

		emailOK := strings.EqualFold(strings.TrimSpace(req.Email), creds.Email)
		passOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(creds.Password)) == 1
		if !emailOK || !passOK {
			http.Error(w, `{"error":"invalid admin credentials"}`, http.StatusUnauthorized)
			return
		}

		token, err := tokens.Issue(auth.AdminUserID, creds.Email)
		if err != nil {
			http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "token": token})
	}
}

// stats is the aggregate view shared by the dashboard and stats endpoints.
// Conditions is only populated by the stats endpoint.
type stats struct {
	Users            int `json:"users"`
	Chats            int `json:"chats"`
	Feedbacks        int `json:"feedbacks"`
	PositiveFeedback int `json:"positive_feedback"`
	NegativeFeedback int `json:"negative_feedback"`
	Conditions       int `json:"conditions,omitempty"`
}

func collectStats(r *http.Request, userStore *users.Store, chatStore *chats.Store, feedbackStore *feedback.Store) (stats, error) {
	var s stats
	var err error
	if s.Users, err = userStore.Count(r.Context()); err != nil {
		return s, err
	}
	if s.Chats, err = chatStore.Count(r.Context()); err != nil {
		return s, err
	}
	counts, err := feedbackStore.CountByRating(r.Context())
	if err != nil {
		return s, err
	}
	s.Feedbacks = counts.Total
	s.PositiveFeedback = counts.Positive
	s.NegativeFeedback = counts.Negative
	return s, nil
}

func handleStats(userStore *users.Store, chatStore *chats.Store, feedbackStore *feedback.Store, knowledge Knowledge) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := collectStats(r, userStore, chatStore, feedbackStore)
		if err != nil {
			http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
			return
		}
		if entries, err := knowledge.Snapshot(); err == nil {
			s.Conditions = len(entries)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "stats": s})
	}
}

func handleDashboard(userStore *users.Store, chatStore *chats.Store, feedbackStore *feedback.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := collectStats(r, userStore, chatStore, feedbackStore)
		if err != nil {
			http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
			return
		}
		latest, err := feedbackStore.All(r.Context(), latestReviewCount)
		if err != nil {
			http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
			return
		}
		if latest == nil {
			latest = []feedback.Entry{}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success":        true,
			"stats":          s,
			"latest_reviews": latest,
		})
	}
}

func handleFeedbacks(feedbackStore *feedback.Store, limit int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := feedbackStore.All(r.Context(), limit)
		if err != nil {
			http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
			return
		}
		if entries == nil {
			entries = []feedback.Entry{}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "feedbacks": entries})
	}
}
