package kb

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts the admin knowledge-base API. The caller is expected
// to wrap the router group with admin authentication.
func RegisterRoutes(r chi.Router, store *Store) {
	r.Get("/api/admin/knowledge-base", handleList(store))
	r.Post("/api/admin/conditions", handleAdd(store))
	r.Put("/api/admin/conditions/{name}", handleEdit(store))
	r.Delete("/api/admin/conditions/{name}", handleRemove(store))
}

type conditionPayload struct {
	Name     string   `json:"name"`
	Symptoms []string `json:"symptoms"`
	Advice   []string `json:"advice"`
}

func handleList(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := store.Snapshot()
		if err != nil {
			http.Error(w, `{"error":"knowledge base unavailable"}`, http.StatusInternalServerError)
			return
		}
		out := make([]conditionPayload, 0, len(entries))
		for _, e := range entries {
			out = append(out, conditionPayload{Name: e.Name, Symptoms: e.Condition.Symptoms, Advice: e.Condition.Advice})
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "knowledge_base": out})
	}
}

func decodePayload(w http.ResponseWriter, r *http.Request) (*conditionPayload, bool) {
	var p conditionPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
		return nil, false
	}
	if len(p.Symptoms) == 0 {
		http.Error(w, `{"error":"symptoms are required"}`, http.StatusBadRequest)
		return nil, false
	}
	return &p, true
}

func handleAdd(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := decodePayload(w, r)
		if !ok {
			return
		}
		if p.Name == "" {
			http.Error(w, `{"error":"name is required"}`, http.StatusBadRequest)
			return
		}
		err := store.Add(p.Name, Condition{Symptoms: p.Symptoms, Advice: p.Advice})
		if errors.Is(err, ErrAlreadyExists) {
			http.Error(w, `{"error":"condition already exists"}`, http.StatusConflict)
			return
		}
		if err != nil {
			http.Error(w, `{"error":"knowledge base unavailable"}`, http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "message": p.Name + " added successfully"})
	}
}

func handleEdit(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := pathName(r)
		p, ok := decodePayload(w, r)
		if !ok {
			return
		}
		err := store.Edit(name, Condition{Symptoms: p.Symptoms, Advice: p.Advice})
		if errors.Is(err, ErrNotFound) {
			http.Error(w, `{"error":"condition not found"}`, http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, `{"error":"knowledge base unavailable"}`, http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "message": name + " updated successfully"})
	}
}

func handleRemove(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := pathName(r)
		err := store.Remove(name)
		if errors.Is(err, ErrNotFound) {
			http.Error(w, `{"error":"condition not found"}`, http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, `{"error":"knowledge base unavailable"}`, http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "message": name + " deleted successfully"})
	}
}

// pathName decodes the {name} URL parameter; condition names may contain
// spaces ("stomach ache").
func pathName(r *http.Request) string {
	name := chi.URLParam(r, "name")
	if decoded, err := url.PathUnescape(name); err == nil {
		return decoded
	}
	return name
}
