package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "s3cret" {
		t.Error("hash should not equal plaintext")
	}
	if !CheckPassword("s3cret", hash) {
		t.Error("expected correct password to verify")
	}
	if CheckPassword("wrong", hash) {
		t.Error("expected wrong password to fail")
	}
}

func TestIssueAndParse(t *testing.T) {
	m := NewManager("test-secret", time.Hour, "admin@example.com")

	token, err := m.Issue(42, "user@example.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims, err := m.Parse(token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("user_id: got %d, want 42", claims.UserID)
	}
	if claims.Email != "user@example.com" {
		t.Errorf("email: got %q", claims.Email)
	}
	if m.IsAdmin(claims) {
		t.Error("regular user token should not be admin")
	}
}

func TestParseExpiredToken(t *testing.T) {
	m := NewManager("test-secret", -time.Minute, "admin@example.com")
	token, err := m.Issue(1, "user@example.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := m.Parse(token); err == nil {
		t.Error("expected expired token to fail parsing")
	}
}

func TestParseWrongSecret(t *testing.T) {
	m := NewManager("secret-a", time.Hour, "admin@example.com")
	other := NewManager("secret-b", time.Hour, "admin@example.com")

	token, err := m.Issue(1, "user@example.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := other.Parse(token); err == nil {
		t.Error("expected token signed with another secret to fail")
	}
}

func TestIsAdmin(t *testing.T) {
	m := NewManager("test-secret", time.Hour, "admin@example.com")

	adminToken, err := m.Issue(AdminUserID, "admin@example.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	claims, err := m.Parse(adminToken)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !m.IsAdmin(claims) {
		t.Error("expected admin claims to pass IsAdmin")
	}

	// Same email but a real user ID is not an admin.
	userToken, _ := m.Issue(7, "admin@example.com")
	claims, _ = m.Parse(userToken)
	if m.IsAdmin(claims) {
		t.Error("user-ID token must not pass IsAdmin")
	}
}

func TestRequireUser(t *testing.T) {
	m := NewManager("test-secret", time.Hour, "admin@example.com")

	handler := m.RequireUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := FromContext(r.Context())
		if !ok {
			t.Error("expected claims in context")
		} else if claims.UserID != 5 {
			t.Errorf("user_id: got %d, want 5", claims.UserID)
		}
		w.WriteHeader(http.StatusOK)
	}))

	// No token.
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", w.Code)
	}

	// Valid token via header.
	token, _ := m.Issue(5, "user@example.com")
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200 with token, got %d", w.Code)
	}

	// Valid token via query parameter (websocket path).
	req = httptest.NewRequest("GET", "/?token="+token, nil)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200 with query token, got %d", w.Code)
	}
}

func TestRequireAdminRejectsUserToken(t *testing.T) {
	m := NewManager("test-secret", time.Hour, "admin@example.com")

	handler := m.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	token, _ := m.Issue(5, "user@example.com")
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for non-admin token, got %d", w.Code)
	}
}
