package translate

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestCodeFor(t *testing.T) {
	cases := map[string]string{
		"English":  "en",
		"english":  "en",
		" Hindi ":  "hi",
		"HINDI":    "hi",
		"Klingon":  "en",
		"":         "en",
	}
	for name, want := range cases {
		if got := CodeFor(name); got != want {
			t.Errorf("CodeFor(%q): got %q, want %q", name, got, want)
		}
	}
}

// failingClient always errors, simulating an unreachable translation service.
type failingClient struct{}

func (failingClient) Translate(context.Context, string, string) (string, error) {
	return "", fmt.Errorf("service unavailable")
}

// staticClient returns a fixed translation.
type staticClient struct{ out string }

func (c staticClient) Translate(context.Context, string, string) (string, error) {
	return c.out, nil
}

func TestServicePassThroughForWorkingLanguage(t *testing.T) {
	svc := NewService(staticClient{out: "should not be used"})
	ctx := context.Background()

	if got := svc.ToUser(ctx, "Hello!", "English"); got != "Hello!" {
		t.Errorf("expected pass-through for English, got %q", got)
	}
	if got := svc.ToWorking(ctx, "Hello!", "English"); got != "Hello!" {
		t.Errorf("expected pass-through for English source, got %q", got)
	}
	if got := svc.ToUser(ctx, "Hello!", "Martian"); got != "Hello!" {
		t.Errorf("unknown language must fall back to pass-through, got %q", got)
	}
}

func TestServiceSwallowsFailures(t *testing.T) {
	svc := NewService(failingClient{})
	ctx := context.Background()

	if got := svc.ToUser(ctx, "Take care!", "Hindi"); got != "Take care!" {
		t.Errorf("failure must return original text, got %q", got)
	}
	if got := svc.ToWorking(ctx, "नमस्ते", "Hindi"); got != "नमस्ते" {
		t.Errorf("failure must return original text, got %q", got)
	}
}

func TestServiceNilClient(t *testing.T) {
	svc := NewService(nil)
	if got := svc.ToUser(context.Background(), "text", "Hindi"); got != "text" {
		t.Errorf("nil client must pass through, got %q", got)
	}
}

func TestServiceTranslates(t *testing.T) {
	svc := NewService(staticClient{out: "bonjour"})
	if got := svc.ToUser(context.Background(), "hello", "Hindi"); got != "bonjour" {
		t.Errorf("got %q, want %q", got, "bonjour")
	}
}

func TestGoogleClientParsesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("tl"); got != "hi" {
			t.Errorf("tl: got %q, want hi", got)
		}
		fmt.Fprint(w, `[[["नमस्ते","hello",null,null,10]],null,"en"]`)
	}))
	defer srv.Close()

	client := NewGoogleClient(srv.URL, 2*time.Second)
	out, err := client.Translate(context.Background(), "hello", "hi")
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if out != "नमस्ते" {
		t.Errorf("got %q, want %q", out, "नमस्ते")
	}
}

func TestGoogleClientMultiSegment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[[["first ","a",null],["second","b",null]],null,"en"]`)
	}))
	defer srv.Close()

	client := NewGoogleClient(srv.URL, 2*time.Second)
	out, err := client.Translate(context.Background(), "a b", "hi")
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if out != "first second" {
		t.Errorf("got %q, want %q", out, "first second")
	}
}

func TestGoogleClientServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewGoogleClient(srv.URL, 2*time.Second)
	if _, err := client.Translate(context.Background(), "hello", "hi"); err == nil {
		t.Error("expected error on 502")
	}
}

func TestGoogleClientGarbageBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `not json`)
	}))
	defer srv.Close()

	client := NewGoogleClient(srv.URL, 2*time.Second)
	if _, err := client.Translate(context.Background(), "hello", "hi"); err == nil {
		t.Error("expected error on garbage body")
	}
}
