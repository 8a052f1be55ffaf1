// Package translate localizes chat text between the working language
// (English, which all knowledge-base text is authored in) and a user's
// preferred language. Translation is best-effort: every failure degrades to
// returning the input text unchanged, never an error.
package translate

import (
	"context"
	"strings"
)

// WorkingCode is the language code all matching logic operates in.
const WorkingCode = "en"

// SupportedLanguages enumerates the user-facing language names.
var SupportedLanguages = []string{"English", "Hindi"}

// langNameToCode maps lowercase language names to codes. Unknown names fall
// back to the working language.
var langNameToCode = map[string]string{
	"english": "en",
	"hindi":   "hi",
}

// CodeFor resolves a language name to its code, defaulting to the working
// language for unrecognized names.
func CodeFor(name string) string {
	if code, ok := langNameToCode[strings.ToLower(strings.TrimSpace(name))]; ok {
		return code
	}
	return WorkingCode
}

// Client performs a single text translation into the destination language.
type Client interface {
	Translate(ctx context.Context, text, destCode string) (string, error)
}

// Service adapts a Client into the two directions the dialogue engine needs.
// A nil client makes every call a pass-through.
type Service struct {
	client Client
}

// NewService wraps a translation client. Pass nil to disable translation.
func NewService(client Client) *Service {
	return &Service{client: client}
}

// ToWorking translates text written in the named source language into the
// working language. English input and any client failure pass through.
func (s *Service) ToWorking(ctx context.Context, text, sourceLanguage string) string {
	if CodeFor(sourceLanguage) == WorkingCode {
		return text
	}
	return s.translate(ctx, text, WorkingCode)
}

// ToUser translates working-language text into the named destination
// language. English destinations and any client failure pass through.
func (s *Service) ToUser(ctx context.Context, text, destLanguage string) string {
	code := CodeFor(destLanguage)
	if code == WorkingCode {
		return text
	}
	return s.translate(ctx, text, code)
}

func (s *Service) translate(ctx context.Context, text, destCode string) string {
	if s.client == nil || text == "" {
		return text
	}
	out, err := s.client.Translate(ctx, text, destCode)
	if err != nil || out == "" {
		return text
	}
	return out
}
