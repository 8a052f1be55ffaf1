// Package engine implements the rule-based dialogue engine: it classifies an
// inbound message (small talk, symptom mention or unrecognized), tracks one
// pending condition per user, and produces localized response text.
package engine

import (
	"context"
	"math/rand"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/wellbot/wellbot/internal/kb"
)

// Knowledge supplies the condition entries in stored document order. An
// unreadable knowledge base is treated as "no conditions known" so small talk
// and fallback responses stay available.
type Knowledge interface {
	Snapshot() ([]kb.Entry, error)
}

// Localizer translates text between the working language and a user's
// language. Implementations are best-effort and never fail a chat turn.
type Localizer interface {
	ToWorking(ctx context.Context, text, sourceLanguage string) string
	ToUser(ctx context.Context, text, destLanguage string) string
}

// Engine turns a raw message into a single response string. Its only side
// effect is the per-user pending slot in the ContextStore.
type Engine struct {
	knowledge Knowledge
	localizer Localizer
	contexts  *ContextStore
}

// New creates an engine over the given knowledge base, localizer and context
// store.
func New(knowledge Knowledge, localizer Localizer, contexts *ContextStore) *Engine {
	return &Engine{knowledge: knowledge, localizer: localizer, contexts: contexts}
}

// Contexts exposes the injected context store.
func (e *Engine) Contexts() *ContextStore { return e.contexts }

// Respond produces a localized response for one chat turn. Rules are applied
// in strict precedence order; the first match wins:
//
//  1. small talk (greeting, thanks, acknowledgement)
//  2. direct symptom match against every condition name
//  3. pending-context follow-up
//  4. clarification for a first mention
//  5. fallback
//
// It always returns some text; no failure in a collaborator surfaces here.
func (e *Engine) Respond(ctx context.Context, message, language string, userID int64) string {
	normalized := strings.TrimSpace(strings.ToLower(e.localizer.ToWorking(ctx, message, language)))

	for _, cat := range smallTalk {
		for _, kw := range cat.Keywords {
			if strings.Contains(normalized, kw) {
				return e.localizer.ToUser(ctx, pick(cat.Responses), language)
			}
		}
	}

	// One scan serves both the direct-match and clarification branches.
	entries := e.entries()
	matches := matchConditions(entries, normalized)

	if len(matches) > 0 {
		sections := make([]string, 0, len(matches))
		for _, m := range matches {
			sections = append(sections, adviceSection(m.Name, m.Condition, true))
		}
		combined := strings.TrimSpace(strings.Join(sections, "\n"))
		return e.localizer.ToUser(ctx, combined, language)
	}

	if pending, ok := e.contexts.Get(userID); ok {
		if cond, found := lookup(entries, pending); found {
			e.contexts.Delete(userID)
			reply := strings.TrimSpace(adviceSection(pending, cond, false))
			return e.localizer.ToUser(ctx, reply, language)
		}
	}

	// Clarification: ask about the first matched condition before giving
	// advice. The direct-match branch above already returned whenever the
	// match list is non-empty, so this branch cannot fire today; it is kept
	// so the precedence order stays explicit, and a test pins that no input
	// reaches it.
	if len(matches) > 0 {
		first := matches[0]
		e.contexts.Set(userID, first.Name)
		question := clarifyingQuestion(first.Name, first.Condition.Symptoms)
		return e.localizer.ToUser(ctx, question, language)
	}

	return e.localizer.ToUser(ctx, pick(fallbackResponses), language)
}

// entries loads the knowledge base, degrading to no conditions on error.
func (e *Engine) entries() []kb.Entry {
	entries, err := e.knowledge.Snapshot()
	if err != nil {
		return nil
	}
	return entries
}

// matchConditions collects every condition whose name occurs as a substring
// of the normalized message, in stored order.
func matchConditions(entries []kb.Entry, normalized string) []kb.Entry {
	var matches []kb.Entry
	for _, e := range entries {
		if strings.Contains(normalized, e.Name) {
			matches = append(matches, e)
		}
	}
	return matches
}

// lookup finds a condition by its lowercase name in the snapshot.
func lookup(entries []kb.Entry, name string) (kb.Condition, bool) {
	for _, e := range entries {
		if e.Name == name {
			return e.Condition, true
		}
	}
	return kb.Condition{}, false
}

// adviceSection renders one condition's advice block. Direct matches display
// the condition name capitalized; the pending-context follow-up keeps the
// stored lowercase form.
func adviceSection(name string, cond kb.Condition, capitalize bool) string {
	display := name
	if capitalize {
		display = capitalizeFirst(name)
	}
	var b strings.Builder
	b.WriteString("It seems like you might be experiencing ")
	b.WriteString(display)
	b.WriteString(".\nHere's some advice that may help:\n")
	for _, a := range cond.Advice {
		b.WriteString("- ")
		b.WriteString(a)
		b.WriteString("\n")
	}
	return b.String()
}

// clarifyingQuestion names the condition and its first two symptom phrases.
func clarifyingQuestion(name string, symptoms []string) string {
	if len(symptoms) > 2 {
		symptoms = symptoms[:2]
	}
	return "I see you mentioned " + name + ". How are you feeling right now? Are your " +
		strings.Join(symptoms, ", ") + " severe?"
}

func capitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// pick selects a response uniformly at random.
func pick(responses []string) string {
	return responses[rand.Intn(len(responses))]
}
