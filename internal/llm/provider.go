// Package llm talks to generative-text providers: it suggests party members for a
// theme and writes the short strategy note attached to a finished party.
package llm

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"
)

// DefaultRetryAfter is used when a provider rate-limits without saying for how long.
const DefaultRetryAfter = 60 * time.Second

// RateLimitError indicates the provider refused the request for quota reasons.
// Callers detect it with errors.As and wait RetryAfter before trying again.
type RateLimitError struct {
	Provider    string
	RetryAfter  time.Duration
	RawResponse string
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("%s rate limit exceeded, retry after %v", e.Provider, e.RetryAfter)
	}
	return fmt.Sprintf("%s rate limit exceeded", e.Provider)
}

// RetryAfterSeconds rounds the wait up to whole seconds, never less than one.
func (e *RateLimitError) RetryAfterSeconds() int {
	s := int(math.Ceil(e.RetryAfter.Seconds()))
	if s < 1 {
		return 1
	}
	return s
}

// AsRateLimit reports whether err is or wraps a RateLimitError.
func AsRateLimit(err error) (*RateLimitError, bool) {
	var rl *RateLimitError
	if errors.As(err, &rl) {
		return rl, true
	}
	return nil, false
}

// parseRetryAfter reads a Retry-After header given in seconds or as an HTTP date.
func parseRetryAfter(h http.Header, now time.Time) time.Duration {
	v := h.Get("Retry-After")
	if v == "" {
		return DefaultRetryAfter
	}
	if secs, err := strconv.Atoi(v); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(v); err == nil {
		if d := t.Sub(now); d > 0 {
			return d
		}
		return time.Second
	}
	return DefaultRetryAfter
}

// CompletionOptions tune a single completion call.
type CompletionOptions struct {
	Temperature float64
	MaxTokens   int
	// JSON asks the provider for a JSON object when it supports a response format.
	JSON bool
}

// Completer is a raw text completion backend.
type Completer interface {
	Complete(ctx context.Context, system, prompt string, opts CompletionOptions) (string, error)
	Name() string
}

// SuggestRequest asks for candidate species for a theme.
type SuggestRequest struct {
	Theme      string
	Count      int
	BattleMode string
	// Random lets the provider invent the theme; Theme is then ignored.
	Random bool
}

// Suggestion is the provider's answer: machine-readable species identifiers and,
// in random mode, the theme it invented.
type Suggestion struct {
	Theme   string
	Pokemon []string
}

// GuideMember is one party member as described to the guide prompt.
type GuideMember struct {
	Name  string
	Types []string
	Moves []string
}

// GuideRequest asks for a short strategy note about a finished party.
type GuideRequest struct {
	Theme      string
	BattleMode string
	Language   string
	Members    []GuideMember
}

// Suggester is the contract the party generator depends on.
type Suggester interface {
	SuggestPokemon(ctx context.Context, req SuggestRequest) (*Suggestion, error)
	WriteGuide(ctx context.Context, req GuideRequest) (string, error)
	Name() string
}
