package party

import (
	"errors"
	"fmt"

	"github.com/ramonehamilton/pokeparty/internal/llm"
)

var (
	// ErrInvalidInput is returned before any external call when a request is rejected.
	ErrInvalidInput = errors.New("invalid input")

	// ErrGeneration covers upstream failures that the caller cannot fix by waiting.
	ErrGeneration = errors.New("party generation failed")

	// ErrNoValidMembers means no candidate survived enrichment.
	ErrNoValidMembers = fmt.Errorf("%w: no valid party members", ErrGeneration)

	// ErrUnknownMove is returned by CatalogMoves when nothing knows the move.
	ErrUnknownMove = errors.New("unknown move")
)

// ErrorKind classifies an error for request surfaces.
type ErrorKind string

const (
	KindInvalidInput ErrorKind = "invalid_input"
	KindGeneration   ErrorKind = "generation_error"
	KindRateLimited  ErrorKind = "rate_limited"
)

// Kind maps err to its taxonomy kind. Anything unrecognised is a generation error.
func Kind(err error) ErrorKind {
	if _, ok := llm.AsRateLimit(err); ok {
		return KindRateLimited
	}
	if errors.Is(err, ErrInvalidInput) {
		return KindInvalidInput
	}
	return KindGeneration
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
