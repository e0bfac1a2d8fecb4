// Package capability defines the optional external passes (named-entity
// recognition and abstractive summarization) and the explicit fallback that
// keeps the deterministic pipeline running when they are unavailable.
package capability

import (
	"context"
	"errors"
	"fmt"

	"github.com/ppiankov/lexscan/internal/model"
)

// Name identifies a capability in logs, metrics and errors
type Name string

const (
	NER         Name = "ner"
	Abstractive Name = "abstractive"
)

// Span limits, in words, for a single capability call
const (
	MaxNERWords         = 512
	MaxAbstractiveWords = 1024
)

var (
	// ErrUnavailable matches every capability failure
	ErrUnavailable = errors.New("external capability unavailable")

	// ErrNotConfigured is the cause when no implementation is wired in
	ErrNotConfigured = errors.New("not configured")
)

// EntityRecognizer finds named entities in a span of at most MaxNERWords words
type EntityRecognizer interface {
	RecognizeEntities(ctx context.Context, text string) ([]model.NamedEntity, error)
}

// AbstractiveSummarizer rewrites a span of at most MaxAbstractiveWords words
// into a summary between minWords and maxWords long
type AbstractiveSummarizer interface {
	SummarizeSpan(ctx context.Context, text string, maxWords, minWords int) (string, error)
}

// Error reports a failed capability call.
// It matches both ErrUnavailable and its cause with errors.Is.
type Error struct {
	Capability Name
	Err        error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Capability, ErrUnavailable)
	}
	return fmt.Sprintf("%s: %v: %v", e.Capability, ErrUnavailable, e.Err)
}

// Unwrap exposes ErrUnavailable and the cause
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrUnavailable}
	}
	return []error{ErrUnavailable, e.Err}
}

// Unavailable wraps err as a capability error, leaving existing ones intact
func Unavailable(name Name, err error) error {
	var capErr *Error
	if errors.As(err, &capErr) {
		return err
	}
	return &Error{Capability: name, Err: err}
}
