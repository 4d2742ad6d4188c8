// Package errors provides standardized error types and helpers for the bcnav codebase.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common cases
var (
	// ErrNotFound indicates a resource was not found
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput indicates invalid input or validation failure
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnknownBook indicates a book token that matches no canonical book
	ErrUnknownBook = errors.New("unknown book")
	// ErrAmbiguousBook indicates a book token that matches more than one canonical book
	ErrAmbiguousBook = errors.New("ambiguous book")
	// ErrUnavailable indicates a dimension engine could not produce data
	ErrUnavailable = errors.New("unavailable")
	// ErrTotalFailure indicates every dimension engine was unavailable
	ErrTotalFailure = errors.New("all engines unavailable")
	// ErrInternal indicates an internal system error
	ErrInternal = errors.New("internal error")
)

// ParseError represents a malformed scripture reference or query input.
type ParseError struct {
	Input   string // Text that failed to parse
	Message string // Error details
	Err     error  // Underlying error, if any
}

func (e *ParseError) Error() string {
	if e.Input != "" {
		return fmt.Sprintf("failed to parse reference %q: %s", e.Input, e.Message)
	}
	return fmt.Sprintf("failed to parse reference: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidInput
}

// UnknownBookError represents a book token that matched no canonical book.
type UnknownBookError struct {
	Token string // Book token as given by the caller
}

func (e *UnknownBookError) Error() string {
	return fmt.Sprintf("unknown book: %q", e.Token)
}

func (e *UnknownBookError) Unwrap() error {
	return ErrUnknownBook
}

// AmbiguousBookError represents a book token matching multiple canonical books.
type AmbiguousBookError struct {
	Token      string   // Book token as given by the caller
	Candidates []string // Canonical names the token could mean
}

func (e *AmbiguousBookError) Error() string {
	return fmt.Sprintf("ambiguous book %q: could be %s", e.Token, strings.Join(e.Candidates, ", "))
}

func (e *AmbiguousBookError) Unwrap() error {
	return ErrAmbiguousBook
}

// UnavailableReason classifies why a dimension engine produced no result.
type UnavailableReason string

const (
	// ReasonTimeout means the engine exceeded its per-query deadline.
	ReasonTimeout UnavailableReason = "timeout"
	// ReasonProviderError means the engine's backing provider failed.
	ReasonProviderError UnavailableReason = "provider_error"
	// ReasonNoData means the engine ran but holds no data for the concept.
	ReasonNoData UnavailableReason = "no_data"
)

// UnavailableError marks a single dimension engine as unavailable for a query.
// It is recorded on the result, never propagated as a hard failure.
type UnavailableError struct {
	Dimension string            // Dimension that was unavailable
	Reason    UnavailableReason // Why
	Err       error             // Underlying error, if any
}

func (e *UnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s engine unavailable (%s): %v", e.Dimension, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s engine unavailable (%s)", e.Dimension, e.Reason)
}

func (e *UnavailableError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrUnavailable
}

// InvalidQueryError represents a query rejected before any engine ran.
type InvalidQueryError struct {
	Message string
}

func (e *InvalidQueryError) Error() string {
	return fmt.Sprintf("invalid query: %s", e.Message)
}

func (e *InvalidQueryError) Unwrap() error {
	return ErrInvalidInput
}

// TotalFailureError represents a query for which every engine was unavailable.
type TotalFailureError struct {
	Concept string
	Notes   []string // Per-dimension unavailability notes
}

func (e *TotalFailureError) Error() string {
	if len(e.Notes) > 0 {
		return fmt.Sprintf("query %q failed: all engines unavailable: %s", e.Concept, strings.Join(e.Notes, "; "))
	}
	return fmt.Sprintf("query %q failed: all engines unavailable", e.Concept)
}

func (e *TotalFailureError) Unwrap() error {
	return ErrTotalFailure
}

// NotFoundError represents a resource not found error with context.
type NotFoundError struct {
	Resource string // Type of resource (e.g., "verse", "lemma", "concept")
	ID       string // Identifier of the resource
	Err      error  // Underlying error, if any
}

func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e *NotFoundError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrNotFound
}

// Is reports whether any error in err's chain matches target.
// Re-exported so callers don't need both this package and stdlib errors.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// New returns an error that formats as the given text.
func New(text string) error {
	return errors.New(text)
}
