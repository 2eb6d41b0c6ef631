// Package nvcerr carries nanovc-go's error taxonomy (spec §7): sentinel
// errors for the handful of genuine programmer errors, and a
// structured QueryError for search-expression evaluation failures that
// are errors rather than ordinary absent-value returns.
package nvcerr

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmer errors (spec §4.11): conditions that
// are never recovered locally and are never produced by well-formed
// input. Ordinary "not found" and "type mismatch" conditions are
// signaled by returning an absent value, not by these.
var (
	ErrNilByteIndex   = errors.New("nanovc: nil ByteArrayIndex")
	ErrInvalidPattern = errors.New("nanovc: invalid RepoPattern")
	ErrCrossRepoMerge = errors.New("nanovc: cannot merge commits from different Repos")
)

// QueryError is a structured error describing why a search expression
// could not be evaluated at all (as opposed to evaluating to an absent
// value, which is not an error — spec §4.9/§4.11).
type QueryError struct {
	Expression string // which expression kind failed
	Context    string // what was being evaluated
	Err        error  // wrapped underlying error, if any
}

func (e *QueryError) Error() string {
	if e.Context == "" {
		return fmt.Sprintf("nanovc: %s expression failed", e.Expression)
	}
	return fmt.Sprintf("nanovc: %s expression failed: %s", e.Expression, e.Context)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// NewQueryError builds a QueryError for expression, optionally wrapping
// err.
func NewQueryError(expression, context string, err error) *QueryError {
	return &QueryError{Expression: expression, Context: context, Err: err}
}
