package pipeline

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNoHeaders is returned when a dataset has no header row to resolve
	ErrNoHeaders = errors.New("dataset has no headers")
	// ErrUnknownVariant is returned for a variant outside the closed set
	ErrUnknownVariant = errors.New("unknown source variant")
	// ErrVerificationFailed is returned when a result breaks an output invariant
	ErrVerificationFailed = errors.New("result verification failed")
)

// ErrorCategory classifies run-level failures. Row-level problems are never
// errors; they are counted as model.DropReason.
type ErrorCategory int

const (
	ErrorCategoryNone ErrorCategory = iota
	ErrorCategoryInput
	ErrorCategoryCancelled
	ErrorCategoryVerification
	ErrorCategoryInternal
)

// String returns a string representation of the error category
func (ec ErrorCategory) String() string {
	switch ec {
	case ErrorCategoryNone:
		return "None"
	case ErrorCategoryInput:
		return "Input"
	case ErrorCategoryCancelled:
		return "Cancelled"
	case ErrorCategoryVerification:
		return "Verification"
	case ErrorCategoryInternal:
		return "Internal"
	default:
		return fmt.Sprintf("Unknown(%d)", ec)
	}
}

// CategorizeError determines the category of a run error
func CategorizeError(err error) ErrorCategory {
	if err == nil {
		return ErrorCategoryNone
	}

	var runErr *RunError
	if errors.As(err, &runErr) {
		return runErr.Category
	}

	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ErrorCategoryCancelled
	case errors.Is(err, ErrNoHeaders), errors.Is(err, ErrUnknownVariant):
		return ErrorCategoryInput
	case errors.Is(err, ErrVerificationFailed):
		return ErrorCategoryVerification
	default:
		return ErrorCategoryInternal
	}
}

// RunError is a run-level failure tagged with its run and category
type RunError struct {
	RunID    string
	Category ErrorCategory
	Err      error
}

func newRunError(runID string, err error) *RunError {
	return &RunError{
		RunID:    runID,
		Category: CategorizeError(err),
		Err:      err,
	}
}

func (e *RunError) Error() string {
	return fmt.Sprintf("run %s: [%s] %v", e.RunID, e.Category, e.Err)
}

func (e *RunError) Unwrap() error {
	return e.Err
}
