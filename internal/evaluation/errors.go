package evaluation

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingGoldContent is returned when a filename listed in the gold
	// standard has no corresponding entry in the content mapping.
	ErrMissingGoldContent = errors.New("gold content missing for listed page")

	// ErrMissingOCRFile is returned when no OCR text file exists for a page
	// listed in the gold standard. This is a hard failure: tolerating a
	// missing page would silently shift the alignment of every page after it.
	ErrMissingOCRFile = errors.New("missing OCR file for listed page")
)

// EvalError wraps errors with context about the evaluation step that failed.
type EvalError struct {
	// Op is the operation that failed (e.g., "Evaluate", "LoadGold").
	Op string

	// Err is the underlying error.
	Err error

	// Details names the file or page key involved in the failure.
	Details string
}

// Error implements the error interface.
func (e *EvalError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("evaluation: %s failed: %s: %v", e.Op, e.Details, e.Err)
	}
	return fmt.Sprintf("evaluation: %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *EvalError) Unwrap() error {
	return e.Err
}

// Is implements error matching for errors.Is.
func (e *EvalError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

func wrapEvalError(op string, err error, details string) error {
	if err == nil {
		return nil
	}

	var evalErr *EvalError
	if errors.As(err, &evalErr) {
		return err
	}

	return &EvalError{Op: op, Err: err, Details: details}
}
