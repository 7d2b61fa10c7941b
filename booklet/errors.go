package booklet

import (
	"errors"
	"fmt"
)

// Sentinel errors for the generation failure conditions that abort a
// run before any page is emitted. Content-level problems (missing
// images, unstylable runs, oversized blocks) degrade instead.
var (
	ErrNoAreas      = errors.New("booklet: document has no areas")
	ErrInvalidInput = errors.New("booklet: input does not match the course schema")
	ErrNoOutput     = errors.New("booklet: no output path and none derivable")
)

// GenError wraps a failure with the generation stage it happened in.
type GenError struct {
	Op  string // stage name, e.g. "parse", "cover", "output"
	Err error
}

func (e *GenError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("booklet.%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("booklet.%s: unknown error", e.Op)
}

func (e *GenError) Unwrap() error {
	return e.Err
}

func genError(op string, err error) *GenError {
	return &GenError{Op: op, Err: err}
}
