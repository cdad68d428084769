package wfqsim

import (
	"errors"
	"fmt"
)

// ErrInvariantViolation is wrapped by panics raised when the scheduler
// detects a broken internal invariant (heap emptied unexpectedly, negative
// active weight sum, non-monotonic real time). These indicate bugs in the
// scheduler itself, never bad input, and are never recovered from: per the
// error handling design, the process terminates immediately.
var ErrInvariantViolation = errors.New("wfqsim: invariant violation")

// invariantf panics with an [ErrInvariantViolation]-wrapped error built from
// format and args. Internal invariant checks call this instead of returning
// an error because there is no sensible way to continue scheduling once one
// of these conditions is observed.
func invariantf(format string, args ...any) {
	panic(&invariantError{fmt.Sprintf(format, args...)})
}

type invariantError struct {
	msg string
}

func (e *invariantError) Error() string {
	return "wfqsim: invariant violation: " + e.msg
}

func (e *invariantError) Unwrap() error {
	return ErrInvariantViolation
}
