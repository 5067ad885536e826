package services

import (
	"errors"
	"fmt"
)

// ValidationError is a local input problem. It blocks a checkout transition
// before any remote call is issued.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// RemoteError is a failure from a collaborator (repository, geocoding API,
// card provider), typed at the boundary so callers match on a closed shape
// instead of digging through unknown error bodies.
type RemoteError struct {
	Op      string
	Message string
	Cause   error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *RemoteError) Unwrap() error {
	return e.Cause
}

func remoteErr(op string, cause error) *RemoteError {
	msg := "remote call failed"
	if cause != nil {
		msg = cause.Error()
	}
	return &RemoteError{Op: op, Message: msg, Cause: cause}
}

// PartialFailureError reports a multi-call step where an earlier call
// succeeded and a later one failed. No compensating transaction is run; the
// completed side effect stands server-side and is named here so staff can
// find it.
type PartialFailureError struct {
	Completed string
	Failed    string
	Cause     error
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("%s succeeded but %s failed: %v", e.Completed, e.Failed, e.Cause)
}

func (e *PartialFailureError) Unwrap() error {
	return e.Cause
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
