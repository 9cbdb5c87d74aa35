package air

import "fmt"

// ErrorCode represents an arithmetization error code
type ErrorCode int

const (
	// ErrUnknown represents an unknown error
	ErrUnknown ErrorCode = iota

	// ErrInvalidTraceInfo represents an invalid trace shape (width or length)
	ErrInvalidTraceInfo

	// ErrInvalidProofOptions represents invalid proof parameters
	ErrInvalidProofOptions

	// ErrInvalidConstraintDegree represents a malformed transition constraint degree
	ErrInvalidConstraintDegree

	// ErrDegreeOverflow represents a blowup factor too small for the
	// declared constraint degrees
	ErrDegreeOverflow

	// ErrNoAssertions represents a computation with zero assertions; every
	// computation must anchor at least one trace cell to a public value
	ErrNoAssertions

	// ErrInvalidAssertion represents an assertion outside trace bounds or
	// with a malformed stride or value list
	ErrInvalidAssertion

	// ErrConflictingAssertion represents two assertions requiring different
	// values in the same trace cell
	ErrConflictingAssertion

	// ErrInvalidPeriodicColumn represents a periodic column whose cycle
	// length is not a power of two dividing the trace length
	ErrInvalidPeriodicColumn

	// ErrInvalidCoefficients represents a coefficient list whose length does
	// not match the constraint count it is meant to cover
	ErrInvalidCoefficients
)

// Error represents an arithmetization configuration error. All failures in
// this package are construction-time: they are fatal to the computation
// instance being built and are never recoverable by retry.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error returns the error message
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("vybium-stark-air error [%d]: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("vybium-stark-air error [%d]: %s", e.Code, e.Message)
}

// Unwrap returns the cause of the error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target error
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

func newError(code ErrorCode, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}
