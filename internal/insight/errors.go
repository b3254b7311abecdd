package insight

import (
	"errors"
	"fmt"
)

var (
	ErrNoCredential       = errors.New("insight: no credential stored")
	ErrInFlight           = errors.New("insight: an invocation is already in flight")
	ErrPartialResponse    = errors.New("insight: backend returned no usable text")
	ErrAllModelsExhausted = errors.New("insight: all candidate models failed")
)

// ExhaustedError is returned when every candidate failed. DiagnosticModels is
// filled when the best-effort model listing succeeded.
type ExhaustedError struct {
	Attempts         []Attempt
	LastErr          error
	DiagnosticModels []string
	DiagnosticErr    error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("%s after %d attempts: %v", ErrAllModelsExhausted, len(e.Attempts), e.LastErr)
}

func (e *ExhaustedError) Unwrap() []error {
	if e.LastErr == nil {
		return []error{ErrAllModelsExhausted}
	}
	return []error{ErrAllModelsExhausted, e.LastErr}
}
