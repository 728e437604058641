package services

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file type")

	// ErrGenerationUnavailable and ErrStructuredOutputInvalid never leave the
	// services package as hard failures; they pick a fallback branch.
	ErrGenerationUnavailable   = errors.New("generation service unavailable")
	ErrStructuredOutputInvalid = errors.New("structured output invalid")
)

// DocumentParseError reports bytes that are not a valid document of the declared format.
type DocumentParseError struct {
	Format DocumentFormat
	Err    error
}

func (e *DocumentParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Format, e.Err)
}

func (e *DocumentParseError) Unwrap() error {
	return e.Err
}
