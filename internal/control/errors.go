package control

import (
	"fmt"
)

// ParseErrorType represents different categories of parse failures
type ParseErrorType int

const (
	ErrMalformedLine ParseErrorType = iota
	ErrDanglingContinuation
	ErrDuplicateField
	ErrEnvelopeNotAllowed
	ErrMissingSignature
	ErrUnterminatedSignature
)

// String returns the string representation of ParseErrorType
func (t ParseErrorType) String() string {
	switch t {
	case ErrMalformedLine:
		return "MalformedLine"
	case ErrDanglingContinuation:
		return "DanglingContinuation"
	case ErrDuplicateField:
		return "DuplicateField"
	case ErrEnvelopeNotAllowed:
		return "EnvelopeNotAllowed"
	case ErrMissingSignature:
		return "MissingSignature"
	case ErrUnterminatedSignature:
		return "UnterminatedSignature"
	default:
		return "Unknown"
	}
}

// ParseError represents a fatal error while parsing a control paragraph.
// File and Line locate the failure in the input source; Line is 1-based.
type ParseError struct {
	Type ParseErrorType
	File string
	Line int
	Msg  string
}

// Error implements the error interface
func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Msg)
}
