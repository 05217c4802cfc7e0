// Package errors defines stable error and warning codes for all failure modes
// of the trace pipeline. Fatal conditions abort the run; warnings are collected
// and surfaced alongside successful output.
package errors

import (
	"fmt"
	"strings"
)

// ErrorCode represents stable error codes for fatal failure modes
type ErrorCode string

const (
	// ParseFailed indicates the input file could not be decoded
	ParseFailed ErrorCode = "PARSE_FAILED"
	// UnresolvedReference indicates a reference targets a nonexistent node
	UnresolvedReference ErrorCode = "UNRESOLVED_REFERENCE"
	// TypeMismatch indicates a reference targets a node of an unexpected type
	TypeMismatch ErrorCode = "TYPE_MISMATCH"
	// OrphanedTransformation indicates a transformation with no input or no output
	OrphanedTransformation ErrorCode = "ORPHANED_TRANSFORMATION"
	// CycleDetected indicates the dependency graph is not acyclic
	CycleDetected ErrorCode = "CYCLE_DETECTED"
	// InternalError indicates an unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// TraceError represents a fatal pipeline error with a stable code
type TraceError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details any       `json:"details,omitempty"`
	cause   error     // Underlying error (not exported to JSON)
}

// New creates a new TraceError
func New(code ErrorCode, message string) *TraceError {
	return &TraceError{Code: code, Message: message}
}

// Newf creates a new TraceError with a formatted message
func Newf(code ErrorCode, format string, args ...any) *TraceError {
	return &TraceError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a new TraceError around an underlying cause
func Wrap(code ErrorCode, message string, cause error) *TraceError {
	return &TraceError{Code: code, Message: message, cause: cause}
}

// Error implements the error interface
func (e *TraceError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *TraceError) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *TraceError) WithDetails(details any) *TraceError {
	e.Details = details
	return e
}

// CodeOf returns the error code carried by err, or InternalError for
// errors that did not originate in this package.
func CodeOf(err error) ErrorCode {
	if te, ok := err.(*TraceError); ok {
		return te.Code
	}
	return InternalError
}

// WarningCode represents stable codes for non-fatal conditions
type WarningCode string

const (
	// IncompleteTrace indicates a trace model with zero traced rules
	IncompleteTrace WarningCode = "INCOMPLETE_TRACE"
	// AncestryAmbiguous indicates version metadata does not allow unambiguous
	// lineage inference; the node is excluded from inferred edges
	AncestryAmbiguous WarningCode = "ANCESTRY_AMBIGUOUS"
	// DerivationRuleMissing indicates a derives link without rule text
	DerivationRuleMissing WarningCode = "DERIVATION_RULE_MISSING"
)

// Warning is a non-fatal condition collected during a run
type Warning struct {
	Code    WarningCode `json:"code"`
	Message string      `json:"message"`
	Node    string      `json:"node,omitempty"`
}

// Warnf creates a Warning attached to the named node
func Warnf(code WarningCode, node, format string, args ...any) Warning {
	return Warning{Code: code, Node: node, Message: fmt.Sprintf(format, args...)}
}

// String renders the warning for log output
func (w Warning) String() string {
	if w.Node != "" {
		return fmt.Sprintf("[%s] %s: %s", w.Code, w.Node, w.Message)
	}
	return fmt.Sprintf("[%s] %s", w.Code, w.Message)
}

// FormatCyclePath renders a cycle's node sequence for CycleDetected details.
func FormatCyclePath(nodes []string) string {
	return strings.Join(nodes, " -> ")
}
