package ports

import (
	"errors"
	"fmt"
)

// MissingPortKind identifies which required port was not found.
type MissingPortKind string

const (
	// MissingClock means no input port name contains "clk".
	MissingClock MissingPortKind = "MISSING_CLOCK"

	// MissingInputs means no data input was recognised.
	MissingInputs MissingPortKind = "NO_INPUTS"

	// MissingOutputs means no output was recognised.
	MissingOutputs MissingPortKind = "NO_OUTPUTS"

	// MissingTrigger means no single trigger output could be designated.
	MissingTrigger MissingPortKind = "NO_TRIGGER"
)

// MissingPortError reports that a port description lacks a required port.
type MissingPortError struct {
	Kind   MissingPortKind
	Module string
	Source string // file the description was read from, if known
	Line   int    // line of the module header, header format only
}

func (e *MissingPortError) Error() string {
	var what string
	switch e.Kind {
	case MissingClock:
		what = "no clock port found (no input name contains \"clk\")"
	case MissingInputs:
		what = "no input ports found"
	case MissingOutputs:
		what = "no output ports found"
	case MissingTrigger:
		what = "no trigger port found"
	default:
		what = "required port missing"
	}
	switch {
	case e.Source != "" && e.Line > 0:
		return fmt.Sprintf("%s:%d: module %q: %s", e.Source, e.Line, e.Module, what)
	case e.Source != "":
		return fmt.Sprintf("%s: module %q: %s", e.Source, e.Module, what)
	}
	return fmt.Sprintf("module %q: %s", e.Module, what)
}

// SchemaErrorCode categorizes schema errors.
type SchemaErrorCode string

const (
	// ErrCodeUnreadable means the description could not be read or decoded.
	ErrCodeUnreadable SchemaErrorCode = "UNREADABLE"

	// ErrCodeInvalidDirection means a port direction is neither input nor output.
	ErrCodeInvalidDirection SchemaErrorCode = "INVALID_DIRECTION"

	// ErrCodeMalformed means the document does not have the expected shape.
	ErrCodeMalformed SchemaErrorCode = "MALFORMED"

	// ErrCodeNoModule means no (or no selected) module was found.
	ErrCodeNoModule SchemaErrorCode = "NO_MODULE"

	// ErrCodeDuplicatePort means a port identifier occurs twice after sanitization.
	ErrCodeDuplicatePort SchemaErrorCode = "DUPLICATE_PORT"

	// ErrCodeMultipleClocks means more than one input name contains "clk".
	ErrCodeMultipleClocks SchemaErrorCode = "MULTIPLE_CLOCKS"
)

// SchemaError reports a malformed port description.
type SchemaError struct {
	Code    SchemaErrorCode
	Message string
	Source  string
	Line    int // 1-based, header format only
	Err     error
}

func (e *SchemaError) Error() string {
	loc := e.Source
	if loc != "" && e.Line > 0 {
		loc = fmt.Sprintf("%s:%d", loc, e.Line)
	}
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if loc != "" {
		msg = loc + ": " + msg
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

// NewInvalidDirectionError creates a SchemaError for an unknown direction token.
func NewInvalidDirectionError(source, port, direction string) *SchemaError {
	return &SchemaError{
		Code:    ErrCodeInvalidDirection,
		Message: fmt.Sprintf("port %q: unknown direction %q", port, direction),
		Source:  source,
	}
}

// IsMissingPort returns true if err is (or wraps) a MissingPortError.
// With kinds given, the error must also be one of them.
func IsMissingPort(err error, kinds ...MissingPortKind) bool {
	var mp *MissingPortError
	if !errors.As(err, &mp) {
		return false
	}
	if len(kinds) == 0 {
		return true
	}
	for _, k := range kinds {
		if mp.Kind == k {
			return true
		}
	}
	return false
}

// IsSchema returns true if err is (or wraps) a SchemaError.
func IsSchema(err error) bool {
	var se *SchemaError
	return errors.As(err, &se)
}

// IsInvalidDirection returns true if err is a SchemaError for an unknown direction.
func IsInvalidDirection(err error) bool {
	var se *SchemaError
	if errors.As(err, &se) {
		return se.Code == ErrCodeInvalidDirection
	}
	return false
}

// ArgumentError reports a caller-supplied parameter that fails a basic
// shape check (generator options, run configuration).
type ArgumentError struct {
	Field   string
	Message string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// NewArgumentError creates an ArgumentError.
func NewArgumentError(field, format string, args ...any) *ArgumentError {
	return &ArgumentError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// IsInvalidArgument returns true if err is (or wraps) an ArgumentError.
func IsInvalidArgument(err error) bool {
	var ae *ArgumentError
	return errors.As(err, &ae)
}
