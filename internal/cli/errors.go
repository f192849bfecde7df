package cli

import (
	"errors"

	"github.com/roach88/mitergen/internal/pipeline"
	"github.com/roach88/mitergen/internal/ports"
)

// Error codes. E0xx are command-level, E1xx missing ports, E2xx schema.
const (
	ErrCodeGeneric         = "E001" // Generic/unknown error
	ErrCodeInvalidArgument = "E002" // Bad flag, run-file value or generator option
	ErrCodeConfigFile      = "E003" // Run file unreadable or malformed
	ErrCodeWriteFailed     = "E007" // Artifact write error

	ErrCodeMissingClock   = "E101"
	ErrCodeNoInputs       = "E102"
	ErrCodeNoOutputs      = "E103"
	ErrCodeNoTrigger      = "E104"
	ErrCodeMissingPortAny = "E100"

	ErrCodeUnreadable       = "E201"
	ErrCodeInvalidDirection = "E202"
	ErrCodeMalformed        = "E203"
	ErrCodeNoModule         = "E204"
	ErrCodeDuplicatePort    = "E205"
	ErrCodeMultipleClocks   = "E206"
	ErrCodeSchemaAny        = "E200"
)

var missingPortCodes = map[ports.MissingPortKind]string{
	ports.MissingClock:   ErrCodeMissingClock,
	ports.MissingInputs:  ErrCodeNoInputs,
	ports.MissingOutputs: ErrCodeNoOutputs,
	ports.MissingTrigger: ErrCodeNoTrigger,
}

var schemaCodes = map[ports.SchemaErrorCode]string{
	ports.ErrCodeUnreadable:       ErrCodeUnreadable,
	ports.ErrCodeInvalidDirection: ErrCodeInvalidDirection,
	ports.ErrCodeMalformed:        ErrCodeMalformed,
	ports.ErrCodeNoModule:         ErrCodeNoModule,
	ports.ErrCodeDuplicatePort:    ErrCodeDuplicatePort,
	ports.ErrCodeMultipleClocks:   ErrCodeMultipleClocks,
}

// configFileError marks a run file that could not be loaded.
type configFileError struct {
	path string
	err  error
}

func (e *configFileError) Error() string { return e.path + ": " + e.err.Error() }
func (e *configFileError) Unwrap() error { return e.err }

// Diagnostic is the user-facing classification of an error.
type Diagnostic struct {
	Code    string
	Message string
	Details map[string]any
	Exit    int
}

// Diagnose maps err onto an error code. Every error raised by generation
// aborts the run with ExitCommandError.
func Diagnose(err error) Diagnostic {
	d := Diagnostic{Code: ErrCodeGeneric, Message: err.Error(), Exit: ExitCommandError}

	var (
		mp *ports.MissingPortError
		se *ports.SchemaError
		ae *ports.ArgumentError
		we *pipeline.WriteError
		ce *configFileError
		ex *ExitError
	)
	switch {
	case errors.As(err, &ex):
		d.Exit = ex.Code
	case errors.As(err, &mp):
		d.Code = codeOr(missingPortCodes[mp.Kind], ErrCodeMissingPortAny)
		d.Details = location(mp.Source, mp.Line)
		d.Details["kind"] = string(mp.Kind)
	case errors.As(err, &se):
		d.Code = codeOr(schemaCodes[se.Code], ErrCodeSchemaAny)
		d.Details = location(se.Source, se.Line)
		d.Details["kind"] = string(se.Code)
	case errors.As(err, &ae):
		d.Code = ErrCodeInvalidArgument
		d.Details = map[string]any{"field": ae.Field}
	case errors.As(err, &we):
		d.Code = ErrCodeWriteFailed
		d.Details = map[string]any{"path": we.Path}
	case errors.As(err, &ce):
		d.Code = ErrCodeConfigFile
		d.Details = map[string]any{"file": ce.path}
	}
	return d
}

func codeOr(code, fallback string) string {
	if code == "" {
		return fallback
	}
	return code
}

func location(file string, line int) map[string]any {
	loc := map[string]any{}
	if file != "" {
		loc["file"] = file
	}
	if line > 0 {
		loc["line"] = line
	}
	return loc
}
