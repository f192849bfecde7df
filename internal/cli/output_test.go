package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/mitergen/internal/pipeline"
	"github.com/roach88/mitergen/internal/ports"
)

func TestOutputFormatter_JSONSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	err := formatter.Success(map[string]string{"result": "success"})
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.NotNil(t, resp.Data)
}

func TestOutputFormatter_JSONError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	err := formatter.Error("E101", "no clock port found", map[string]any{"line": 3})
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "E101", resp.Error.Code)
	assert.Equal(t, "no clock port found", resp.Error.Message)
	assert.NotNil(t, resp.Error.Details)
}

func TestOutputFormatter_TextErrorGoesToErrWriter(t *testing.T) {
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format:    "text",
		Writer:    out,
		ErrWriter: errOut,
		Verbose:   true,
	}

	err := formatter.Error("E002", "invalid seed", map[string]any{"field": "seed"})
	require.NoError(t, err)
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "Error [E002]: invalid seed")
	assert.Contains(t, errOut.String(), "Details:")
}

func TestOutputFormatter_VerboseLog(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		wantLog bool
	}{
		{"verbose_enabled", true, true},
		{"verbose_disabled", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			formatter := &OutputFormatter{
				Format:  "text",
				Writer:  buf,
				Verbose: tt.verbose,
			}

			formatter.VerboseLog("Reading %s", "ports.json")

			if tt.wantLog {
				assert.Contains(t, buf.String(), "Reading ports.json")
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("boom")))
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "bad")))
	assert.Equal(t, ExitCommandError, GetExitCode(fmt.Errorf("wrapped: %w", NewExitError(ExitCommandError, "bad"))))
}

func TestDiagnose(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
	}{
		{"missing clock", &ports.MissingPortError{Kind: ports.MissingClock, Module: "m", Source: "a.v", Line: 4}, ErrCodeMissingClock},
		{"no inputs", &ports.MissingPortError{Kind: ports.MissingInputs, Module: "m"}, ErrCodeNoInputs},
		{"no outputs", &ports.MissingPortError{Kind: ports.MissingOutputs, Module: "m"}, ErrCodeNoOutputs},
		{"no trigger", &ports.MissingPortError{Kind: ports.MissingTrigger, Module: "m"}, ErrCodeNoTrigger},
		{"invalid direction", ports.NewInvalidDirectionError("p.json", "a", "inout"), ErrCodeInvalidDirection},
		{"malformed", &ports.SchemaError{Code: ports.ErrCodeMalformed, Message: "x"}, ErrCodeMalformed},
		{"no module", &ports.SchemaError{Code: ports.ErrCodeNoModule, Message: "x"}, ErrCodeNoModule},
		{"argument", ports.NewArgumentError("seed", "bad"), ErrCodeInvalidArgument},
		{"write", &pipeline.WriteError{Path: "out/eq_top.v", Err: errors.New("disk full")}, ErrCodeWriteFailed},
		{"run file", &configFileError{path: "run.yaml", err: errors.New("bad yaml")}, ErrCodeConfigFile},
		{"other", errors.New("boom"), ErrCodeGeneric},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Diagnose(fmt.Errorf("context: %w", tt.err))
			assert.Equal(t, tt.code, d.Code)
			assert.Equal(t, ExitCommandError, d.Exit)
		})
	}

	d := Diagnose(&ports.MissingPortError{Kind: ports.MissingClock, Module: "m", Source: "a.v", Line: 4})
	assert.Equal(t, map[string]any{"file": "a.v", "line": 4, "kind": "MISSING_CLOCK"}, d.Details)
}
