package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/mitergen/internal/testutil"
)

func TestPortsText(t *testing.T) {
	stdout, _, err := execute(t, "ports", "testdata/ports.json")
	require.NoError(t, err)
	testutil.NewGolden(t).Assert(t, "ports_text", []byte(stdout))
}

func TestPortsJSON(t *testing.T) {
	stdout, _, err := execute(t, "--format", "json", "ports", "--ports-format", "header", "--role", "trigger", "testdata/eq_top.v")
	require.NoError(t, err)

	var resp struct {
		Status string `json:"status"`
		Data   struct {
			Module      string   `json:"module"`
			Clock       string   `json:"clock"`
			Inputs      []string `json:"inputs"`
			Outputs     []string `json:"outputs"`
			Role        string   `json:"role"`
			Trigger     string   `json:"trigger"`
			Fingerprint string   `json:"fingerprint"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "eq_top", resp.Data.Module)
	assert.Equal(t, "clk", resp.Data.Clock)
	assert.Equal(t, []string{"_01_", "_02_"}, resp.Data.Inputs)
	assert.Equal(t, []string{"trigger"}, resp.Data.Outputs)
	assert.Equal(t, "trigger", resp.Data.Role)
	assert.Equal(t, "trigger", resp.Data.Trigger)
	assert.Len(t, resp.Data.Fingerprint, 64)
}

func TestPortsInvalidDirection(t *testing.T) {
	stdout, _, err := execute(t, "--format", "json", "ports", "testdata/bad_direction.json")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeInvalidDirection, resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "inout")
}

func TestPortsUnknownModule(t *testing.T) {
	_, stderr, err := execute(t, "ports", "--module", "nosuch", "testdata/ports.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrCodeNoModule)
	assert.Contains(t, stderr, "nosuch")
}

func TestPortsMissingFile(t *testing.T) {
	_, _, err := execute(t, "ports", "testdata/missing.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrCodeUnreadable)
}

func TestPortsBadFormatFlag(t *testing.T) {
	_, _, err := execute(t, "ports", "--ports-format", "edif", "testdata/ports.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrCodeInvalidArgument)
}
