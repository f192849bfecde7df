package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/mitergen/internal/miter"
	"github.com/roach88/mitergen/internal/ports"
)

const runFile = `
out_dir: build/run1
ports_file: eq_top.json
gate: gate_top
golden: gold_top
seed: 0xb15d635f
cycles: 100
`

func TestParseAndResolveDefaults(t *testing.T) {
	f, err := Parse([]byte(runFile))
	require.NoError(t, err)

	cfg, err := Resolve(f)
	require.NoError(t, err)

	assert.Equal(t, "build/run1", cfg.OutDir)
	assert.Equal(t, filepath.Join("build/run1", "eq_top.json"), cfg.PortsFile)
	assert.Equal(t, ports.FormatJSON, cfg.Format)
	assert.Equal(t, ports.RoleData, cfg.Role)
	assert.Equal(t, ports.ScopeModule, cfg.Scope)
	assert.Equal(t, miter.LayoutInternal, cfg.Layout)
	assert.Equal(t, "eq_top", cfg.Top)
	assert.Equal(t, "eq_top.v", cfg.MiterFile)
	assert.Equal(t, "eq_top_tb.cpp", cfg.TestbenchFile)
	assert.Equal(t, uint32(0xb15d635f), cfg.Seed)
	assert.Equal(t, uint32(100), cfg.Cycles)
	assert.True(t, cfg.Trace)

	assert.Equal(t, filepath.Join("build/run1", "eq_top.v"), cfg.MiterPath())
	assert.Equal(t, filepath.Join("build/run1", "eq_top_tb.cpp"), cfg.TestbenchPath())
	assert.Equal(t, ports.Options{Role: ports.RoleData}, cfg.ExtractorOptions())
}

func TestAbsolutePortsFileKept(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "ports.json")
	f, err := Parse([]byte(runFile))
	require.NoError(t, err)
	f, err = f.Overlay(map[string]string{"ports_file": abs})
	require.NoError(t, err)

	cfg, err := Resolve(f)
	require.NoError(t, err)
	assert.Equal(t, abs, cfg.PortsFile)
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte(runFile + "cycle: 10\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cycle")
}

func TestParseEmpty(t *testing.T) {
	f, err := Parse([]byte("  \n"))
	require.NoError(t, err)
	assert.Equal(t, File{}, f)
}

func TestSeedForms(t *testing.T) {
	tests := []struct {
		in   string
		want Seed
	}{
		{"0", 0},
		{"42", 42},
		{"0x5762b088", 0x5762b088},
		{"0XFFFFFFFF", 0xffffffff},
		{"4294967295", 0xffffffff},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSeed(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"", "-1", "4294967296", "0x100000000", "seed"} {
		_, err := ParseSeed(bad)
		require.Error(t, err, bad)
		assert.True(t, ports.IsInvalidArgument(err))
	}
}

func TestSeedYAMLDecimal(t *testing.T) {
	f, err := Parse([]byte("seed: 1234\n"))
	require.NoError(t, err)
	require.NotNil(t, f.Seed)
	assert.Equal(t, Seed(1234), *f.Seed)

	_, err = Parse([]byte("seed: [1, 2]\n"))
	require.Error(t, err)

	_, err = Parse([]byte("seed: 99999999999\n"))
	require.Error(t, err)
}

func TestOverlay(t *testing.T) {
	f, err := Parse([]byte(runFile))
	require.NoError(t, err)

	_, err = f.Overlay(map[string]string{"seed": "7", "gold-top": "g"})
	require.Error(t, err)
	assert.True(t, ports.IsInvalidArgument(err))

	f, err = f.Overlay(map[string]string{
		"seed":         "7",
		"cycles":       "5",
		"trace":        "false",
		"out-dir":      "other",
		"layout":       "visible",
		"top":          "miter",
		"ports_format": "header",
	})
	require.NoError(t, err)

	cfg, err := Resolve(f)
	require.NoError(t, err)
	assert.Equal(t, uint32(7), cfg.Seed)
	assert.Equal(t, uint32(5), cfg.Cycles)
	assert.False(t, cfg.Trace)
	assert.Equal(t, "other", cfg.OutDir)
	assert.Equal(t, filepath.Join("other", "eq_top.json"), cfg.PortsFile)
	assert.Equal(t, miter.LayoutVisible, cfg.Layout)
	assert.Equal(t, ports.FormatHeader, cfg.Format)
	assert.Equal(t, "miter.v", cfg.MiterFile)
	assert.Equal(t, "miter_tb.cpp", cfg.TestbenchFile)
	assert.Equal(t, "gate_top", cfg.Gate, "values not overlaid are kept")
}

func TestOverlayBadValues(t *testing.T) {
	for k, v := range map[string]string{"seed": "x", "cycles": "-3", "trace": "maybe"} {
		t.Run(k, func(t *testing.T) {
			_, err := File{}.Overlay(map[string]string{k: v})
			require.Error(t, err)
			assert.True(t, ports.IsInvalidArgument(err))
		})
	}
}

func TestResolveRejects(t *testing.T) {
	tests := []struct {
		name  string
		set   map[string]string
		field string
	}{
		{"no out dir", map[string]string{"out_dir": ""}, "out_dir"},
		{"no ports file", map[string]string{"ports_file": ""}, "ports_file"},
		{"zero cycles", map[string]string{"cycles": "0"}, "cycles"},
		{"bad format", map[string]string{"ports_format": "edif"}, "ports_format"},
		{"bad role", map[string]string{"role": "golden"}, "role"},
		{"bad scope", map[string]string{"scope": "file"}, "scope"},
		{"bad layout", map[string]string{"layout": "public"}, "layout"},
		{"visible trigger", map[string]string{"layout": "visible", "role": "trigger"}, "layout"},
		{"bad top", map[string]string{"top": "eq-top"}, "top"},
		{"nested miter file", map[string]string{"miter_file": "../eq_top.v"}, "miter_file"},
		{"same files", map[string]string{"miter_file": "x", "testbench_file": "x"}, "testbench_file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Parse([]byte(runFile))
			require.NoError(t, err)
			f, err = f.Overlay(tt.set)
			require.NoError(t, err)

			_, err = Resolve(f)
			require.Error(t, err)
			var ae *ports.ArgumentError
			require.ErrorAs(t, err, &ae)
			assert.Equal(t, tt.field, ae.Field)
		})
	}
}

func TestResolveRequiresSeed(t *testing.T) {
	f := File{OutDir: "out", PortsFile: "p.json", Cycles: 1}
	_, err := Resolve(f)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "seed")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte(runFile+"trace: false\nrole: trigger\n"), 0o644))

	f, err := Load(path)
	require.NoError(t, err)
	cfg, err := Resolve(f)
	require.NoError(t, err)
	assert.False(t, cfg.Trace)
	assert.Equal(t, ports.RoleTrigger, cfg.Role)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestFlagName(t *testing.T) {
	assert.Equal(t, "out-dir", FlagName("out_dir"))
	assert.Equal(t, "seed", FlagName("seed"))
	assert.Len(t, Keys, 15)
}
