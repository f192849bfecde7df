// Package config builds the immutable run configuration for a generation run.
//
// Values come from an optional YAML run file, overlaid by explicitly set
// command-line flags. Resolve validates the merged values and returns a
// Config; nothing downstream mutates it.
package config

import (
	"path/filepath"

	"github.com/roach88/mitergen/internal/miter"
	"github.com/roach88/mitergen/internal/ports"
)

// Default artifact file suffixes; the base name is the wrapper module name.
const (
	MiterSuffix     = ".v"
	TestbenchSuffix = "_tb.cpp"
)

// Config is a validated run configuration. Pass it by value.
type Config struct {
	OutDir        string
	PortsFile     string // resolved against OutDir when relative
	Format        ports.Format
	Module        string
	Role          ports.Role
	Scope         ports.Scope
	Gate          string
	Golden        string
	Top           string
	MiterFile     string
	TestbenchFile string
	Seed          uint32
	Cycles        uint32
	Trace         bool
	Layout        miter.Layout
}

// ExtractorOptions returns the options for the port extractor.
func (c Config) ExtractorOptions() ports.Options {
	return ports.Options{Module: c.Module, Role: c.Role}
}

// MiterPath is where the wrapper is written.
func (c Config) MiterPath() string {
	return filepath.Join(c.OutDir, c.MiterFile)
}

// TestbenchPath is where the driver is written.
func (c Config) TestbenchPath() string {
	return filepath.Join(c.OutDir, c.TestbenchFile)
}

// Resolve applies defaults to f, validates it and returns the Config.
// Every failure is a *ports.ArgumentError.
func Resolve(f File) (Config, error) {
	var c Config

	if f.OutDir == "" {
		return c, ports.NewArgumentError("out_dir", "is required")
	}
	c.OutDir = filepath.Clean(f.OutDir)

	if f.PortsFile == "" {
		return c, ports.NewArgumentError("ports_file", "is required")
	}
	c.PortsFile = f.PortsFile
	if !filepath.IsAbs(c.PortsFile) {
		c.PortsFile = filepath.Join(c.OutDir, c.PortsFile)
	}

	var err error
	format := f.PortsFormat
	if format == "" {
		format = string(ports.FormatJSON)
	}
	if c.Format, err = ports.ParseFormat(format); err != nil {
		return c, ports.NewArgumentError("ports_format", "%v", err)
	}
	if c.Role, err = ports.ParseRole(f.Role); err != nil {
		return c, ports.NewArgumentError("role", "%v", err)
	}
	if c.Scope, err = ports.ParseScope(f.Scope); err != nil {
		return c, ports.NewArgumentError("scope", "%v", err)
	}
	if c.Layout, err = miter.ParseLayout(f.Layout); err != nil {
		return c, ports.NewArgumentError("layout", "%v", err)
	}
	if c.Layout == miter.LayoutVisible && c.Role == ports.RoleTrigger {
		return c, ports.NewArgumentError("layout", "%q requires role %q", miter.LayoutVisible, ports.RoleData)
	}

	c.Module = f.Module
	c.Gate = f.Gate
	c.Golden = f.Golden

	c.Top = f.Top
	if c.Top == "" {
		c.Top = miter.DefaultTop
	}
	if !ports.IsIdentifier(c.Top) {
		return c, ports.NewArgumentError("top", "%q is not a simple identifier", c.Top)
	}

	c.MiterFile = f.MiterFile
	if c.MiterFile == "" {
		c.MiterFile = c.Top + MiterSuffix
	}
	c.TestbenchFile = f.TestbenchFile
	if c.TestbenchFile == "" {
		c.TestbenchFile = c.Top + TestbenchSuffix
	}
	if err := checkFileName("miter_file", c.MiterFile); err != nil {
		return c, err
	}
	if err := checkFileName("testbench_file", c.TestbenchFile); err != nil {
		return c, err
	}
	if c.MiterFile == c.TestbenchFile {
		return c, ports.NewArgumentError("testbench_file", "must differ from miter_file %q", c.MiterFile)
	}

	if f.Seed == nil {
		return c, ports.NewArgumentError("seed", "is required")
	}
	c.Seed = uint32(*f.Seed)

	if f.Cycles == 0 {
		return c, ports.NewArgumentError("cycles", "must be greater than zero")
	}
	c.Cycles = f.Cycles

	c.Trace = true
	if f.Trace != nil {
		c.Trace = *f.Trace
	}

	return c, nil
}

// checkFileName rejects names that would escape the output directory.
func checkFileName(field, name string) error {
	if name != filepath.Base(name) || name == "." || name == ".." {
		return ports.NewArgumentError(field, "%q must be a plain file name", name)
	}
	return nil
}
