// Package testbench generates the Verilator C++ driver for a miter.
//
// The driver seeds std::mt19937 from a single integer and, for each cycle,
// drives the clock low, assigns one pseudo-random bit (rng() & 1) per input
// in canonical order, drives the clock high, and checks the trigger. The
// first asserted trigger ends the run with status 1; otherwise the run
// passes with status 0 after exactly the requested number of cycles. An
// open VCD trace is closed on both paths.
package testbench

import (
	"bytes"
	"fmt"
	"path"
	"strconv"

	"github.com/roach88/mitergen/internal/miter"
	"github.com/roach88/mitergen/internal/ports"
)

// Options configure the driver.
type Options struct {
	Top         string // wrapper module name, miter.DefaultTop if empty
	Seed        uint32
	Cycles      uint32
	Trace       bool
	TracePath   string // VCD path written by the driver, "<top>.vcd" if empty
	Layout      miter.Layout
	Fingerprint string
}

// ModelClass returns the Verilator model class for a top module.
func ModelClass(top string) string {
	return "V" + top
}

// DefaultTracePath returns the VCD path used when none is given, placed in dir.
func DefaultTracePath(dir, top string) string {
	if top == "" {
		top = miter.DefaultTop
	}
	if dir == "" {
		return top + ".vcd"
	}
	return path.Join(dir, top+".vcd")
}

// Generate renders the driver for m.
func Generate(m *ports.Model, opts Options) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if opts.Top == "" {
		opts.Top = miter.DefaultTop
	}
	if !ports.IsIdentifier(opts.Top) {
		return nil, ports.NewArgumentError("top", "%q is not a simple identifier", opts.Top)
	}
	layout, err := miter.ParseLayout(string(opts.Layout))
	if err != nil {
		return nil, ports.NewArgumentError("layout", "%v", err)
	}
	if layout == miter.LayoutVisible && m.Role != ports.RoleData {
		return nil, ports.NewArgumentError("layout", "visible comparisons need a model with data outputs")
	}
	if opts.Trace && opts.TracePath == "" {
		opts.TracePath = DefaultTracePath("", opts.Top)
	}

	data := driverData{
		Fingerprint: opts.Fingerprint,
		Class:       ModelClass(opts.Top),
		Trace:       opts.Trace,
		TracePath:   strconv.Quote(opts.TracePath),
		Seed:        fmt.Sprintf("0x%08x", opts.Seed),
		Cycles:      opts.Cycles,
		Clock:       m.Clock,
		Inputs:      m.Inputs,
		Trigger:     m.Trigger(),
	}
	if layout == miter.LayoutVisible {
		data.Compared = m.Outputs
	}

	var buf bytes.Buffer
	if err := driverTpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("rendering testbench: %w", err)
	}
	return buf.Bytes(), nil
}
