// Package pipeline ties extraction and both generators into one run.
//
// Generate is pure apart from reading the port description: it renders
// every artifact in memory. Write then places them all-or-nothing, so a
// failed run never leaves a fresh wrapper next to a stale driver.
package pipeline

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/roach88/mitergen/internal/config"
	"github.com/roach88/mitergen/internal/miter"
	"github.com/roach88/mitergen/internal/ports"
	"github.com/roach88/mitergen/internal/testbench"
)

// Target selects which artifacts a run produces.
type Target uint8

const (
	TargetMiter Target = 1 << iota
	TargetTestbench

	TargetAll = TargetMiter | TargetTestbench
)

// Has reports whether t includes other.
func (t Target) Has(other Target) bool {
	return t&other != 0
}

// Artifact is one generated file. Content is complete; Path is where it goes.
type Artifact struct {
	Path    string
	Content []byte
}

// Result is the outcome of Generate.
type Result struct {
	Model       *ports.Model
	Fingerprint string
	Artifacts   []Artifact
}

// Generate extracts the port model named by cfg and renders the requested
// artifacts. A trigger-role model is already a miter, so TargetAll yields
// only the driver and TargetMiter alone is an error.
func Generate(cfg config.Config, targets Target) (*Result, error) {
	if !targets.Has(TargetAll) {
		return nil, ports.NewArgumentError("target", "nothing to generate")
	}

	x, err := ports.NewExtractor(cfg.Format, cfg.ExtractorOptions(), cfg.Scope)
	if err != nil {
		return nil, ports.NewArgumentError("ports_format", "%v", err)
	}
	m, err := ports.ExtractFile(x, cfg.PortsFile)
	if err != nil {
		return nil, err
	}
	fp, err := m.Fingerprint()
	if err != nil {
		return nil, fmt.Errorf("fingerprinting port model: %w", err)
	}

	res := &Result{Model: m, Fingerprint: fp}

	if targets.Has(TargetMiter) && m.Role == ports.RoleData {
		out, err := miter.Generate(m, miter.Options{
			Top:         cfg.Top,
			Gate:        cfg.Gate,
			Golden:      cfg.Golden,
			Layout:      cfg.Layout,
			Fingerprint: fp,
		})
		if err != nil {
			return nil, err
		}
		res.Artifacts = append(res.Artifacts, Artifact{Path: cfg.MiterPath(), Content: out})
	} else if targets == TargetMiter {
		return nil, ports.NewArgumentError("role", "module %q is already a miter; only a testbench can be generated", m.Module)
	}

	if targets.Has(TargetTestbench) {
		top := DriverTop(cfg, m)
		out, err := testbench.Generate(m, testbench.Options{
			Top:         top,
			Seed:        cfg.Seed,
			Cycles:      cfg.Cycles,
			Trace:       cfg.Trace,
			TracePath:   testbench.DefaultTracePath(filepath.ToSlash(cfg.OutDir), top),
			Layout:      cfg.Layout,
			Fingerprint: fp,
		})
		if err != nil {
			return nil, err
		}
		res.Artifacts = append(res.Artifacts, Artifact{Path: cfg.TestbenchPath(), Content: out})
	}

	return res, nil
}

// DriverTop is the module the driver instantiates: the generated wrapper
// for a data-role model, the described module itself for a trigger-role one.
func DriverTop(cfg config.Config, m *ports.Model) string {
	if m.Role == ports.RoleTrigger {
		return m.Module
	}
	return cfg.Top
}

// Runner runs Generate and Write under one run token.
type Runner struct {
	Tokens TokenGenerator // UUIDv7Generator if nil
	Logger *slog.Logger   // slog.Default() if nil
}

// Run generates and writes the requested artifacts.
func (r *Runner) Run(cfg config.Config, targets Target) (*Result, error) {
	tokens := r.Tokens
	if tokens == nil {
		tokens = UUIDv7Generator{}
	}
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("run", tokens.Generate())

	logger.Info("extracting ports", "file", cfg.PortsFile, "format", cfg.Format, "role", cfg.Role)
	res, err := Generate(cfg, targets)
	if err != nil {
		logger.Error("generation failed", "error", err)
		return nil, err
	}
	logger.Info("port model ready",
		"module", res.Model.Module,
		"clock", res.Model.Clock,
		"inputs", len(res.Model.Inputs),
		"outputs", len(res.Model.Outputs),
		"fingerprint", res.Fingerprint,
	)

	if err := Write(res.Artifacts); err != nil {
		logger.Error("write failed", "error", err)
		return nil, err
	}
	for _, a := range res.Artifacts {
		logger.Info("artifact written", "path", a.Path, "bytes", len(a.Content))
	}
	return res, nil
}
