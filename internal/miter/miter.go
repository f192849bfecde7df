// Package miter generates the equivalence-checking wrapper (eq_top).
//
// The wrapper instantiates the gate-level and golden modules on the same
// clock and inputs, compares every output with the four-state exact ===
// operator, and drives trigger high whenever any pair differs:
//
//	assign y = (y_gate === y_golden);
//	assign equivalent = &{ y, ... };
//	assign trigger = ~equivalent;
//
// Output is a pure function of the model and options.
package miter

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/roach88/mitergen/internal/ports"
)

// DefaultTop is the wrapper module name.
const DefaultTop = "eq_top"

// EquivalentWire is the AND-reduction of all comparison wires.
const EquivalentWire = "equivalent"

// Options configure the wrapper.
type Options struct {
	Top         string // wrapper module name, DefaultTop if empty
	Gate        string // gate-level module name
	Golden      string // golden module name
	Layout      Layout
	Fingerprint string // port model fingerprint for the header comment, optional
}

// InstanceName returns the instance name used for module.
func InstanceName(module string) string {
	return "inst_" + module
}

// WireName returns the per-instance wire carrying output o of module.
func WireName(output, module string) string {
	return output + "_" + module
}

// Generate renders the wrapper for m.
func Generate(m *ports.Model, opts Options) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if m.Role != ports.RoleData {
		return nil, ports.NewArgumentError("role", "wrapper needs data outputs, model %q has role %q", m.Module, m.Role)
	}
	opts, err := opts.normalize()
	if err != nil {
		return nil, err
	}

	if err := checkCollisions(m, opts); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := wrapperTpl.Execute(&buf, buildData(m, opts)); err != nil {
		return nil, fmt.Errorf("rendering wrapper: %w", err)
	}
	return buf.Bytes(), nil
}

func (o Options) normalize() (Options, error) {
	if o.Top == "" {
		o.Top = DefaultTop
	}
	if o.Layout == "" {
		o.Layout = LayoutInternal
	}
	if _, err := ParseLayout(string(o.Layout)); err != nil {
		return o, ports.NewArgumentError("layout", "%v", err)
	}

	named := []struct{ field, value string }{
		{"top", o.Top},
		{"gate module", o.Gate},
		{"golden module", o.Golden},
	}
	for _, n := range named {
		if n.value == "" {
			return o, ports.NewArgumentError(n.field, "name is required")
		}
		if !ports.IsIdentifier(n.value) {
			return o, ports.NewArgumentError(n.field, "%q is not a simple identifier", n.value)
		}
	}
	if o.Gate == o.Golden {
		return o, ports.NewArgumentError("golden module", "gate and golden modules are both %q", o.Gate)
	}
	if o.Top == o.Gate || o.Top == o.Golden {
		return o, ports.NewArgumentError("top", "wrapper %q cannot instantiate itself", o.Top)
	}
	return o, nil
}

func buildData(m *ports.Model, opts Options) wrapperData {
	visible := opts.Layout == LayoutVisible

	decls := []string{"input wire " + m.Clock}
	for _, in := range m.Inputs {
		decls = append(decls, "input wire "+in)
	}
	if visible {
		for _, out := range m.Outputs {
			decls = append(decls, "output wire "+out)
		}
	}
	decls = append(decls, "output wire "+ports.TriggerPort)

	lines := make([]portLine, len(decls))
	for i, sep := range separators(len(decls)) {
		lines[i] = portLine{Decl: decls[i], Sep: sep}
	}

	return wrapperData{
		Fingerprint: opts.Fingerprint,
		Top:         opts.Top,
		Gate:        opts.Gate,
		Golden:      opts.Golden,
		Visible:     visible,
		Ports:       lines,
		Outputs:     m.Outputs,
		Instances: []instance{
			newInstance(m, opts.Gate),
			newInstance(m, opts.Golden),
		},
		Equivalent: EquivalentWire,
		Trigger:    ports.TriggerPort,
	}
}

// newInstance wires clock and inputs straight through and routes each
// output to the instance's own wire. Order: clock, inputs, outputs.
func newInstance(m *ports.Model, module string) instance {
	conns := []conn{{Port: m.Clock, Net: m.Clock}}
	for _, in := range m.Inputs {
		conns = append(conns, conn{Port: in, Net: in})
	}
	for _, out := range m.Outputs {
		conns = append(conns, conn{Port: out, Net: WireName(out, module)})
	}
	for i, sep := range separators(len(conns)) {
		conns[i].Sep = sep
	}
	return instance{Module: module, Name: InstanceName(module), Conns: conns}
}

// checkCollisions rejects any name declared twice in the wrapper scope,
// e.g. an input called "y_gate" next to output y of module gate.
func checkCollisions(m *ports.Model, opts Options) error {
	owners := make(map[string][]string)
	add := func(name, what string) {
		owners[name] = append(owners[name], what)
	}

	add(m.Clock, "clock port")
	for _, in := range m.Inputs {
		add(in, "input port")
	}
	for _, out := range m.Outputs {
		add(out, "comparison wire")
		add(WireName(out, opts.Gate), "gate output wire")
		add(WireName(out, opts.Golden), "golden output wire")
	}
	add(EquivalentWire, "equivalent wire")
	add(ports.TriggerPort, "trigger port")
	add(InstanceName(opts.Gate), "gate instance")
	add(InstanceName(opts.Golden), "golden instance")

	var clashes []string
	for name, what := range owners {
		if len(what) > 1 {
			clashes = append(clashes, fmt.Sprintf("%s (%v)", name, what))
		}
	}
	if len(clashes) > 0 {
		sort.Strings(clashes)
		return ports.NewArgumentError("port names", "wrapper identifiers collide: %v", clashes)
	}
	return nil
}
