package ports

import (
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Direction is the direction of a module port.
type Direction string

const (
	Input  Direction = "input"
	Output Direction = "output"
)

// ParseDirection maps a direction token to a Direction.
// Only the exact tokens "input" and "output" are accepted.
func ParseDirection(s string) (Direction, bool) {
	switch Direction(s) {
	case Input, Output:
		return Direction(s), true
	}
	return "", false
}

// Port is one port of a circuit module, as named by the upstream tool.
type Port struct {
	Name      string
	Direction Direction
	Line      int // source line, header format only
}

// Role says how the outputs of a Model are interpreted.
type Role string

const (
	// RoleData: outputs are data outputs to be compared (N >= 1).
	RoleData Role = "data"

	// RoleTrigger: the module is an already-built miter exposing a single
	// completion signal.
	RoleTrigger Role = "trigger"
)

// ParseRole parses a role name; the empty string means RoleData.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case "", RoleData:
		return RoleData, nil
	case RoleTrigger:
		return RoleTrigger, nil
	}
	return "", fmt.Errorf("unknown role %q: must be %q or %q", s, RoleData, RoleTrigger)
}

// TriggerPort is the name of the miter's fault output.
const TriggerPort = "trigger"

// ClockMarker identifies the clock input by substring.
const ClockMarker = "clk"

// Model is the canonical port model consumed by the generators.
// All identifiers are sanitized.
type Model struct {
	Module  string   `json:"module"`
	Clock   string   `json:"clock"`
	Inputs  []string `json:"inputs"`
	Outputs []string `json:"outputs"`
	Role    Role     `json:"role"`
}

// Trigger returns the signal the driver checks for divergence.
func (m *Model) Trigger() string {
	if m.Role == RoleTrigger && len(m.Outputs) == 1 {
		return m.Outputs[0]
	}
	return TriggerPort
}

var identRE = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// IsIdentifier reports whether s is a simple Verilog/C++ identifier.
func IsIdentifier(s string) bool {
	return identRE.MatchString(s)
}

// Validate checks the Model invariants.
func (m *Model) Validate() error {
	if m.Clock == "" {
		return &MissingPortError{Kind: MissingClock, Module: m.Module}
	}
	if len(m.Inputs) == 0 {
		return &MissingPortError{Kind: MissingInputs, Module: m.Module}
	}
	if len(m.Outputs) == 0 {
		if m.Role == RoleTrigger {
			return &MissingPortError{Kind: MissingTrigger, Module: m.Module}
		}
		return &MissingPortError{Kind: MissingOutputs, Module: m.Module}
	}
	if m.Role == RoleTrigger && len(m.Outputs) != 1 {
		return &MissingPortError{Kind: MissingTrigger, Module: m.Module}
	}

	seen := make(map[string]bool, 1+len(m.Inputs)+len(m.Outputs))
	all := append(append([]string{m.Clock}, m.Inputs...), m.Outputs...)
	for _, id := range all {
		if !IsIdentifier(id) {
			return &SchemaError{
				Code:    ErrCodeMalformed,
				Message: fmt.Sprintf("module %q: port %q is not a simple identifier", m.Module, id),
			}
		}
		if seen[id] {
			return &SchemaError{
				Code:    ErrCodeDuplicatePort,
				Message: fmt.Sprintf("module %q: port %q declared more than once", m.Module, id),
			}
		}
		seen[id] = true
	}
	return nil
}

// Extractor converts one upstream port description into a Model.
// source names the description in diagnostics.
type Extractor interface {
	Extract(r io.Reader, source string) (*Model, error)
}

// Options configure which module an extractor reads and how outputs are
// interpreted.
type Options struct {
	Module string // empty selects the first module
	Role   Role
}

// buildModel classifies ports in encounter order. The clock is recognised by
// the raw name; everything stored is sanitized.
func buildModel(module, source string, ports []Port, role Role) (*Model, error) {
	if role == "" {
		role = RoleData
	}
	m := &Model{Module: module, Role: role}

	var outputs []string
	for _, p := range ports {
		name := Sanitize(p.Name)
		switch p.Direction {
		case Input:
			if strings.Contains(p.Name, ClockMarker) {
				if m.Clock != "" {
					return nil, &SchemaError{
						Code:    ErrCodeMultipleClocks,
						Message: fmt.Sprintf("module %q: clock inputs %q and %q", module, m.Clock, name),
						Source:  source,
						Line:    p.Line,
					}
				}
				m.Clock = name
				continue
			}
			m.Inputs = append(m.Inputs, name)
		case Output:
			outputs = append(outputs, name)
		default:
			return nil, NewInvalidDirectionError(source, p.Name, string(p.Direction))
		}
	}

	if m.Clock == "" {
		return nil, &MissingPortError{Kind: MissingClock, Module: module, Source: source}
	}
	if len(m.Inputs) == 0 {
		return nil, &MissingPortError{Kind: MissingInputs, Module: module, Source: source}
	}

	if role == RoleTrigger {
		trigger, ok := designateTrigger(outputs)
		if !ok {
			return nil, &MissingPortError{Kind: MissingTrigger, Module: module, Source: source}
		}
		m.Outputs = []string{trigger}
	} else {
		if len(outputs) == 0 {
			return nil, &MissingPortError{Kind: MissingOutputs, Module: module, Source: source}
		}
		m.Outputs = outputs
	}

	if err := m.Validate(); err != nil {
		if se, ok := err.(*SchemaError); ok && se.Source == "" {
			se.Source = source
		}
		return nil, err
	}
	return m, nil
}

// designateTrigger picks the output named TriggerPort, or the only output.
func designateTrigger(outputs []string) (string, bool) {
	for _, o := range outputs {
		if o == TriggerPort {
			return o, true
		}
	}
	if len(outputs) == 1 {
		return outputs[0], true
	}
	return "", false
}
