package config

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/mitergen/internal/ports"
)

// File holds raw, unvalidated run settings as written in a YAML run file.
// Pointer fields distinguish "absent" from the zero value.
type File struct {
	OutDir        string `yaml:"out_dir"`
	PortsFile     string `yaml:"ports_file"`
	PortsFormat   string `yaml:"ports_format,omitempty"`
	Module        string `yaml:"module,omitempty"`
	Role          string `yaml:"role,omitempty"`
	Scope         string `yaml:"scope,omitempty"`
	Gate          string `yaml:"gate,omitempty"`
	Golden        string `yaml:"golden,omitempty"`
	Top           string `yaml:"top,omitempty"`
	MiterFile     string `yaml:"miter_file,omitempty"`
	TestbenchFile string `yaml:"testbench_file,omitempty"`
	Seed          *Seed  `yaml:"seed,omitempty"`
	Cycles        uint32 `yaml:"cycles,omitempty"`
	Trace         *bool  `yaml:"trace,omitempty"`
	Layout        string `yaml:"layout,omitempty"`
}

// Seed is a 32-bit PRNG seed written in decimal or 0x-prefixed hex.
type Seed uint32

// ParseSeed parses a decimal, 0x hex, 0o octal or 0b binary seed that fits
// in 32 bits.
func ParseSeed(s string) (Seed, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 0, 32)
	if err != nil {
		return 0, ports.NewArgumentError("seed", "%q is not a 32-bit unsigned integer", s)
	}
	return Seed(v), nil
}

// UnmarshalYAML keeps the scalar's source text so hex seeds survive decoding.
func (s *Seed) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: seed must be a scalar", n.Line)
	}
	v, err := ParseSeed(n.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", n.Line, err)
	}
	*s = v
	return nil
}

// Load reads a YAML run file. Unknown keys are rejected.
func Load(path string) (File, error) {
	var f File
	data, err := os.ReadFile(path)
	if err != nil {
		return f, fmt.Errorf("failed to read run file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML run-file content. Empty input yields an empty File.
func Parse(data []byte) (File, error) {
	var f File
	if len(bytes.TrimSpace(data)) == 0 {
		return f, nil
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil {
		return File{}, fmt.Errorf("failed to parse run file: %w", err)
	}
	return f, nil
}

// Keys lists the settable keys in run-file spelling.
var Keys = []string{
	"out_dir", "ports_file", "ports_format", "module", "role", "scope",
	"gate", "golden", "top", "miter_file", "testbench_file",
	"seed", "cycles", "trace", "layout",
}

// FlagName returns the command-line spelling of a run-file key.
func FlagName(key string) string {
	return strings.ReplaceAll(key, "_", "-")
}

// Overlay returns a copy of f with the given values applied on top.
// Keys may use run-file (out_dir) or flag (out-dir) spelling.
func (f File) Overlay(set map[string]string) (File, error) {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if err := f.apply(strings.ReplaceAll(k, "-", "_"), set[k]); err != nil {
			return File{}, err
		}
	}
	return f, nil
}

func (f *File) apply(key, value string) error {
	switch key {
	case "out_dir":
		f.OutDir = value
	case "ports_file":
		f.PortsFile = value
	case "ports_format":
		f.PortsFormat = value
	case "module":
		f.Module = value
	case "role":
		f.Role = value
	case "scope":
		f.Scope = value
	case "gate":
		f.Gate = value
	case "golden":
		f.Golden = value
	case "top":
		f.Top = value
	case "miter_file":
		f.MiterFile = value
	case "testbench_file":
		f.TestbenchFile = value
	case "layout":
		f.Layout = value
	case "seed":
		s, err := ParseSeed(value)
		if err != nil {
			return err
		}
		f.Seed = &s
	case "cycles":
		n, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			return ports.NewArgumentError("cycles", "%q is not a 32-bit unsigned integer", value)
		}
		f.Cycles = uint32(n)
	case "trace":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return ports.NewArgumentError("trace", "%q is not a boolean", value)
		}
		f.Trace = &b
	default:
		return ports.NewArgumentError(key, "unknown setting")
	}
	return nil
}
