package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/mitergen/internal/ports"
)

// extractFlags select the extraction strategy for commands that read a
// port description directly.
type extractFlags struct {
	Format string
	Module string
	Role   string
	Scope  string
}

func (e *extractFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&e.Format, "ports-format", string(ports.FormatJSON), "port description format (json|header)")
	cmd.Flags().StringVar(&e.Module, "module", "", "module to read ports from (default: first module)")
	cmd.Flags().StringVar(&e.Role, "role", string(ports.RoleData), "port model role (data|trigger)")
	cmd.Flags().StringVar(&e.Scope, "scope", string(ports.ScopeModule), "header scan scope (header|module)")
}

func (e *extractFlags) extract(path string) (*ports.Model, error) {
	format, err := ports.ParseFormat(e.Format)
	if err != nil {
		return nil, ports.NewArgumentError("ports-format", "%v", err)
	}
	role, err := ports.ParseRole(e.Role)
	if err != nil {
		return nil, ports.NewArgumentError("role", "%v", err)
	}
	scope, err := ports.ParseScope(e.Scope)
	if err != nil {
		return nil, ports.NewArgumentError("scope", "%v", err)
	}
	x, err := ports.NewExtractor(format, ports.Options{Module: e.Module, Role: role}, scope)
	if err != nil {
		return nil, ports.NewArgumentError("ports-format", "%v", err)
	}
	return ports.ExtractFile(x, path)
}

// PortsOptions holds flags for the ports command.
type PortsOptions struct {
	*RootOptions
	extractFlags
}

// PortsResult is the canonical model plus its fingerprint.
type PortsResult struct {
	*ports.Model
	TriggerPort string `json:"trigger"`
	Fingerprint string `json:"fingerprint"`
}

// NewPortsCommand creates the ports command.
func NewPortsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PortsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "ports <file>",
		Short: "Print the canonical port model of a description",
		Long: `Extract and validate the port model of a Yosys JSON description or a
Verilog module header, and print it with its fingerprint. The fingerprint is
the one written into generated artifacts.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPorts(opts, args[0], cmd)
		},
	}
	opts.register(cmd)
	return cmd
}

func runPorts(opts *PortsOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	m, err := opts.extract(path)
	if err != nil {
		return formatter.Fail(err)
	}
	fp, err := m.Fingerprint()
	if err != nil {
		return formatter.Fail(err)
	}
	result := PortsResult{Model: m, TriggerPort: m.Trigger(), Fingerprint: fp}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}
	w := formatter.Writer
	fmt.Fprintf(w, "module:      %s\n", m.Module)
	fmt.Fprintf(w, "role:        %s\n", m.Role)
	fmt.Fprintf(w, "clock:       %s\n", m.Clock)
	fmt.Fprintf(w, "inputs:      %s\n", strings.Join(m.Inputs, " "))
	fmt.Fprintf(w, "outputs:     %s\n", strings.Join(m.Outputs, " "))
	fmt.Fprintf(w, "trigger:     %s\n", result.TriggerPort)
	fmt.Fprintf(w, "fingerprint: sha256:%s\n", fp)
	return nil
}
