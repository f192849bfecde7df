package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/roach88/mitergen/internal/config"
	"github.com/roach88/mitergen/internal/pipeline"
)

// GenerateOptions holds flags shared by generate, miter and testbench.
type GenerateOptions struct {
	*RootOptions
	ConfigFile string
}

// GenerateResult is the payload reported after a successful run.
type GenerateResult struct {
	Module      string   `json:"module"`
	Role        string   `json:"role"`
	Fingerprint string   `json:"fingerprint"`
	Artifacts   []string `json:"artifacts"`
}

var runFlagUsage = map[string]string{
	"out_dir":        "output directory (required)",
	"ports_file":     "port description, relative to --out-dir unless absolute (required)",
	"ports_format":   "port description format (json|header)",
	"module":         "module to read ports from (default: first module)",
	"role":           "port model role (data|trigger)",
	"scope":          "header scan scope (header|module)",
	"gate":           "gate-level module name",
	"golden":         "golden reference module name",
	"top":            "wrapper module name (default eq_top)",
	"miter_file":     "wrapper file name (default <top>.v)",
	"testbench_file": "driver file name (default <top>_tb.cpp)",
	"seed":           "stimulus seed, decimal or 0x hex (required)",
	"cycles":         "number of clock cycles to simulate (required)",
	"trace":          "emit VCD tracing in the driver",
	"layout":         "comparison wire layout (internal|visible)",
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	return newRunCommand(rootOpts, pipeline.TargetAll, &cobra.Command{
		Use:   "generate",
		Short: "Generate the miter wrapper and its testbench",
		Long: `Extract the port model and write both the comparator wrapper and the
Verilator driver. For a trigger-role model (an already-built miter) only the
driver is written. Nothing is written if any step fails.

Example:
  mitergen generate --out-dir build --ports-file eq_top.json \
    --gate gate_top --golden gold_top --seed 0xb15d635f --cycles 1000
  mitergen generate --config run.yaml --seed 42`,
	})
}

// NewMiterCommand creates the miter command.
func NewMiterCommand(rootOpts *RootOptions) *cobra.Command {
	return newRunCommand(rootOpts, pipeline.TargetMiter, &cobra.Command{
		Use:   "miter",
		Short: "Generate only the miter wrapper",
	})
}

// NewTestbenchCommand creates the testbench command.
func NewTestbenchCommand(rootOpts *RootOptions) *cobra.Command {
	return newRunCommand(rootOpts, pipeline.TargetTestbench, &cobra.Command{
		Use:   "testbench",
		Short: "Generate only the Verilator driver",
	})
}

func newRunCommand(rootOpts *RootOptions, target pipeline.Target, cmd *cobra.Command) *cobra.Command {
	opts := &GenerateOptions{RootOptions: rootOpts}

	cmd.Args = cobra.NoArgs
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runGenerate(opts, target, cmd)
	}

	cmd.Flags().StringVarP(&opts.ConfigFile, "config", "c", "", "YAML run file; flags override its values")
	for _, key := range config.Keys {
		name := config.FlagName(key)
		if key == "trace" {
			cmd.Flags().Bool(name, true, runFlagUsage[key])
			continue
		}
		cmd.Flags().String(name, "", runFlagUsage[key])
	}
	return cmd
}

func runGenerate(opts *GenerateOptions, target pipeline.Target, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	cfg, err := loadConfig(opts, cmd)
	if err != nil {
		return formatter.Fail(err)
	}
	formatter.VerboseLog("Reading %s ports from %s", cfg.Format, cfg.PortsFile)

	runner := &pipeline.Runner{}
	res, err := runner.Run(cfg, target)
	if err != nil {
		return formatter.Fail(err)
	}

	result := GenerateResult{
		Module:      res.Model.Module,
		Role:        string(res.Model.Role),
		Fingerprint: res.Fingerprint,
	}
	for _, a := range res.Artifacts {
		result.Artifacts = append(result.Artifacts, a.Path)
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}
	fmt.Fprintf(formatter.Writer, "✓ Generated %d artifact(s) for module %s\n", len(result.Artifacts), result.Module)
	for _, path := range result.Artifacts {
		fmt.Fprintf(formatter.Writer, "  %s\n", path)
	}
	fmt.Fprintf(formatter.Writer, "Port model sha256:%s\n", result.Fingerprint)
	return nil
}

// loadConfig reads the optional run file and overlays the flags the user set.
func loadConfig(opts *GenerateOptions, cmd *cobra.Command) (config.Config, error) {
	var f config.File
	if opts.ConfigFile != "" {
		var err error
		if f, err = config.Load(opts.ConfigFile); err != nil {
			return config.Config{}, &configFileError{path: opts.ConfigFile, err: err}
		}
	}

	known := make(map[string]bool, len(config.Keys))
	for _, key := range config.Keys {
		known[config.FlagName(key)] = true
	}
	set := map[string]string{}
	cmd.Flags().Visit(func(fl *pflag.Flag) {
		if known[fl.Name] {
			set[fl.Name] = fl.Value.String()
		}
	})

	f, err := f.Overlay(set)
	if err != nil {
		return config.Config{}, err
	}
	return config.Resolve(f)
}
