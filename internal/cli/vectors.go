package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/mitergen/internal/config"
	"github.com/roach88/mitergen/internal/ports"
	"github.com/roach88/mitergen/internal/stimulus"
)

// VectorsOptions holds flags for the vectors command.
type VectorsOptions struct {
	*RootOptions
	extractFlags
	Seed   string
	Cycles uint32
	Cycle  uint32
}

// VectorsResult is the stimulus a driver applies for a seed.
type VectorsResult struct {
	Seed    uint32            `json:"seed"`
	Inputs  []string          `json:"inputs"`
	Vectors []stimulus.Vector `json:"vectors"`
}

// NewVectorsCommand creates the vectors command.
func NewVectorsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &VectorsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "vectors <file>",
		Short: "Print the input stimulus a generated driver applies",
		Long: `Reproduce the pseudo-random input bits that a driver generated with the
same seed drives into the miter, one line per cycle. Use --cycle to print
only the cycle reported by "[TB] Triggered at cycle N".

Example:
  mitergen vectors build/eq_top.json --seed 0xb15d635f --cycles 20
  mitergen vectors build/eq_top.json --seed 0xb15d635f --cycle 731`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVectors(opts, args[0], cmd)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVar(&opts.Seed, "seed", "", "stimulus seed, decimal or 0x hex (required)")
	cmd.Flags().Uint32Var(&opts.Cycles, "cycles", 10, "number of cycles to print from cycle 0")
	cmd.Flags().Uint32Var(&opts.Cycle, "cycle", 0, "print only this cycle")

	return cmd
}

func runVectors(opts *VectorsOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	seed, err := config.ParseSeed(opts.Seed)
	if err != nil {
		return formatter.Fail(err)
	}
	m, err := opts.extract(path)
	if err != nil {
		return formatter.Fail(err)
	}

	var vectors []stimulus.Vector
	if cmd.Flags().Changed("cycle") {
		vectors = []stimulus.Vector{stimulus.At(m.Inputs, uint32(seed), opts.Cycle)}
	} else {
		if opts.Cycles == 0 {
			return formatter.Fail(ports.NewArgumentError("cycles", "must be greater than zero"))
		}
		vectors = stimulus.Vectors(m.Inputs, uint32(seed), opts.Cycles)
	}

	if formatter.Format == "json" {
		return formatter.Success(VectorsResult{Seed: uint32(seed), Inputs: m.Inputs, Vectors: vectors})
	}
	for _, v := range vectors {
		fmt.Fprintln(formatter.Writer, v.String())
	}
	return nil
}
