// Command mitergen generates an equivalence miter and its Verilator driver.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/roach88/mitergen/internal/cli"
)

func main() {
	err := cli.NewRootCommand().Execute()
	if err != nil {
		// Commands report their own diagnostics; only cobra's own errors
		// (unknown flag, wrong arity) still need printing.
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
	}
	os.Exit(cli.GetExitCode(err))
}
