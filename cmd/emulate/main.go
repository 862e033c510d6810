// Command emulate runs a binary image produced by assemble and prints the
// terminal register dump, per the "emulate <binary>" CLI contract of
// spec.md §6.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lookbusy1344/arm2-workbench/config"
	"github.com/lookbusy1344/arm2-workbench/vm"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "emulate <binary>",
		Short: "Run a binary image on the simulated machine",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0])
		},
		SilenceUsage: true,
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "emulate: %v\n", err)
		os.Exit(1)
	}
}

func run(binaryPath string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	image, err := os.ReadFile(binaryPath) // #nosec G304 -- user-supplied binary path
	if err != nil {
		return fmt.Errorf("reading binary: %w", err)
	}

	m := vm.NewVM()
	m.MaxCycles = cfg.Execution.MaxCycles
	m.ReportGPIO = cfg.Display.ReportGPIO

	if err := m.LoadImage(image); err != nil {
		return fmt.Errorf("loading image: %w", err)
	}

	if err := m.Run(); err != nil {
		return err
	}

	if err := m.DumpRegistersFormat(os.Stdout, cfg.Display.NumberFormat); err != nil {
		return err
	}
	return m.DumpMemory(os.Stdout)
}
