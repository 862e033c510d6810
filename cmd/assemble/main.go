// Command assemble translates a source file into the little-endian binary
// image spec.md §6 defines, per the "assemble <source> <output>" CLI
// contract.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lookbusy1344/arm2-workbench/parser"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "assemble <source> <output>",
		Short: "Assemble a source file into a binary image",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], args[1])
		},
		SilenceUsage: true,
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "assemble: %v\n", err)
		os.Exit(1)
	}
}

func run(sourcePath, outputPath string) error {
	source, err := os.ReadFile(sourcePath) // #nosec G304 -- user-supplied source path
	if err != nil {
		return fmt.Errorf("reading source: %w", err)
	}

	image, err := parser.Assemble(string(source))
	if err != nil {
		return err
	}

	if err := os.WriteFile(outputPath, image, 0644); err != nil { // #nosec G306 -- binary image is not sensitive
		return fmt.Errorf("writing output: %w", err)
	}

	return nil
}
