package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewRootCommand(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "qrlgen",
		Short: "Name and extract lazy-loadable closures from Qwik-style components",
		Long: `qrlgen discovers $-marked capture boundaries in JavaScript/TypeScript
component files and synthesizes deterministic identifiers for them:
a display name for debugging, an exported symbol name, a generated
module file name, and a stable content hash that keeps chunk names
consistent across rebuilds.

Configuration is read from qrlgen.toml when present; flags override it.
Files matched by .qrlignore rules are skipped.`,
	}

	scanCmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Discover capture boundaries and print their identifiers",
		Args:  cobra.MaximumNArgs(1),
		RunE:  RunScan,
	}
	addBuildFlags(scanCmd)
	scanCmd.Flags().Bool("json", false, "Print machine-readable results")

	extractCmd := &cobra.Command{
		Use:   "extract [path]",
		Short: "Write each capture boundary as an independently loadable module",
		Args:  cobra.MaximumNArgs(1),
		RunE:  RunExtract,
	}
	addBuildFlags(extractCmd)
	extractCmd.Flags().String("out", "", "Output directory for generated modules (default from qrlgen.toml)")
	extractCmd.Flags().Bool("json", false, "Print machine-readable run summary")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("qrlgen %s\n", version)
		},
	}

	rootCmd.AddCommand(
		scanCmd,
		extractCmd,
		versionCmd,
	)

	return rootCmd
}

func addBuildFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("target", "t", "", "Build target: prod|lib|dev|test (default from qrlgen.toml)")
	cmd.Flags().String("scope", "", "Scope qualifier folded into boundary hashes")
}
