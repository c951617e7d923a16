package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/NewTec-GmbH/lobster-rust/internal/analysis"
)

// modulesCmd represents the modules command
var modulesCmd = &cobra.Command{
	Use:   "modules [dir]",
	Short: "Print the module inclusion graph in DOT format",
	Long: `Modules follows the module declarations of the crate like the analysis does
and prints which file includes which as Graphviz DOT graph.

Examples:
  lobster-rust modules ./src | dot -Tsvg > modules.svg
  lobster-rust modules --lib crates/core/src
`,
	Args: cobra.MaximumNArgs(1),
	RunE: runModules,
}

func init() {
	rootCmd.AddCommand(modulesCmd)
	modulesCmd.Flags().BoolVarP(&libFlag, "lib", "l", false, "Parse lib.rs as crate root instead of main.rs")
}

func runModules(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cfgFile)
	if err != nil {
		return err
	}
	applyArgs(cfg, args)
	if cmd.Flags().Changed("lib") {
		cfg.Lib = libFlag
	}

	logger := newLogger(cmd.ErrOrStderr(), verbose)
	root, err := analysis.Traverse(cfg.ToAnalysisOptions(logger, nil))
	if err != nil {
		return err
	}

	g, err := analysis.ModuleGraph(root, cfg.SourceDir)
	if err != nil {
		return fmt.Errorf("failed to build module graph: %w", err)
	}
	return analysis.WriteDOT(cmd.OutOrStdout(), g)
}
