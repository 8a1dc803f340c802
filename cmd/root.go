package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ridoystarlord/pguml/logger"
)

var rootCmd = &cobra.Command{
	Use:   "pguml",
	Short: "Draw PostgreSQL schema diagrams from the system catalog",
	Long: `pguml reads tables, columns, keys, foreign keys, check constraints and
inheritance from a PostgreSQL catalog and prints a Graphviz diagram or a
hyperlinked HTML document to stdout.

Examples:

  pguml --dbname shop --user app > shop.dot && dot -Tsvg shop.dot > shop.svg
  pguml --format html --only-related > shop.html
  pguml dump -o shop.yaml && pguml --snapshot shop.yaml --only-key-columns
`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.NoArgs,
	RunE:          runRender,
}

// Execute runs the CLI
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.New(os.Stderr, false).Errorf("%v", err)
		os.Exit(1)
	}
}

// Register subcommands
func init() {
	registerConnectionFlags(rootCmd)
	registerRenderFlags(rootCmd)

	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(initCmd)
}
