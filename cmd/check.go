package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ridoystarlord/pguml/introspect"
	"github.com/ridoystarlord/pguml/schema"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Build the schema graph and print a summary",
	Long: `Read the catalog, build the schema graph and report what was found,
without rendering a diagram. Useful to see what --only-related and
--only-key-columns will keep, and whether any rows were skipped.

Examples:
  pguml check --dbname shop
  pguml check --snapshot shop.yaml -v
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger()
		cfg, err := resolveConfig(cmd, log)
		if err != nil {
			return err
		}

		ctx := context.Background()
		src, release, err := openSource(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer release()

		graph, err := introspect.Build(ctx, src, log)
		if err != nil {
			return err
		}

		printSummary(os.Stdout, graph)
		return nil
	},
}

func printSummary(w io.Writer, g *schema.Graph) {
	green := color.New(color.FgGreen, color.Bold)
	yellow := color.New(color.FgYellow, color.Bold)
	cyan := color.New(color.FgCyan)

	kinds := make(map[schema.RelationKind]int)
	columns, primary, unique, checks := 0, 0, 0, 0
	for _, t := range g.Tables() {
		kinds[t.Kind]++
		columns += len(t.Columns)
		if len(t.PrimaryKey) > 0 {
			primary++
		}
		unique += len(t.UniqueKeys)
		checks += len(t.Checks)
	}

	names := make([]string, 0, len(kinds))
	for k := range kinds {
		names = append(names, string(k))
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, k := range names {
		parts = append(parts, fmt.Sprintf("%s: %d", k, kinds[schema.RelationKind(k)]))
	}

	fmt.Fprintln(w, "📊 Catalog summary")
	fmt.Fprintln(w, strings.Repeat("=", 40))
	green.Fprintf(w, "  relations:         %d", g.Len())
	if len(parts) > 0 {
		cyan.Fprintf(w, " (%s)", strings.Join(parts, ", "))
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  columns:           %d\n", columns)
	fmt.Fprintf(w, "  primary keys:      %d\n", primary)
	fmt.Fprintf(w, "  unique keys:       %d\n", unique)
	fmt.Fprintf(w, "  check constraints: %d\n", checks)
	fmt.Fprintf(w, "  foreign keys:      %d\n", len(g.ForeignKeys))
	fmt.Fprintf(w, "  inheritance edges: %d\n", len(g.Inherits))
	fmt.Fprintf(w, "  related tables:    %d\n", g.RelatedCount())
	if g.Skipped > 0 {
		yellow.Fprintf(w, "  skipped rows:      %d\n", g.Skipped)
	}
}
