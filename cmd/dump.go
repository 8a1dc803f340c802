package cmd

import (
	"bytes"
	"context"

	"github.com/spf13/cobra"

	"github.com/ridoystarlord/pguml/catalog"
)

var dumpOutput string

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Save the catalog rows to a YAML snapshot",
	Long: `Run the catalog queries once and save the raw rows as YAML. The snapshot
can be rendered later without a database using --snapshot.

Examples:
  pguml dump --dbname shop -o shop.yaml
  pguml --snapshot shop.yaml --format html > shop.html
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

		snap, err := catalog.Capture(ctx, src)
		if err != nil {
			return err
		}
		log.Infof("captured %d tables, %d columns, %d keys, %d foreign keys, %d checks, %d inherits",
			len(snap.TableRows), len(snap.ColumnRows), len(snap.KeyRows),
			len(snap.ForeignKeyRows), len(snap.CheckRows), len(snap.InheritRows))

		var buf bytes.Buffer
		if err := snap.Write(&buf); err != nil {
			return err
		}
		return writeOutput(dumpOutput, buf.Bytes(), log)
	},
}

func init() {
	dumpCmd.Flags().StringVarP(&dumpOutput, "output", "o", "", "Snapshot file (default: stdout)")
}
