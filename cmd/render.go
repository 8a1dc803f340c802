package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/ridoystarlord/pguml/generator"
	"github.com/ridoystarlord/pguml/introspect"
)

func runRender(cmd *cobra.Command, args []string) error {
	log := newLogger()
	cfg, err := resolveConfig(cmd, log)
	if err != nil {
		return err
	}

	format, err := generator.ParseFormat(cfg.Render.Format)
	if err != nil {
		return err
	}
	rankDir, err := generator.ParseRankDir(cfg.Render.RankDir)
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
	log.Debugf("built graph: %d tables, %d foreign keys, %d inheritance edges",
		graph.Len(), len(graph.ForeignKeys), len(graph.Inherits))

	out, err := generator.Render(graph, format, generator.Options{
		RankDir:         rankDir,
		OnlyKeyColumns:  cfg.Render.OnlyKeyColumns,
		OnlyRelated:     cfg.Render.OnlyRelated,
		ShowConstraints: cfg.Render.ShowConstraint,
	})
	if err != nil {
		return err
	}
	return writeOutput(cfg.Render.Output, out, log)
}
