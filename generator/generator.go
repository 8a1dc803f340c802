// Package generator renders a schema.Graph as a Graphviz digraph or as a
// self-contained hyperlinked HTML document.
//
// Basic usage:
//
//	out, err := generator.Render(graph, generator.FormatDot, generator.DefaultOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.Stdout.Write(out)
//
// Both formats apply the same visibility rules: OnlyRelated hides tables
// without foreign key or inheritance edges, OnlyKeyColumns hides columns
// outside the table's key column set, and ShowConstraints adds check
// constraints. Output is deterministic for a given graph and options.
package generator

import (
	"fmt"

	"github.com/ridoystarlord/pguml/schema"
)

func Render(g *schema.Graph, format Format, opts Options) ([]byte, error) {
	s, err := RenderString(g, format, opts)
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

func RenderString(g *schema.Graph, format Format, opts Options) (string, error) {
	v := newView(g, opts)
	switch format {
	case FormatDot:
		return renderDot(v), nil
	case FormatHTML:
		out, err := renderHTML(v)
		if err != nil {
			return "", fmt.Errorf("rendering html: %w", err)
		}
		return out, nil
	}
	return "", fmt.Errorf("unsupported format %q", format)
}
