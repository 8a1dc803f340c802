package generator

import (
	"strings"

	"github.com/ridoystarlord/pguml/schema"
)

// Column markers.
const (
	markPrimaryKey = "#"
	markNotNull    = "*"
)

// view is the filtered projection of a graph shared by every renderer, so
// visibility rules are decided in exactly one place.
type view struct {
	RankDir         RankDir
	ShowConstraints bool
	Tables          []tableView
	Schemas         []schemaGroup
	Edges           []edge
	Inherits        []edge
}

type tableView struct {
	*schema.Table
	Node    string
	Columns []columnView
	Uniques []string // rendered Unique(...) summaries
}

type columnView struct {
	schema.Column
	Marker string
	Anchor string // node.column
	Target string // anchor of the referenced column, empty if none
}

type schemaGroup struct {
	Name   string
	Tables []tableView
}

type edge struct {
	From, FromPort string
	To, ToPort     string
}

func newView(g *schema.Graph, opts Options) *view {
	if opts.RankDir == "" {
		opts.RankDir = LeftToRight
	}
	v := &view{RankDir: opts.RankDir, ShowConstraints: opts.ShowConstraints}

	targets := make(map[string]string)
	for _, fk := range g.ForeignKeys {
		from, ok := g.Table(fk.From.Table)
		if !ok {
			continue
		}
		to, ok := g.Table(fk.To.Table)
		if !ok {
			continue
		}
		e := edge{From: from.NodeID(), FromPort: fk.From.Column, To: to.NodeID(), ToPort: fk.To.Column}
		v.Edges = append(v.Edges, e)

		src := anchor(e.From, e.FromPort)
		if _, seen := targets[src]; !seen {
			targets[src] = anchor(e.To, e.ToPort)
		}
	}
	for _, ih := range g.Inherits {
		v.Inherits = append(v.Inherits, edge{From: schema.NodeID(ih.ParentName), To: schema.NodeID(ih.ChildName)})
	}

	for _, t := range g.Tables() {
		if opts.OnlyRelated && !g.IsRelated(t.ID) {
			continue
		}
		tv := tableView{Table: t, Node: t.NodeID()}
		for _, c := range t.Columns {
			if opts.OnlyKeyColumns && !g.IsKeyColumn(t.ID, c.Name) {
				continue
			}
			a := anchor(tv.Node, c.Name)
			tv.Columns = append(tv.Columns, columnView{
				Column: c,
				Marker: marker(t, c),
				Anchor: a,
				Target: targets[a],
			})
		}
		for _, uk := range t.UniqueKeys {
			tv.Uniques = append(tv.Uniques, "Unique("+strings.Join(uk.Columns, ", ")+")")
		}
		v.Tables = append(v.Tables, tv)

		if n := len(v.Schemas); n == 0 || v.Schemas[n-1].Name != t.Schema {
			v.Schemas = append(v.Schemas, schemaGroup{Name: t.Schema})
		}
		last := &v.Schemas[len(v.Schemas)-1]
		last.Tables = append(last.Tables, tv)
	}
	return v
}

func marker(t *schema.Table, c schema.Column) string {
	switch {
	case t.IsPrimaryKey(c.Name):
		return markPrimaryKey
	case !c.Nullable:
		return markNotNull
	}
	return ""
}

// anchor is the HTML id of a column. Node IDs never contain a dot.
func anchor(node, column string) string {
	return node + "." + column
}
