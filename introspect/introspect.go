// Package introspect turns catalog row sets into a schema.Graph.
//
// Passes run in a fixed order: tables, columns, keys, foreign keys, checks,
// inheritance. Every pass after the first looks tables up by OID and skips
// rows for tables the table query did not return (system schemas and other
// relations outside its filter). That is policy, not an error.
package introspect

import (
	"context"
	"fmt"

	"github.com/ridoystarlord/pguml/catalog"
	"github.com/ridoystarlord/pguml/logger"
	"github.com/ridoystarlord/pguml/schema"
)

// Build reads every row set from src and assembles the graph. Catalog errors
// and malformed key definitions abort the build.
func Build(ctx context.Context, src catalog.Source, log *logger.Logger) (*schema.Graph, error) {
	if log == nil {
		log = logger.Nop()
	}
	b := &builder{graph: schema.NewGraph(), log: log}

	passes := []struct {
		name string
		run  func(context.Context, catalog.Source) error
	}{
		{catalog.QueryTables, b.tablesPass},
		{catalog.QueryColumns, b.columnsPass},
		{catalog.QueryKeys, b.keysPass},
		{catalog.QueryForeignKeys, b.foreignKeysPass},
		{catalog.QueryChecks, b.checksPass},
		{catalog.QueryInherits, b.inheritsPass},
	}
	for _, p := range passes {
		if err := p.run(ctx, src); err != nil {
			return nil, err
		}
		log.Debugf("%s pass done (%d tables, %d foreign keys, %d skipped rows)",
			p.name, b.graph.Len(), len(b.graph.ForeignKeys), b.graph.Skipped)
	}
	return b.graph, nil
}

type builder struct {
	graph *schema.Graph
	log   *logger.Logger
}

func (b *builder) tablesPass(ctx context.Context, src catalog.Source) error {
	rows, err := src.Tables(ctx)
	if err != nil {
		return err
	}
	b.addTables(rows)
	return nil
}

func (b *builder) columnsPass(ctx context.Context, src catalog.Source) error {
	rows, err := src.Columns(ctx)
	if err != nil {
		return err
	}
	b.addColumns(rows)
	return nil
}

func (b *builder) keysPass(ctx context.Context, src catalog.Source) error {
	rows, err := src.Keys(ctx)
	if err != nil {
		return err
	}
	return b.addKeys(rows)
}

func (b *builder) foreignKeysPass(ctx context.Context, src catalog.Source) error {
	rows, err := src.ForeignKeys(ctx)
	if err != nil {
		return err
	}
	b.addForeignKeys(rows)
	return nil
}

func (b *builder) checksPass(ctx context.Context, src catalog.Source) error {
	rows, err := src.Checks(ctx)
	if err != nil {
		return err
	}
	b.addChecks(rows)
	return nil
}

func (b *builder) inheritsPass(ctx context.Context, src catalog.Source) error {
	rows, err := src.Inherits(ctx)
	if err != nil {
		return err
	}
	b.addInherits(rows)
	return nil
}

func (b *builder) addTables(rows []catalog.TableRow) {
	for _, r := range rows {
		b.graph.AddTable(&schema.Table{
			ID:          schema.OID(r.OID),
			Schema:      r.Schema,
			Name:        r.Name,
			Description: r.Description,
			Kind:        schema.RelationKind(r.Kind),
		})
	}
}

// lookup returns the table for id, counting a skipped row when it is not
// part of the graph.
func (b *builder) lookup(id uint32) (*schema.Table, bool) {
	t, ok := b.graph.Table(schema.OID(id))
	if !ok {
		b.graph.Skipped++
	}
	return t, ok
}

func (b *builder) addColumns(rows []catalog.ColumnRow) {
	for _, r := range rows {
		t, ok := b.lookup(r.OID)
		if !ok {
			continue
		}
		t.Columns = append(t.Columns, schema.Column{
			Name:        r.Name,
			Description: r.Description,
			Type:        r.Type,
			Nullable:    r.Nullable,
			Default:     r.Default,
		})
	}
}

// addKeys classifies each constraint as primary or unique and records its
// columns in the table's key column set. A second primary key row for the
// same table replaces the first.
func (b *builder) addKeys(rows []catalog.KeyRow) error {
	for _, r := range rows {
		t, ok := b.lookup(r.OID)
		if !ok {
			continue
		}

		cols, ok := parseIndexColumns(r.Definition)
		if !ok {
			return &MalformedConstraintDefinitionError{
				Table:      t.OutputName(),
				Constraint: r.Name,
				Definition: r.Definition,
			}
		}

		if r.Type == catalog.ConstraintPrimary {
			t.PrimaryKey = cols
		} else {
			t.UniqueKeys = append(t.UniqueKeys, schema.UniqueKey{Name: r.Name, Columns: cols})
		}

		for _, c := range cols {
			b.graph.AddKeyColumn(t.ID, c)
		}
	}
	return nil
}

// addForeignKeys records one edge per row. Rows whose source table is not in
// the graph are skipped silently; a missing target is a dangling reference
// and is skipped with a warning.
func (b *builder) addForeignKeys(rows []catalog.ForeignKeyRow) {
	for _, r := range rows {
		from, ok := b.lookup(r.OID)
		if !ok {
			continue
		}
		to, ok := b.graph.Table(schema.OID(r.RefOID))
		if !ok {
			b.graph.Skipped++
			b.log.Warnf("foreign key %s: %s.%s references unknown table oid %d, skipping",
				describe(r.Name), from.OutputName(), r.Column, r.RefOID)
			continue
		}

		b.graph.ForeignKeys = append(b.graph.ForeignKeys, schema.ForeignKey{
			Name: r.Name,
			From: schema.Endpoint{Table: from.ID, Column: r.Column},
			To:   schema.Endpoint{Table: to.ID, Column: r.RefColumn},
		})
		b.graph.AddKeyColumn(from.ID, r.Column)
		b.graph.AddKeyColumn(to.ID, r.RefColumn)
		b.graph.MarkRelated(from.ID)
		b.graph.MarkRelated(to.ID)
	}
}

func (b *builder) addChecks(rows []catalog.CheckRow) {
	for _, r := range rows {
		t, ok := b.lookup(r.OID)
		if !ok {
			continue
		}
		t.Checks = append(t.Checks, schema.Check{Name: r.Name, Expression: r.Source})
	}
}

func (b *builder) addInherits(rows []catalog.InheritRow) {
	for _, r := range rows {
		if _, ok := b.lookup(r.ParentOID); !ok {
			continue
		}
		parent, child := schema.OID(r.ParentOID), schema.OID(r.ChildOID)
		b.graph.Inherits = append(b.graph.Inherits, schema.Inheritance{
			Parent:     parent,
			ParentName: schema.QualifiedName(r.ParentSchema, r.ParentTable),
			Child:      child,
			ChildName:  schema.QualifiedName(r.ChildSchema, r.ChildTable),
		})
		b.graph.MarkRelated(parent)
		b.graph.MarkRelated(child)
	}
}

func describe(name string) string {
	if name == "" {
		return "(unnamed)"
	}
	return fmt.Sprintf("%q", name)
}
