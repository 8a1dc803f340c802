package schema

import (
	"fmt"
	"sort"
	"strings"
)

// DefaultSchema is left off output names.
const DefaultSchema = "public"

// OID is the catalog identifier of a relation.
type OID uint32

type RelationKind string

const (
	KindTable            RelationKind = "table"
	KindView             RelationKind = "view"
	KindMaterializedView RelationKind = "materialized view"
	KindForeignTable     RelationKind = "foreign table"
)

type Table struct {
	ID          OID
	Schema      string
	Name        string
	Description string
	Kind        RelationKind
	Columns     []Column
	Checks      []Check
	PrimaryKey  []string // nil when the table has no primary key
	UniqueKeys  []UniqueKey
}

type Column struct {
	Name        string
	Description string
	Type        string // udt name plus optional length, e.g. varchar(255)
	Nullable    bool
	Default     *string
}

type UniqueKey struct {
	Name    string
	Columns []string
}

type Check struct {
	Name       string
	Expression string
}

// Endpoint is one side of a foreign key edge.
type Endpoint struct {
	Table  OID
	Column string
}

// ForeignKey is a single-column reference. For composite constraints only
// the first key pair is recorded.
type ForeignKey struct {
	Name string
	From Endpoint
	To   Endpoint
}

// Inheritance links a parent table to one of its children. Output names are
// carried so renderers need not look the tables up again.
type Inheritance struct {
	Parent     OID
	ParentName string
	Child      OID
	ChildName  string
}

// QualifiedName returns schema.name, or just name for the default schema.
func QualifiedName(schemaName, name string) string {
	if schemaName != "" && schemaName != DefaultSchema {
		return fmt.Sprintf("%s.%s", schemaName, name)
	}
	return name
}

// NodeID turns an output name into an identifier usable as a graph node or
// document anchor.
func NodeID(outputName string) string {
	return strings.ReplaceAll(outputName, ".", "_")
}

func (t *Table) OutputName() string {
	return QualifiedName(t.Schema, t.Name)
}

func (t *Table) NodeID() string {
	return NodeID(t.OutputName())
}

// IsPrimaryKey reports whether column is part of the table's primary key.
func (t *Table) IsPrimaryKey(column string) bool {
	for _, c := range t.PrimaryKey {
		if c == column {
			return true
		}
	}
	return false
}

// Graph is the relational model built from the catalog. Tables keep the
// order in which they were added.
type Graph struct {
	ForeignKeys []ForeignKey
	Inherits    []Inheritance
	// Skipped counts rows dropped because they referenced tables
	// outside the model.
	Skipped int

	order      []OID
	tables     map[OID]*Table
	keyColumns map[OID]map[string]struct{}
	related    map[OID]struct{}
}

func NewGraph() *Graph {
	return &Graph{
		tables:     make(map[OID]*Table),
		keyColumns: make(map[OID]map[string]struct{}),
		related:    make(map[OID]struct{}),
	}
}

// AddTable registers t. Adding an ID twice replaces the table but keeps
// its original position and key columns.
func (g *Graph) AddTable(t *Table) {
	if _, ok := g.tables[t.ID]; !ok {
		g.order = append(g.order, t.ID)
		g.keyColumns[t.ID] = make(map[string]struct{})
	}
	g.tables[t.ID] = t
}

func (g *Graph) Table(id OID) (*Table, bool) {
	t, ok := g.tables[id]
	return t, ok
}

func (g *Graph) HasTable(id OID) bool {
	_, ok := g.tables[id]
	return ok
}

// Tables returns the tables in insertion order.
func (g *Graph) Tables() []*Table {
	out := make([]*Table, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.tables[id])
	}
	return out
}

func (g *Graph) Len() int {
	return len(g.order)
}

// AddKeyColumn records column as participating in a key of table id.
// Unknown tables are ignored.
func (g *Graph) AddKeyColumn(id OID, column string) {
	set, ok := g.keyColumns[id]
	if !ok {
		return
	}
	set[column] = struct{}{}
}

func (g *Graph) IsKeyColumn(id OID, column string) bool {
	_, ok := g.keyColumns[id][column]
	return ok
}

// KeyColumns returns the key column set of table id, sorted by name.
func (g *Graph) KeyColumns(id OID) []string {
	set := g.keyColumns[id]
	out := make([]string, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

func (g *Graph) MarkRelated(id OID) {
	g.related[id] = struct{}{}
}

func (g *Graph) IsRelated(id OID) bool {
	_, ok := g.related[id]
	return ok
}

func (g *Graph) RelatedCount() int {
	return len(g.related)
}
