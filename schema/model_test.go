package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQualifiedName(t *testing.T) {
	tests := []struct {
		schemaName string
		tableName  string
		expected   string
	}{
		{"public", "users", "users"},
		{"", "users", "users"},
		{"auth", "users", "auth.users"},
		{"billing", "accounts", "billing.accounts"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, QualifiedName(tt.schemaName, tt.tableName))
	}
}

func TestTableNames(t *testing.T) {
	tbl := &Table{Schema: "auth", Name: "users"}
	assert.Equal(t, "auth.users", tbl.OutputName())
	assert.Equal(t, "auth_users", tbl.NodeID())

	tbl = &Table{Schema: "public", Name: "orders"}
	assert.Equal(t, "orders", tbl.OutputName())
	assert.Equal(t, "orders", tbl.NodeID())
}

func TestIsPrimaryKey(t *testing.T) {
	tbl := &Table{PrimaryKey: []string{"tenant_id", "id"}}
	assert.True(t, tbl.IsPrimaryKey("id"))
	assert.True(t, tbl.IsPrimaryKey("tenant_id"))
	assert.False(t, tbl.IsPrimaryKey("name"))

	assert.False(t, (&Table{}).IsPrimaryKey("id"))
}

func TestGraphKeepsInsertionOrder(t *testing.T) {
	g := NewGraph()
	g.AddTable(&Table{ID: 30, Schema: "public", Name: "b"})
	g.AddTable(&Table{ID: 10, Schema: "public", Name: "a"})
	g.AddTable(&Table{ID: 20, Schema: "sales", Name: "c"})

	var ids []OID
	for _, tbl := range g.Tables() {
		ids = append(ids, tbl.ID)
	}
	assert.Equal(t, []OID{30, 10, 20}, ids)
	assert.Equal(t, 3, g.Len())
}

func TestGraphReplaceKeepsPosition(t *testing.T) {
	g := NewGraph()
	g.AddTable(&Table{ID: 1, Name: "first"})
	g.AddTable(&Table{ID: 2, Name: "second"})
	g.AddKeyColumn(1, "id")
	g.AddTable(&Table{ID: 1, Name: "renamed"})

	tables := g.Tables()
	require.Len(t, tables, 2)
	assert.Equal(t, "renamed", tables[0].Name)
	assert.True(t, g.IsKeyColumn(1, "id"))
}

func TestGraphKeyColumns(t *testing.T) {
	g := NewGraph()
	g.AddTable(&Table{ID: 1, Name: "users"})

	g.AddKeyColumn(1, "id")
	g.AddKeyColumn(1, "email")
	g.AddKeyColumn(1, "id")
	g.AddKeyColumn(99, "ghost")

	assert.Equal(t, []string{"email", "id"}, g.KeyColumns(1))
	assert.True(t, g.IsKeyColumn(1, "email"))
	assert.False(t, g.IsKeyColumn(1, "name"))
	assert.False(t, g.IsKeyColumn(99, "ghost"))
	assert.Empty(t, g.KeyColumns(99))
}

func TestGraphRelated(t *testing.T) {
	g := NewGraph()
	g.MarkRelated(1)
	g.MarkRelated(2)
	g.MarkRelated(1)

	assert.True(t, g.IsRelated(1))
	assert.False(t, g.IsRelated(3))
	assert.Equal(t, 2, g.RelatedCount())
}
