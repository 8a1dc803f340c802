package introspect

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ridoystarlord/pguml/catalog"
	"github.com/ridoystarlord/pguml/logger"
	"github.com/ridoystarlord/pguml/schema"
)

const (
	customersOID = 100
	ordersOID    = 101
	auditLogOID  = 102
	pagesOID     = 200
	hiddenOID    = 999
)

func strPtr(s string) *string { return &s }

func shopSnapshot() *catalog.Snapshot {
	return &catalog.Snapshot{
		TableRows: []catalog.TableRow{
			{OID: auditLogOID, Schema: "public", Name: "audit_log", Kind: "table"},
			{OID: customersOID, Schema: "public", Name: "customers", Kind: "table", Description: "people who buy"},
			{OID: ordersOID, Schema: "public", Name: "orders", Kind: "table"},
			{OID: pagesOID, Schema: "cms", Name: "pages", Kind: "table"},
		},
		ColumnRows: []catalog.ColumnRow{
			{OID: auditLogOID, Name: "id", Type: "int8"},
			{OID: auditLogOID, Name: "payload", Type: "jsonb", Nullable: true},
			{OID: customersOID, Name: "id", Type: "int4"},
			{OID: customersOID, Name: "email", Type: "varchar(255)"},
			{OID: customersOID, Name: "nickname", Type: "text", Nullable: true, Description: "shown publicly"},
			{OID: ordersOID, Name: "id", Type: "int4", Default: strPtr("nextval('orders_id_seq'::regclass)")},
			{OID: ordersOID, Name: "customer_id", Type: "int4"},
			{OID: ordersOID, Name: "note", Type: "text", Nullable: true},
			{OID: pagesOID, Name: "id", Type: "int4"},
			{OID: pagesOID, Name: "tenant_id", Type: "int4"},
			{OID: pagesOID, Name: "slug", Type: "text"},
			{OID: hiddenOID, Name: "secret", Type: "text"},
		},
		KeyRows: []catalog.KeyRow{
			{OID: customersOID, Name: "customers_pkey", Type: "p",
				Definition: "CREATE UNIQUE INDEX customers_pkey ON public.customers USING btree (id)"},
			{OID: customersOID, Name: "customers_email_key", Type: "u",
				Definition: "CREATE UNIQUE INDEX customers_email_key ON public.customers USING btree (email)"},
			{OID: ordersOID, Name: "orders_pkey", Type: "p",
				Definition: "CREATE UNIQUE INDEX orders_pkey ON public.orders USING btree (id)"},
			{OID: pagesOID, Name: "pages_pkey", Type: "p",
				Definition: "CREATE UNIQUE INDEX pages_pkey ON cms.pages USING btree (id)"},
			{OID: pagesOID, Name: "pages_tenant_id_slug_key", Type: "u",
				Definition: "CREATE UNIQUE INDEX pages_tenant_id_slug_key ON cms.pages USING btree (tenant_id, slug)"},
			{OID: hiddenOID, Name: "bad", Type: "p", Definition: "not parsed because the table is unknown"},
		},
		ForeignKeyRows: []catalog.ForeignKeyRow{
			{OID: ordersOID, Name: "orders_customer_id_fkey", Column: "customer_id", RefOID: customersOID, RefColumn: "id"},
			{OID: hiddenOID, Name: "hidden_fkey", Column: "x", RefOID: customersOID, RefColumn: "id"},
		},
		CheckRows: []catalog.CheckRow{
			{OID: ordersOID, Name: "orders_note_check", Source: "(length(note) < 500)"},
			{OID: hiddenOID, Name: "ignored", Source: "true"},
		},
	}
}

func TestBuildTables(t *testing.T) {
	g, err := Build(context.Background(), shopSnapshot(), logger.Nop())
	require.NoError(t, err)

	tables := g.Tables()
	require.Len(t, tables, 4)
	assert.Equal(t, "audit_log", tables[0].OutputName())
	assert.Equal(t, "cms.pages", tables[3].OutputName())
	assert.Equal(t, schema.KindTable, tables[1].Kind)
	assert.Equal(t, "people who buy", tables[1].Description)
}

func TestBuildColumnsSkipUnknownTables(t *testing.T) {
	g, err := Build(context.Background(), shopSnapshot(), logger.Nop())
	require.NoError(t, err)

	customers, ok := g.Table(customersOID)
	require.True(t, ok)
	require.Len(t, customers.Columns, 3)
	assert.Equal(t, "id", customers.Columns[0].Name)
	assert.Equal(t, "varchar(255)", customers.Columns[1].Type)
	assert.Equal(t, "shown publicly", customers.Columns[2].Description)
	assert.True(t, customers.Columns[2].Nullable)

	orders, _ := g.Table(ordersOID)
	require.NotNil(t, orders.Columns[0].Default)
	assert.Equal(t, "nextval('orders_id_seq'::regclass)", *orders.Columns[0].Default)

	assert.False(t, g.HasTable(hiddenOID))
	// one column, one key, one foreign key and one check row reference hiddenOID
	assert.Equal(t, 4, g.Skipped)
}

func TestBuildKeys(t *testing.T) {
	g, err := Build(context.Background(), shopSnapshot(), logger.Nop())
	require.NoError(t, err)

	customers, _ := g.Table(customersOID)
	assert.Equal(t, []string{"id"}, customers.PrimaryKey)
	require.Len(t, customers.UniqueKeys, 1)
	assert.Equal(t, "customers_email_key", customers.UniqueKeys[0].Name)

	pages, _ := g.Table(pagesOID)
	require.Len(t, pages.UniqueKeys, 1)
	assert.Equal(t, []string{"tenant_id", "slug"}, pages.UniqueKeys[0].Columns)
	assert.Equal(t, []string{"id", "slug", "tenant_id"}, g.KeyColumns(pagesOID))

	audit, _ := g.Table(auditLogOID)
	assert.Nil(t, audit.PrimaryKey)
	assert.Empty(t, g.KeyColumns(auditLogOID))
}

func TestBuildLastPrimaryKeyWins(t *testing.T) {
	snap := &catalog.Snapshot{
		TableRows: []catalog.TableRow{{OID: 1, Schema: "public", Name: "t", Kind: "table"}},
		KeyRows: []catalog.KeyRow{
			{OID: 1, Name: "a", Type: "p", Definition: "CREATE UNIQUE INDEX a ON public.t USING btree (x)"},
			{OID: 1, Name: "b", Type: "p", Definition: "CREATE UNIQUE INDEX b ON public.t USING btree (y, z)"},
		},
	}

	g, err := Build(context.Background(), snap, nil)
	require.NoError(t, err)

	tbl, _ := g.Table(1)
	assert.Equal(t, []string{"y", "z"}, tbl.PrimaryKey)
	assert.Equal(t, []string{"x", "y", "z"}, g.KeyColumns(1))
}

func TestBuildForeignKeys(t *testing.T) {
	g, err := Build(context.Background(), shopSnapshot(), logger.Nop())
	require.NoError(t, err)

	require.Len(t, g.ForeignKeys, 1)
	fk := g.ForeignKeys[0]
	assert.Equal(t, "orders_customer_id_fkey", fk.Name)
	assert.Equal(t, schema.Endpoint{Table: ordersOID, Column: "customer_id"}, fk.From)
	assert.Equal(t, schema.Endpoint{Table: customersOID, Column: "id"}, fk.To)

	for _, fk := range g.ForeignKeys {
		assert.True(t, g.IsRelated(fk.From.Table))
		assert.True(t, g.IsRelated(fk.To.Table))
	}
	assert.True(t, g.IsKeyColumn(ordersOID, "customer_id"))
	assert.False(t, g.IsRelated(auditLogOID))
	assert.False(t, g.IsRelated(pagesOID))
}

func TestBuildDanglingForeignKeyTargetIsSkipped(t *testing.T) {
	snap := &catalog.Snapshot{
		TableRows: []catalog.TableRow{{OID: 1, Schema: "public", Name: "orders", Kind: "table"}},
		ForeignKeyRows: []catalog.ForeignKeyRow{
			{OID: 1, Name: "orders_x_fkey", Column: "x_id", RefOID: 77, RefColumn: "id"},
		},
	}

	var buf bytes.Buffer
	g, err := Build(context.Background(), snap, logger.New(&buf, false))
	require.NoError(t, err)

	assert.Empty(t, g.ForeignKeys)
	assert.False(t, g.IsRelated(1))
	assert.False(t, g.IsKeyColumn(1, "x_id"))
	assert.Equal(t, 1, g.Skipped)
	assert.Contains(t, buf.String(), "orders_x_fkey")
	assert.Contains(t, buf.String(), "unknown table oid 77")
}

func TestBuildChecks(t *testing.T) {
	g, err := Build(context.Background(), shopSnapshot(), logger.Nop())
	require.NoError(t, err)

	orders, _ := g.Table(ordersOID)
	require.Len(t, orders.Checks, 1)
	assert.Equal(t, schema.Check{Name: "orders_note_check", Expression: "(length(note) < 500)"}, orders.Checks[0])
}

func TestBuildInherits(t *testing.T) {
	snap := &catalog.Snapshot{
		TableRows: []catalog.TableRow{
			{OID: 1, Schema: "public", Name: "measurements", Kind: "table"},
			{OID: 2, Schema: "archive", Name: "measurements_2020", Kind: "table"},
		},
		InheritRows: []catalog.InheritRow{
			{ParentOID: 1, ParentSchema: "public", ParentTable: "measurements",
				ChildOID: 2, ChildSchema: "archive", ChildTable: "measurements_2020"},
			{ParentOID: 50, ParentSchema: "hidden", ParentTable: "base",
				ChildOID: 1, ChildSchema: "public", ChildTable: "measurements"},
		},
	}

	g, err := Build(context.Background(), snap, nil)
	require.NoError(t, err)

	require.Len(t, g.Inherits, 1)
	assert.Equal(t, schema.Inheritance{
		Parent: 1, ParentName: "measurements",
		Child: 2, ChildName: "archive.measurements_2020",
	}, g.Inherits[0])
	assert.True(t, g.IsRelated(1))
	assert.True(t, g.IsRelated(2))
	assert.False(t, g.IsRelated(50))
	assert.Equal(t, 1, g.Skipped)
}

func TestBuildMalformedKeyDefinition(t *testing.T) {
	snap := &catalog.Snapshot{
		TableRows: []catalog.TableRow{{OID: 1, Schema: "sales", Name: "orders", Kind: "table"}},
		KeyRows: []catalog.KeyRow{
			{OID: 1, Name: "orders_pkey", Type: "p", Definition: "CREATE UNIQUE INDEX orders_pkey ON sales.orders"},
		},
	}

	g, err := Build(context.Background(), snap, nil)
	require.Error(t, err)
	assert.Nil(t, g)

	var malformed *MalformedConstraintDefinitionError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, "sales.orders", malformed.Table)
	assert.Equal(t, "orders_pkey", malformed.Constraint)
	assert.Equal(t, "CREATE UNIQUE INDEX orders_pkey ON sales.orders", malformed.Definition)
}

type failingSource struct {
	*catalog.Snapshot
	failOn string
}

func (f failingSource) Checks(ctx context.Context) ([]catalog.CheckRow, error) {
	if f.failOn == catalog.QueryChecks {
		return nil, &catalog.QueryError{Query: catalog.QueryChecks, Err: errors.New("permission denied")}
	}
	return f.Snapshot.Checks(ctx)
}

func TestBuildPropagatesQueryError(t *testing.T) {
	src := failingSource{Snapshot: shopSnapshot(), failOn: catalog.QueryChecks}

	_, err := Build(context.Background(), src, nil)
	require.Error(t, err)

	var qerr *catalog.QueryError
	require.True(t, errors.As(err, &qerr))
	assert.Equal(t, catalog.QueryChecks, qerr.Query)
	assert.Contains(t, err.Error(), "permission denied")
}
