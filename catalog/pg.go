package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// Querier is satisfied by *pgx.Conn, pgx.Tx and *pgxpool.Pool.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PGSource runs the catalog queries against a live database.
type PGSource struct {
	db Querier
}

func NewPGSource(db Querier) *PGSource {
	return &PGSource{db: db}
}

func (s *PGSource) Tables(ctx context.Context) ([]TableRow, error) {
	return collect(ctx, s.db, QueryTables, tablesQuery, func(rows pgx.Rows, r *TableRow) error {
		var desc pgtype.Text
		if err := rows.Scan(&r.OID, &r.Schema, &r.Name, &desc, &r.Kind); err != nil {
			return err
		}
		r.Description = desc.String
		return nil
	})
}

func (s *PGSource) Columns(ctx context.Context) ([]ColumnRow, error) {
	return collect(ctx, s.db, QueryColumns, columnsQuery, func(rows pgx.Rows, r *ColumnRow) error {
		var desc, def pgtype.Text
		if err := rows.Scan(&r.OID, &r.Schema, &r.Table, &r.Name, &desc, &r.Type, &r.Nullable, &def); err != nil {
			return err
		}
		r.Description = desc.String
		if def.Valid {
			r.Default = &def.String
		}
		return nil
	})
}

func (s *PGSource) Keys(ctx context.Context) ([]KeyRow, error) {
	return collect(ctx, s.db, QueryKeys, keysQuery, func(rows pgx.Rows, r *KeyRow) error {
		return rows.Scan(&r.OID, &r.Name, &r.Definition, &r.Type)
	})
}

func (s *PGSource) ForeignKeys(ctx context.Context) ([]ForeignKeyRow, error) {
	return collect(ctx, s.db, QueryForeignKeys, foreignKeysQuery, func(rows pgx.Rows, r *ForeignKeyRow) error {
		return rows.Scan(&r.OID, &r.Name, &r.Column, &r.RefColumn, &r.RefOID)
	})
}

func (s *PGSource) Checks(ctx context.Context) ([]CheckRow, error) {
	return collect(ctx, s.db, QueryChecks, checksQuery, func(rows pgx.Rows, r *CheckRow) error {
		return rows.Scan(&r.OID, &r.Name, &r.Source)
	})
}

func (s *PGSource) Inherits(ctx context.Context) ([]InheritRow, error) {
	return collect(ctx, s.db, QueryInherits, inheritsQuery, func(rows pgx.Rows, r *InheritRow) error {
		return rows.Scan(&r.ParentOID, &r.ParentSchema, &r.ParentTable, &r.ChildOID, &r.ChildSchema, &r.ChildTable)
	})
}

func collect[T any](ctx context.Context, db Querier, name, query string, scan func(pgx.Rows, *T) error) ([]T, error) {
	rows, err := db.Query(ctx, query)
	if err != nil {
		return nil, &QueryError{Query: name, Err: err}
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		var r T
		if err := scan(rows, &r); err != nil {
			return nil, &QueryError{Query: name, Err: fmt.Errorf("scanning row: %w", err)}
		}
		out = append(out, r)
	}

	if err := rows.Err(); err != nil {
		return nil, &QueryError{Query: name, Err: fmt.Errorf("iterating rows: %w", err)}
	}
	return out, nil
}
