// Package catalog reads PostgreSQL catalog metadata, either from a live
// session or from a YAML snapshot of the same rows.
package catalog

import (
	"context"
	"fmt"
)

// Source yields the six catalog row sets. Rows come back in query order.
type Source interface {
	Tables(ctx context.Context) ([]TableRow, error)
	Columns(ctx context.Context) ([]ColumnRow, error)
	Keys(ctx context.Context) ([]KeyRow, error)
	ForeignKeys(ctx context.Context) ([]ForeignKeyRow, error)
	Checks(ctx context.Context) ([]CheckRow, error)
	Inherits(ctx context.Context) ([]InheritRow, error)
}

// QueryError reports which catalog query failed.
type QueryError struct {
	Query string
	Err   error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("catalog query %q failed: %v", e.Query, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}
