package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ridoystarlord/pguml/config"
)

// ConnectionError means no catalog session could be established.
type ConnectionError struct {
	Target string
	Err    error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connect to postgres %q failed: %v", e.Target, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// Connect opens a single session and pings it. The caller owns the
// connection and must Close it.
func Connect(ctx context.Context, c config.Connection) (*pgx.Conn, error) {
	target := c.Redacted()

	pgcfg, err := pgx.ParseConfig(c.ConnString())
	if err != nil {
		return nil, &ConnectionError{Target: target, Err: fmt.Errorf("parsing connection string: %w", err)}
	}

	conn, err := pgx.ConnectConfig(ctx, pgcfg)
	if err != nil {
		return nil, &ConnectionError{Target: target, Err: err}
	}

	if err := conn.Ping(ctx); err != nil {
		conn.Close(ctx)
		return nil, &ConnectionError{Target: target, Err: fmt.Errorf("ping: %w", err)}
	}
	return conn, nil
}

// Ping connects, pings and disconnects, returning the server version.
func Ping(ctx context.Context, c config.Connection) (string, error) {
	conn, err := Connect(ctx, c)
	if err != nil {
		return "", err
	}
	defer conn.Close(ctx)

	var version string
	if err := conn.QueryRow(ctx, "SHOW server_version").Scan(&version); err != nil {
		return "", fmt.Errorf("reading server version: %w", err)
	}
	return version, nil
}
