// Package repositories provides PostgreSQL data access for teams, daily
// standings and season outcomes.
package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the subset of pgx execution methods the repositories need.
// Satisfied by *pgxpool.Pool and pgx.Tx, so ingestion can route all writes
// for one date through a single transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}
