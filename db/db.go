package db

import (
	"context"
	_ "embed"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Schema contains the DDL for all tables used by the projector and the
// sampler. Execute it once with -init (or directly in tests).
//
//go:embed schema.sql
var Schema string

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx, so queries can
// run either on a pool or inside a transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}
