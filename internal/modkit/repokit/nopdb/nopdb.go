// Package nopdb is a TxRunner that runs transactions inline and fails raw SQL.
// Services whose repos are bound to in-memory fakes use it in tests
package nopdb

import (
	"context"
	"errors"

	"wildwatch/internal/modkit/repokit"
)

// ErrNoSQL is returned by every raw statement
var ErrNoSQL = errors.New("nopdb: sql not supported")

// DB implements repokit.TxRunner
type DB struct{}

// New returns a DB
func New() DB { return DB{} }

// Exec implements repokit.Queryer
func (DB) Exec(context.Context, string, ...any) (repokit.CommandTag, error) { return nil, ErrNoSQL }

// Query implements repokit.Queryer
func (DB) Query(context.Context, string, ...any) (repokit.Rows, error) { return nil, ErrNoSQL }

// QueryRow implements repokit.Queryer
func (DB) QueryRow(context.Context, string, ...any) repokit.Row { return errRow{} }

// Tx implements repokit.TxRunner
func (d DB) Tx(ctx context.Context, fn func(q repokit.Queryer) error) error { return fn(d) }

// Ping reports ready
func (DB) Ping(context.Context) error { return nil }

type errRow struct{}

func (errRow) Scan(...any) error { return ErrNoSQL }

var _ repokit.TxRunner = DB{}
