// Package repokit provides common types and helpers for repository implementations
package repokit

import (
	"context"
	"time"

	perr "wildwatch/internal/platform/errors"
	"wildwatch/internal/platform/store"
)

// Queryer is the minimal read and write surface for SQL repos
type Queryer = store.RowQuerier

// TxRunner can execute a function inside a transaction
type TxRunner = store.TxRunner

type (
	// Rows are the result set of a query
	Rows = store.Rows

	// Row is a single row result from a query
	Row = store.Row

	// CommandTag is the result of a command that modifies data
	CommandTag = store.CommandTag
)

// txAttempts bounds WithTx when Postgres reports serialization failures or deadlocks
const txAttempts = 3

// WithTx runs fn inside a transaction, rerunning the whole transaction on retryable errors.
// fn must not have side effects outside q
func WithTx(ctx context.Context, tx TxRunner, fn func(q Queryer) error) error {
	backoff := 20 * time.Millisecond
	var err error
	for attempt := 1; ; attempt++ {
		err = tx.Tx(ctx, fn)
		if err == nil || attempt == txAttempts || !perr.IsRetryable(err) {
			return err
		}
		select {
		case <-ctx.Done():
			return err
		case <-time.After(backoff):
		}
		backoff *= 2
	}
}
