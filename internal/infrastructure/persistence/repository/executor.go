// Package repository contains the SQLite implementations of the persistence
// ports. Repositories run against the plain connection unless the context
// carries a transaction, in which case they join it.
package repository

import (
	"context"
	"database/sql"

	"github.com/acadflow/ethics-review/internal/infrastructure/persistence/sqlite"
)

func getExecutor(ctx context.Context, db *sql.DB) sqlite.Executor {
	if tx := sqlite.ExtractTx(ctx); tx != nil {
		return tx
	}
	return db
}
