// Package importer merges validated service map documents into persisted
// state with upsert semantics.
package importer

import (
	"context"

	"github.com/ruby4mag/servicemap-go-backend/internal/models"
)

// Store is the persistence surface the reconciler needs. The production
// implementation is db.Store; tests substitute an in-memory fake.
type Store interface {
	// UpsertService inserts or fully overwrites a service by id. The
	// implementation must preserve created_at on existing rows.
	UpsertService(ctx context.Context, svc models.DbService) error

	// FindConnectionID returns the id of the connection with the exact
	// (sourceID, targetID) pair, and whether one exists.
	FindConnectionID(ctx context.Context, sourceID, targetID string) (string, bool, error)

	// UpsertConnection inserts or fully overwrites a connection by id,
	// preserving created_at on existing rows.
	UpsertConnection(ctx context.Context, conn models.DbConnection) error

	// InsertImport appends one record to the import history.
	InsertImport(ctx context.Context, rec models.DbImport) error

	// WithTransaction runs fn atomically: either every write inside fn is
	// applied, or none are. fn receives the transaction-scoped context.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
