// Package store provides a persistence layer that abstracts database operations,
// automatically handling revisions, timestamps, and event logging.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lherron/lexq/internal/db"
	"github.com/lherron/lexq/internal/domain"
	"github.com/lherron/lexq/internal/events"
	"github.com/lherron/lexq/internal/guid"
)

// Store is the root store that provides access to domain-specific stores.
type Store struct {
	db   *db.DB
	guid guid.Generator

	// Domain-specific stores
	Lexemes     *LexemeStore
	Permissions *PermissionStore
	Watchlist   *WatchlistStore
}

// New creates a new Store wrapping the given database connection.
func New(database *db.DB) *Store {
	s := &Store{db: database, guid: guid.NewGenerator()}
	s.Lexemes = &LexemeStore{store: s}
	s.Permissions = &PermissionStore{store: s}
	s.Watchlist = &WatchlistStore{store: s}
	return s
}

// DB returns the underlying database connection (for read-only queries).
func (s *Store) DB() *db.DB {
	return s.db
}

// withTx executes fn within a transaction. If fn returns nil, the transaction
// is committed; otherwise it is rolled back.
func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx, ew *events.Writer) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	ew := events.NewWriter(s.db.DB)
	if err := fn(tx, ew); err != nil {
		return err
	}

	return tx.Commit()
}

// checkRevision verifies the revision matches if baseRevision > 0, returns ETagMismatchError on mismatch.
func checkRevision(current, baseRevision int64) error {
	if baseRevision > 0 {
		return domain.CheckETag(baseRevision, current)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
