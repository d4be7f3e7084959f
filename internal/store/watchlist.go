package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lherron/lexq/internal/events"
)

// WatchlistStore handles which actors watch which lexemes.
type WatchlistStore struct {
	store *Store
}

// Watch adds a lexeme to an actor's watchlist. Watching twice is a no-op.
func (ws *WatchlistStore) Watch(ctx context.Context, actor, lexemeID string) error {
	_, err := ws.store.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO watchlist (actor_slug, lexeme_id) VALUES (?, ?)
	`, actor, lexemeID)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", lexemeID, err)
	}
	return nil
}

// Watchers returns the actors watching a lexeme, sorted by slug.
func (ws *WatchlistStore) Watchers(ctx context.Context, lexemeID string) ([]string, error) {
	rows, err := ws.store.db.QueryContext(ctx, `
		SELECT actor_slug FROM watchlist WHERE lexeme_id = ? ORDER BY actor_slug
	`, lexemeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query watchers: %w", err)
	}
	defer rows.Close()

	var watchers []string
	for rows.Next() {
		var slug string
		if err := rows.Scan(&slug); err != nil {
			return nil, fmt.Errorf("failed to scan watcher: %w", err)
		}
		watchers = append(watchers, slug)
	}
	return watchers, rows.Err()
}

// DuplicateWatches makes every watcher of fromID also watch toID. Actors
// already watching toID are left as they are.
func (ws *WatchlistStore) DuplicateWatches(ctx context.Context, fromID, toID string) error {
	return ws.store.withTx(ctx, func(tx *sql.Tx, ew *events.Writer) error {
		res, err := tx.Exec(`
			INSERT OR IGNORE INTO watchlist (actor_slug, lexeme_id)
			SELECT actor_slug, ? FROM watchlist WHERE lexeme_id = ?
		`, toID, fromID)
		if err != nil {
			return fmt.Errorf("failed to duplicate watchlist: %w", err)
		}

		added, _ := res.RowsAffected()
		if added == 0 {
			return nil
		}
		if err := ew.LogWatchlistDuplicated(tx, fromID, toID, added); err != nil {
			return fmt.Errorf("failed to log event: %w", err)
		}
		return nil
	})
}
