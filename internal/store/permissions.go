package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lherron/lexq/internal/domain"
)

// PermissionStore handles actors and the edit permission rules.
type PermissionStore struct {
	store *Store
}

// AddActor registers an actor with the given role.
func (ps *PermissionStore) AddActor(ctx context.Context, slug, role string) error {
	if err := domain.ValidateActorRole(role); err != nil {
		return err
	}
	if slug == "" {
		return fmt.Errorf("actor slug is required")
	}
	_, err := ps.store.db.ExecContext(ctx, "INSERT INTO actors (slug, role) VALUES (?, ?)", slug, role)
	if err != nil {
		return fmt.Errorf("failed to create actor: %w", err)
	}
	return nil
}

// SetBlocked blocks or unblocks an actor.
func (ps *PermissionStore) SetBlocked(ctx context.Context, slug string, blocked bool) error {
	res, err := ps.store.db.ExecContext(ctx, "UPDATE actors SET blocked = ? WHERE slug = ?", boolToInt(blocked), slug)
	if err != nil {
		return fmt.Errorf("failed to update actor: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("actor not found: %s", slug)
	}
	return nil
}

// GetActor looks up an actor by slug. Returns nil if there is none.
func (ps *PermissionStore) GetActor(ctx context.Context, slug string) (*domain.Actor, error) {
	var a domain.Actor
	var blocked int
	var createdAt string
	err := ps.store.db.QueryRowContext(ctx, `
		SELECT slug, role, blocked, created_at FROM actors WHERE slug = ?
	`, slug).Scan(&a.Slug, &a.Role, &blocked, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get actor: %w", err)
	}
	a.Blocked = blocked != 0
	a.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &a, nil
}

// CanEdit returns nil if actor may edit the lexeme, and a
// *domain.PermissionDeniedError otherwise. Unknown and blocked actors may not
// edit anything, protected lexemes need an admin, and only bots may flag an
// edit as a bot edit. A lexeme that does not exist is left to the loader to
// report.
func (ps *PermissionStore) CanEdit(ctx context.Context, actor, lexemeID string, bot bool) error {
	deny := func(reason string) error {
		return &domain.PermissionDeniedError{Actor: actor, LexemeID: lexemeID, Reason: reason}
	}

	a, err := ps.GetActor(ctx, actor)
	if err != nil {
		return err
	}
	if a == nil {
		return deny("unknown actor")
	}
	if a.Blocked {
		return deny("actor is blocked")
	}
	if bot && a.Role != "bot" {
		return deny("bot edits require the bot role")
	}

	var protected int
	err = ps.store.db.QueryRowContext(ctx, "SELECT protected FROM lexemes WHERE id = ?", lexemeID).Scan(&protected)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("failed to check protection: %w", err)
	}
	if protected != 0 && a.Role != "admin" {
		return deny("lexeme is protected")
	}
	return nil
}
