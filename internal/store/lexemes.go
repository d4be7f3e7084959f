package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lherron/lexq/internal/db"
	"github.com/lherron/lexq/internal/domain"
	"github.com/lherron/lexq/internal/events"
	"github.com/lherron/lexq/internal/id"
	"github.com/lherron/lexq/internal/statements"
)

// LexemeStore handles lexeme persistence operations.
type LexemeStore struct {
	store *Store
}

// CreateResult contains the result of lexeme creation.
type CreateResult struct {
	Lexeme   *domain.Lexeme
	Revision int64
}

// Create stores a new lexeme built from draft. The lexeme ID is allocated
// from the lexeme sequence, forms and senses get IDs from the new lexeme's
// counters, and every statement gets a GUID owned by its new entity. IDs
// carried by the draft are ignored.
func (ls *LexemeStore) Create(ctx context.Context, edit domain.EditInfo, draft *domain.Lexeme) (*CreateResult, error) {
	var result *CreateResult

	err := ls.store.withTx(ctx, func(tx *sql.Tx, ew *events.Writer) error {
		seq, err := db.NextSequenceValue(tx, db.LexemeSequence.SeqTable)
		if err != nil {
			return err
		}

		lexeme, err := ls.build(id.FormatLexeme(seq), draft)
		if err != nil {
			return err
		}
		if err := domain.ValidateLexeme(lexeme); err != nil {
			return err
		}

		document, err := json.Marshal(lexeme)
		if err != nil {
			return fmt.Errorf("failed to encode lexeme: %w", err)
		}

		if _, err := tx.Exec(`
			INSERT INTO lexemes (id, document, revision) VALUES (?, ?, 1)
		`, lexeme.ID, string(document)); err != nil {
			return fmt.Errorf("failed to create lexeme: %w", err)
		}
		if err := insertRevision(tx, lexeme.ID, 1, edit, string(document), nil); err != nil {
			return err
		}

		if err := ew.LogLexemeCreated(tx, edit.Actor, lexeme); err != nil {
			return fmt.Errorf("failed to log event: %w", err)
		}

		result = &CreateResult{Lexeme: lexeme, Revision: 1}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (ls *LexemeStore) build(lexemeID string, draft *domain.Lexeme) (*domain.Lexeme, error) {
	gen := ls.store.guid
	lexeme := domain.NewLexeme(lexemeID, draft.Language, draft.LexicalCategory)
	if draft.Lemmas != nil {
		lexeme.Lemmas = draft.Lemmas.Clone()
	}

	var err error
	if lexeme.Statements, err = statements.Reassign(draft.Statements, lexemeID, gen); err != nil {
		return nil, err
	}
	for _, f := range draft.Forms {
		formID := lexeme.AddForm(f.Representations, f.GrammaticalFeatures)
		i := lexeme.FormIndex(formID)
		if lexeme.Forms[i].Statements, err = statements.Reassign(f.Statements, formID, gen); err != nil {
			return nil, err
		}
	}
	for _, s := range draft.Senses {
		senseID := lexeme.AddSense(s.Glosses)
		i := lexeme.SenseIndex(senseID)
		if lexeme.Senses[i].Statements, err = statements.Reassign(s.Statements, senseID, gen); err != nil {
			return nil, err
		}
	}
	return lexeme, nil
}

// Get loads a lexeme and its current revision. A missing lexeme yields an
// error wrapping domain.ErrLexemeNotFound; a redirect yields
// *domain.RedirectError.
func (ls *LexemeStore) Get(ctx context.Context, lexemeID string) (*domain.Lexeme, int64, error) {
	var document string
	var revision int64
	var redirect sql.NullString

	err := ls.store.db.QueryRowContext(ctx, `
		SELECT document, revision, redirect_target FROM lexemes WHERE id = ?
	`, lexemeID).Scan(&document, &revision, &redirect)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, 0, fmt.Errorf("%w: %s", domain.ErrLexemeNotFound, lexemeID)
		}
		return nil, 0, fmt.Errorf("failed to load lexeme %s: %w", lexemeID, err)
	}
	if redirect.Valid {
		return nil, 0, &domain.RedirectError{ID: lexemeID, Target: redirect.String}
	}

	var lexeme domain.Lexeme
	if err := json.Unmarshal([]byte(document), &lexeme); err != nil {
		return nil, 0, fmt.Errorf("failed to decode lexeme %s: %w", lexemeID, err)
	}
	lexeme.Normalize()
	return &lexeme, revision, nil
}

// ResolveRedirect follows redirects starting at lexemeID and returns the ID
// of the lexeme they end at.
func (ls *LexemeStore) ResolveRedirect(ctx context.Context, lexemeID string) (string, error) {
	current := lexemeID
	seen := map[string]bool{}
	for {
		if seen[current] {
			return "", fmt.Errorf("redirect loop at %s", current)
		}
		seen[current] = true

		var redirect sql.NullString
		err := ls.store.db.QueryRowContext(ctx, "SELECT redirect_target FROM lexemes WHERE id = ?", current).Scan(&redirect)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return "", fmt.Errorf("%w: %s", domain.ErrLexemeNotFound, current)
			}
			return "", fmt.Errorf("failed to resolve %s: %w", current, err)
		}
		if !redirect.Valid {
			return current, nil
		}
		current = redirect.String
	}
}

// Save writes a new revision of an existing lexeme. If baseRevision > 0 the
// save fails with *domain.ETagMismatchError unless it is still the current
// revision. Returns the new revision.
func (ls *LexemeStore) Save(ctx context.Context, lexeme *domain.Lexeme, baseRevision int64, edit domain.EditInfo) (int64, error) {
	if err := domain.ValidateLexeme(lexeme); err != nil {
		return 0, err
	}
	document, err := json.Marshal(lexeme)
	if err != nil {
		return 0, fmt.Errorf("failed to encode lexeme: %w", err)
	}

	var newRevision int64
	err = ls.store.withTx(ctx, func(tx *sql.Tx, ew *events.Writer) error {
		current, err := currentRevision(tx, lexeme.ID)
		if err != nil {
			return err
		}
		if err := checkRevision(current, baseRevision); err != nil {
			return err
		}
		newRevision = current + 1

		if _, err := tx.Exec(`
			UPDATE lexemes
			SET document = ?, revision = ?, updated_at = strftime('%Y-%m-%dT%H:%M:%SZ','now')
			WHERE id = ?
		`, string(document), newRevision, lexeme.ID); err != nil {
			return fmt.Errorf("failed to update lexeme: %w", err)
		}
		if err := insertRevision(tx, lexeme.ID, newRevision, edit, string(document), nil); err != nil {
			return err
		}

		if err := ew.LogLexemeUpdated(tx, edit, lexeme.ID, newRevision); err != nil {
			return fmt.Errorf("failed to log event: %w", err)
		}
		return nil
	})

	return newRevision, err
}

// CreateRedirect turns sourceID into a redirect to targetID. Both lexemes
// must exist and neither may already be a redirect. Returns the source's new
// revision.
func (ls *LexemeStore) CreateRedirect(ctx context.Context, sourceID, targetID string, edit domain.EditInfo) (int64, error) {
	if sourceID == targetID {
		return 0, fmt.Errorf("cannot redirect %s to itself", sourceID)
	}

	var newRevision int64
	err := ls.store.withTx(ctx, func(tx *sql.Tx, ew *events.Writer) error {
		current, err := currentRevision(tx, sourceID)
		if err != nil {
			return err
		}
		if _, err := currentRevision(tx, targetID); err != nil {
			return err
		}
		newRevision = current + 1

		if _, err := tx.Exec(`
			UPDATE lexemes
			SET redirect_target = ?, revision = ?, updated_at = strftime('%Y-%m-%dT%H:%M:%SZ','now')
			WHERE id = ?
		`, targetID, newRevision, sourceID); err != nil {
			return fmt.Errorf("failed to create redirect: %w", err)
		}
		if err := insertRevision(tx, sourceID, newRevision, edit, "", &targetID); err != nil {
			return err
		}

		if err := ew.LogLexemeRedirected(tx, edit, sourceID, targetID, newRevision); err != nil {
			return fmt.Errorf("failed to log event: %w", err)
		}
		return nil
	})

	return newRevision, err
}

// SetProtected marks a lexeme as editable by admins only, or lifts that.
func (ls *LexemeStore) SetProtected(ctx context.Context, lexemeID string, protected bool) error {
	res, err := ls.store.db.ExecContext(ctx, "UPDATE lexemes SET protected = ? WHERE id = ?", boolToInt(protected), lexemeID)
	if err != nil {
		return fmt.Errorf("failed to update protection: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", domain.ErrLexemeNotFound, lexemeID)
	}
	return nil
}

// Revision is one entry of a lexeme's history.
type Revision struct {
	Revision       int64
	Actor          string
	Summary        string
	Bot            bool
	RedirectTarget *string
	CreatedAt      string
}

// History returns a lexeme's revisions, oldest first.
func (ls *LexemeStore) History(ctx context.Context, lexemeID string) ([]Revision, error) {
	rows, err := ls.store.db.QueryContext(ctx, `
		SELECT revision, actor, summary, bot, redirect_target, created_at
		FROM lexeme_revisions WHERE lexeme_id = ? ORDER BY revision
	`, lexemeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var history []Revision
	for rows.Next() {
		var r Revision
		var bot int
		var redirect sql.NullString
		if err := rows.Scan(&r.Revision, &r.Actor, &r.Summary, &bot, &redirect, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan revision: %w", err)
		}
		r.Bot = bot != 0
		if redirect.Valid {
			r.RedirectTarget = &redirect.String
		}
		history = append(history, r)
	}
	return history, rows.Err()
}

// currentRevision returns the revision of a lexeme that exists and is not a
// redirect.
func currentRevision(tx *sql.Tx, lexemeID string) (int64, error) {
	var revision int64
	var redirect sql.NullString
	err := tx.QueryRow("SELECT revision, redirect_target FROM lexemes WHERE id = ?", lexemeID).Scan(&revision, &redirect)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("%w: %s", domain.ErrLexemeNotFound, lexemeID)
		}
		return 0, fmt.Errorf("failed to get current revision: %w", err)
	}
	if redirect.Valid {
		return 0, &domain.RedirectError{ID: lexemeID, Target: redirect.String}
	}
	return revision, nil
}

func insertRevision(tx *sql.Tx, lexemeID string, revision int64, edit domain.EditInfo, document string, redirect *string) error {
	var doc *string
	if document != "" {
		doc = &document
	}
	_, err := tx.Exec(`
		INSERT INTO lexeme_revisions (lexeme_id, revision, actor, summary, bot, document, redirect_target)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, lexemeID, revision, edit.Actor, edit.Summary, boolToInt(edit.Bot), doc, redirect)
	if err != nil {
		return fmt.Errorf("failed to record revision: %w", err)
	}
	return nil
}
