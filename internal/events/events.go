package events

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lherron/lexq/internal/domain"
)

// Writer handles writing events to the event log
type Writer struct {
	db *sql.DB
}

// NewWriter creates a new event writer
func NewWriter(db *sql.DB) *Writer {
	return &Writer{db: db}
}

// LogEvent writes an event to the event log
func (w *Writer) LogEvent(tx *sql.Tx, event *domain.Event) error {
	query := `
		INSERT INTO event_log (actor, resource_type, resource_id, event_type, revision, payload)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	executor := w.getExecutor(tx)
	_, err := executor.Exec(query, event.Actor, event.ResourceType, event.ResourceID, event.EventType, event.Revision, event.Payload)
	if err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}

	return nil
}

// LogLexemeCreated logs a lexeme creation event
func (w *Writer) LogLexemeCreated(tx *sql.Tx, actor string, lexeme *domain.Lexeme) error {
	return w.logLexeme(tx, actor, lexeme.ID, "lexeme.created", 1, map[string]interface{}{
		"lemmas":           lexeme.Lemmas,
		"language":         lexeme.Language,
		"lexical_category": lexeme.LexicalCategory,
		"forms":            len(lexeme.Forms),
		"senses":           len(lexeme.Senses),
	})
}

// LogLexemeUpdated logs a lexeme save with its edit summary
func (w *Writer) LogLexemeUpdated(tx *sql.Tx, edit domain.EditInfo, lexemeID string, revision int64) error {
	return w.logLexeme(tx, edit.Actor, lexemeID, "lexeme.updated", revision, map[string]interface{}{
		"summary": edit.Summary,
		"bot":     edit.Bot,
	})
}

// LogLexemeRedirected logs that a lexeme became a redirect
func (w *Writer) LogLexemeRedirected(tx *sql.Tx, edit domain.EditInfo, lexemeID, targetID string, revision int64) error {
	return w.logLexeme(tx, edit.Actor, lexemeID, "lexeme.redirected", revision, map[string]interface{}{
		"target":  targetID,
		"summary": edit.Summary,
		"bot":     edit.Bot,
	})
}

// LogWatchlistDuplicated logs that watchers of one lexeme now watch another
func (w *Writer) LogWatchlistDuplicated(tx *sql.Tx, fromID, toID string, added int64) error {
	payload, err := json.Marshal(map[string]interface{}{
		"from":  fromID,
		"to":    toID,
		"added": added,
	})
	if err != nil {
		return err
	}

	payloadStr := string(payload)
	return w.LogEvent(tx, &domain.Event{
		ResourceType: "watchlist",
		ResourceID:   &toID,
		EventType:    "watchlist.duplicated",
		Payload:      &payloadStr,
	})
}

func (w *Writer) logLexeme(tx *sql.Tx, actor, lexemeID, eventType string, revision int64, fields map[string]interface{}) error {
	payload, err := json.Marshal(fields)
	if err != nil {
		return err
	}

	payloadStr := string(payload)
	event := &domain.Event{
		ResourceType: "lexeme",
		ResourceID:   &lexemeID,
		EventType:    eventType,
		Revision:     &revision,
		Payload:      &payloadStr,
	}
	if actor != "" {
		event.Actor = &actor
	}

	return w.LogEvent(tx, event)
}

// getExecutor returns the appropriate executor (tx or db)
func (w *Writer) getExecutor(tx *sql.Tx) interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
} {
	if tx != nil {
		return tx
	}
	return w.db
}
