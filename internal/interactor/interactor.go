// Package interactor runs a lexeme merge end to end: it checks permissions,
// loads both lexemes, merges them in memory, saves the target, turns the
// source into a redirect and copies the source's watchers to the target.
// A failing step stops every later step.
package interactor

import (
	"context"
	"errors"
	"log/slog"

	"github.com/lherron/lexq/internal/domain"
	"github.com/lherron/lexq/internal/merge"
)

// LexemeRepository loads and writes lexemes
type LexemeRepository interface {
	Get(ctx context.Context, lexemeID string) (*domain.Lexeme, int64, error)
	Save(ctx context.Context, lexeme *domain.Lexeme, baseRevision int64, edit domain.EditInfo) (int64, error)
	CreateRedirect(ctx context.Context, sourceID, targetID string, edit domain.EditInfo) (int64, error)
}

// PermissionChecker decides whether an actor may edit a lexeme
type PermissionChecker interface {
	CanEdit(ctx context.Context, actor, lexemeID string, bot bool) error
}

// WatchlistDuplicator copies watchers from one lexeme to another
type WatchlistDuplicator interface {
	DuplicateWatches(ctx context.Context, fromID, toID string) error
}

// Merger merges source into target in memory
type Merger interface {
	Merge(source, target *domain.Lexeme) error
}

// Request describes one merge
type Request struct {
	SourceID string
	TargetID string
	Actor    string
	Summary  string
	Bot      bool

	// DryRun stops after the in-memory merge; nothing is written
	DryRun bool
}

// Result describes a merge that succeeded
type Result struct {
	SourceID string
	TargetID string

	// Before is the target as loaded, After the target as merged
	Before *domain.Lexeme
	After  *domain.Lexeme

	TargetRevision int64
	SourceRevision int64
	DryRun         bool
}

// Interactor merges lexemes stored in a repository
type Interactor struct {
	lexemes     LexemeRepository
	permissions PermissionChecker
	watchlist   WatchlistDuplicator
	merger      Merger
	logger      *slog.Logger
}

// New creates an interactor. A nil logger discards log output.
func New(lexemes LexemeRepository, permissions PermissionChecker, watchlist WatchlistDuplicator, merger Merger, logger *slog.Logger) *Interactor {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Interactor{
		lexemes:     lexemes,
		permissions: permissions,
		watchlist:   watchlist,
		merger:      merger,
		logger:      logger,
	}
}

// MergeLexemes merges the source lexeme into the target lexeme and redirects
// the source to the target. Errors are either a *merge.Error from the merge
// itself or an *Error naming the failed step.
func (it *Interactor) MergeLexemes(ctx context.Context, req Request) (*Result, error) {
	log := it.logger.With("source", req.SourceID, "target", req.TargetID, "actor", req.Actor)

	for _, lexemeID := range []string{req.SourceID, req.TargetID} {
		if err := domain.ValidateLexemeID(lexemeID); err != nil {
			return nil, &Error{Kind: KindLexemeNotFound, LexemeID: lexemeID, Err: err}
		}
	}

	if req.SourceID == req.TargetID {
		err := &merge.Error{Kind: merge.KindReferenceSameLexeme, SourceID: req.SourceID, TargetID: req.TargetID}
		log.Info("merge refused", "reason", err.Kind.String())
		return nil, err
	}

	for _, lexemeID := range []string{req.SourceID, req.TargetID} {
		if err := it.permissions.CanEdit(ctx, req.Actor, lexemeID, req.Bot); err != nil {
			log.Info("merge refused", "reason", KindPermissionDenied.String(), "lexeme", lexemeID, "error", err)
			return nil, &Error{Kind: KindPermissionDenied, LexemeID: lexemeID, Err: err}
		}
	}

	source, _, err := it.load(ctx, req.SourceID)
	if err != nil {
		log.Info("merge failed", "error", err)
		return nil, err
	}
	target, targetRevision, err := it.load(ctx, req.TargetID)
	if err != nil {
		log.Info("merge failed", "error", err)
		return nil, err
	}

	before := target.Clone()
	if err := it.merger.Merge(source, target); err != nil {
		if errors.Is(err, merge.ErrModificationFailed) {
			var me *merge.Error
			errors.As(err, &me)
			log.Error("merge modification failed", "cause", me.Cause)
		} else {
			kind, _ := merge.KindOf(err)
			log.Info("merge refused", "reason", kind.String(), "error", err)
		}
		return nil, err
	}

	result := &Result{
		SourceID: req.SourceID,
		TargetID: req.TargetID,
		Before:   before,
		After:    target,
		DryRun:   req.DryRun,
	}
	if req.DryRun {
		log.Debug("dry run merge succeeded")
		return result, nil
	}

	targetEdit := domain.EditInfo{Actor: req.Actor, Summary: summary("Merged from "+req.SourceID, req.Summary), Bot: req.Bot}
	result.TargetRevision, err = it.lexemes.Save(ctx, target, targetRevision, targetEdit)
	if err != nil {
		log.Error("saving merged target failed", "error", err)
		return nil, &Error{Kind: KindLexemeSaveFailed, LexemeID: req.TargetID, Step: "target", Err: err}
	}

	sourceEdit := domain.EditInfo{Actor: req.Actor, Summary: summary("Redirected to "+req.TargetID, req.Summary), Bot: req.Bot}
	result.SourceRevision, err = it.lexemes.CreateRedirect(ctx, req.SourceID, req.TargetID, sourceEdit)
	if err != nil {
		log.Error("creating redirect failed", "error", err)
		return nil, &Error{Kind: KindLexemeSaveFailed, LexemeID: req.SourceID, Step: "redirect", Err: err}
	}

	if err := it.watchlist.DuplicateWatches(ctx, req.SourceID, req.TargetID); err != nil {
		log.Error("duplicating watchlist failed", "error", err)
		return nil, &Error{Kind: KindLexemeSaveFailed, LexemeID: req.TargetID, Step: "watchlist", Err: err}
	}

	log.Info("lexemes merged", "target_revision", result.TargetRevision, "source_revision", result.SourceRevision)
	return result, nil
}

func (it *Interactor) load(ctx context.Context, lexemeID string) (*domain.Lexeme, int64, error) {
	lexeme, revision, err := it.lexemes.Get(ctx, lexemeID)
	if err == nil {
		return lexeme, revision, nil
	}
	if errors.Is(err, domain.ErrLexemeNotFound) {
		return nil, 0, &Error{Kind: KindLexemeNotFound, LexemeID: lexemeID, Err: err}
	}
	return nil, 0, &Error{Kind: KindLexemeLoading, LexemeID: lexemeID, Err: err}
}

func summary(auto, user string) string {
	if user == "" {
		return auto
	}
	return auto + ": " + user
}
