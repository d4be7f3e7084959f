package interactor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lherron/lexq/internal/domain"
	"github.com/lherron/lexq/internal/merge"
	"github.com/lherron/lexq/internal/statements"
)

type sequentialGuids struct{ n int }

func (g *sequentialGuids) NewGuid(entityID string) (string, error) {
	g.n++
	return fmt.Sprintf("%s$%d", entityID, g.n), nil
}

type failingGuids struct{}

func (failingGuids) NewGuid(string) (string, error) {
	return "", errors.New("entropy exhausted")
}

type stored struct {
	lexeme   *domain.Lexeme
	revision int64
	redirect string
}

// fakeRepository keeps lexemes in memory and records every call
type fakeRepository struct {
	lexemes     map[string]*stored
	calls       []string
	saveErr     error
	redirectErr error
	getErr      map[string]error
	edits       map[string]domain.EditInfo
}

func newFakeRepository(lexemes ...*domain.Lexeme) *fakeRepository {
	r := &fakeRepository{
		lexemes: map[string]*stored{},
		getErr:  map[string]error{},
		edits:   map[string]domain.EditInfo{},
	}
	for _, l := range lexemes {
		r.lexemes[l.ID] = &stored{lexeme: l.Clone(), revision: 1}
	}
	return r
}

func (r *fakeRepository) Get(_ context.Context, lexemeID string) (*domain.Lexeme, int64, error) {
	r.calls = append(r.calls, "get "+lexemeID)
	if err := r.getErr[lexemeID]; err != nil {
		return nil, 0, err
	}
	s, ok := r.lexemes[lexemeID]
	if !ok {
		return nil, 0, fmt.Errorf("%w: %s", domain.ErrLexemeNotFound, lexemeID)
	}
	if s.redirect != "" {
		return nil, 0, &domain.RedirectError{ID: lexemeID, Target: s.redirect}
	}
	return s.lexeme.Clone(), s.revision, nil
}

func (r *fakeRepository) Save(_ context.Context, lexeme *domain.Lexeme, baseRevision int64, edit domain.EditInfo) (int64, error) {
	r.calls = append(r.calls, "save "+lexeme.ID)
	if r.saveErr != nil {
		return 0, r.saveErr
	}
	s := r.lexemes[lexeme.ID]
	if err := domain.CheckETag(baseRevision, s.revision); err != nil {
		return 0, err
	}
	s.lexeme = lexeme.Clone()
	s.revision++
	r.edits[lexeme.ID] = edit
	return s.revision, nil
}

func (r *fakeRepository) CreateRedirect(_ context.Context, sourceID, targetID string, edit domain.EditInfo) (int64, error) {
	r.calls = append(r.calls, "redirect "+sourceID)
	if r.redirectErr != nil {
		return 0, r.redirectErr
	}
	s := r.lexemes[sourceID]
	s.redirect = targetID
	s.revision++
	r.edits[sourceID] = edit
	return s.revision, nil
}

type fakePermissions struct {
	denied map[string]bool
	asked  []string
}

func (p *fakePermissions) CanEdit(_ context.Context, actor, lexemeID string, bot bool) error {
	p.asked = append(p.asked, lexemeID)
	if p.denied[lexemeID] {
		return &domain.PermissionDeniedError{Actor: actor, LexemeID: lexemeID, Reason: "lexeme is protected"}
	}
	return nil
}

type fakeWatchlist struct {
	copies [][2]string
	err    error
}

func (w *fakeWatchlist) DuplicateWatches(_ context.Context, fromID, toID string) error {
	if w.err != nil {
		return w.err
	}
	w.copies = append(w.copies, [2]string{fromID, toID})
	return nil
}

type fixture struct {
	repo        *fakeRepository
	permissions *fakePermissions
	watchlist   *fakeWatchlist
	logs        *bytes.Buffer
	interactor  *Interactor
}

func newFixture(t *testing.T, lexemes ...*domain.Lexeme) *fixture {
	t.Helper()
	f := &fixture{
		repo:        newFakeRepository(lexemes...),
		permissions: &fakePermissions{denied: map[string]bool{}},
		watchlist:   &fakeWatchlist{},
		logs:        &bytes.Buffer{},
	}
	logger := slog.New(slog.NewTextHandler(f.logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	merger := merge.NewLexemeMerger(statements.NewMerger(&sequentialGuids{}))
	f.interactor = New(f.repo, f.permissions, f.watchlist, merger, logger)
	return f
}

func englishNoun(lexemeID string, lemmas domain.TermList) *domain.Lexeme {
	l := domain.NewLexeme(lexemeID, "Q1860", "Q1084")
	for lang, text := range lemmas {
		l.Lemmas[lang] = text
	}
	return l
}

func request(sourceID, targetID string) Request {
	return Request{SourceID: sourceID, TargetID: targetID, Actor: "alice"}
}

func TestMergeLexemes_Success(t *testing.T) {
	source := englishNoun("L1", domain.TermList{"en": "color"})
	source.AddForm(domain.TermList{"en": "colors"}, []string{"Q146786"})
	target := englishNoun("L2", domain.TermList{"en-gb": "colour"})
	f := newFixture(t, source, target)

	req := request("L1", "L2")
	req.Summary = "duplicate"
	result, err := f.interactor.MergeLexemes(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, int64(2), result.TargetRevision)
	assert.Equal(t, int64(2), result.SourceRevision)
	assert.Equal(t, domain.TermList{"en-gb": "colour"}, result.Before.Lemmas)
	assert.Equal(t, domain.TermList{"en": "color", "en-gb": "colour"}, result.After.Lemmas)

	saved := f.repo.lexemes["L2"].lexeme
	require.Len(t, saved.Forms, 1)
	assert.Equal(t, "L2-F1", saved.Forms[0].ID)
	assert.Equal(t, "L2", f.repo.lexemes["L1"].redirect)

	assert.Equal(t, []string{"L1", "L2"}, f.permissions.asked)
	assert.Equal(t, []string{"get L1", "get L2", "save L2", "redirect L1"}, f.repo.calls)
	assert.Equal(t, [][2]string{{"L1", "L2"}}, f.watchlist.copies)

	assert.Equal(t, "Merged from L1: duplicate", f.repo.edits["L2"].Summary)
	assert.Equal(t, "Redirected to L2: duplicate", f.repo.edits["L1"].Summary)
	assert.Contains(t, f.logs.String(), "lexemes merged")
}

func TestMergeLexemes_SummaryWithoutUserText(t *testing.T) {
	f := newFixture(t, englishNoun("L1", nil), englishNoun("L2", nil))

	req := request("L1", "L2")
	req.Bot = true
	_, err := f.interactor.MergeLexemes(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, domain.EditInfo{Actor: "alice", Summary: "Merged from L1", Bot: true}, f.repo.edits["L2"])
	assert.Equal(t, domain.EditInfo{Actor: "alice", Summary: "Redirected to L2", Bot: true}, f.repo.edits["L1"])
}

func TestMergeLexemes_SameLexeme(t *testing.T) {
	f := newFixture(t, englishNoun("L1", nil))

	_, err := f.interactor.MergeLexemes(context.Background(), request("L1", "L1"))

	assert.True(t, errors.Is(err, merge.ErrReferenceSameLexeme))
	assert.Empty(t, f.repo.calls)
	assert.Empty(t, f.permissions.asked)
}

func TestMergeLexemes_InvalidID(t *testing.T) {
	f := newFixture(t)

	_, err := f.interactor.MergeLexemes(context.Background(), request("Q1", "L2"))

	assert.True(t, errors.Is(err, ErrLexemeNotFound))
	assert.Empty(t, f.repo.calls)
}

func TestMergeLexemes_PermissionDenied(t *testing.T) {
	f := newFixture(t, englishNoun("L1", nil), englishNoun("L2", nil))
	f.permissions.denied["L2"] = true

	_, err := f.interactor.MergeLexemes(context.Background(), request("L1", "L2"))

	require.True(t, errors.Is(err, ErrPermissionDenied))
	var denied *domain.PermissionDeniedError
	assert.True(t, errors.As(err, &denied))
	assert.Equal(t, "L2", denied.LexemeID)
	assert.Empty(t, f.repo.calls, "nothing is loaded without permission")
}

func TestMergeLexemes_LoadFailures(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(r *fakeRepository)
		expect *Error
	}{
		{
			name:   "source missing",
			setup:  func(r *fakeRepository) { delete(r.lexemes, "L1") },
			expect: ErrLexemeNotFound,
		},
		{
			name:   "target missing",
			setup:  func(r *fakeRepository) { delete(r.lexemes, "L2") },
			expect: ErrLexemeNotFound,
		},
		{
			name:   "source is a redirect",
			setup:  func(r *fakeRepository) { r.lexemes["L1"].redirect = "L9" },
			expect: ErrLexemeLoading,
		},
		{
			name:   "storage failure",
			setup:  func(r *fakeRepository) { r.getErr["L2"] = errors.New("disk I/O error") },
			expect: ErrLexemeLoading,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, englishNoun("L1", nil), englishNoun("L2", nil))
			tt.setup(f.repo)

			_, err := f.interactor.MergeLexemes(context.Background(), request("L1", "L2"))

			assert.True(t, errors.Is(err, tt.expect), "got %v", err)
			assert.NotContains(t, f.repo.calls, "save L2")
			assert.Empty(t, f.watchlist.copies)
		})
	}
}

func TestMergeLexemes_MergeErrorsPassThrough(t *testing.T) {
	source := englishNoun("L1", domain.TermList{"en": "bar"})
	target := englishNoun("L2", domain.TermList{"en": "foo"})
	f := newFixture(t, source, target)

	_, err := f.interactor.MergeLexemes(context.Background(), request("L1", "L2"))

	var me *merge.Error
	require.True(t, errors.As(err, &me))
	assert.Equal(t, merge.KindConflictingLemmaValue, me.Kind)
	assert.Equal(t, "en", me.Language)
	_, isOrchestration := KindOf(err)
	assert.False(t, isOrchestration)

	assert.Equal(t, []string{"get L1", "get L2"}, f.repo.calls)
	assert.Equal(t, domain.TermList{"en": "foo"}, f.repo.lexemes["L2"].lexeme.Lemmas)
	assert.Contains(t, f.logs.String(), "level=INFO")
	assert.Contains(t, f.logs.String(), "conflicting-lemma-value")
}

func TestMergeLexemes_ModificationFailedIsLogged(t *testing.T) {
	source := englishNoun("L1", nil)
	source.Statements = domain.StatementList{{
		GUID:     "L1$a",
		MainSnak: domain.Snak{Type: domain.SnakTypeNoValue, Property: "P31"},
		Rank:     domain.RankNormal,
	}}
	f := newFixture(t, source, englishNoun("L2", nil))
	f.interactor.merger = merge.NewLexemeMerger(statements.NewMerger(failingGuids{}))

	_, err := f.interactor.MergeLexemes(context.Background(), request("L1", "L2"))

	assert.True(t, errors.Is(err, merge.ErrModificationFailed))
	assert.Contains(t, f.logs.String(), "level=ERROR")
	assert.Contains(t, f.logs.String(), "entropy exhausted")
	assert.NotContains(t, f.repo.calls, "save L2")
}

func TestMergeLexemes_SaveConflictSkipsRedirect(t *testing.T) {
	f := newFixture(t, englishNoun("L1", nil), englishNoun("L2", nil))
	f.repo.saveErr = &domain.ETagMismatchError{Expected: 1, Actual: 2}

	_, err := f.interactor.MergeLexemes(context.Background(), request("L1", "L2"))

	require.True(t, errors.Is(err, ErrLexemeSaveFailed))
	var mismatch *domain.ETagMismatchError
	assert.True(t, errors.As(err, &mismatch))
	assert.NotContains(t, f.repo.calls, "redirect L1")
	assert.Empty(t, f.repo.lexemes["L1"].redirect)
	assert.Empty(t, f.watchlist.copies)
}

func TestMergeLexemes_RedirectFailureSkipsWatchlist(t *testing.T) {
	f := newFixture(t, englishNoun("L1", nil), englishNoun("L2", nil))
	f.repo.redirectErr = errors.New("database is locked")

	_, err := f.interactor.MergeLexemes(context.Background(), request("L1", "L2"))

	var e *Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, KindLexemeSaveFailed, e.Kind)
	assert.Equal(t, "redirect", e.Step)
	assert.Empty(t, f.watchlist.copies)
}

func TestMergeLexemes_WatchlistFailure(t *testing.T) {
	f := newFixture(t, englishNoun("L1", nil), englishNoun("L2", nil))
	f.watchlist.err = errors.New("database is locked")

	_, err := f.interactor.MergeLexemes(context.Background(), request("L1", "L2"))

	var e *Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, "watchlist", e.Step)
}

func TestMergeLexemes_DryRunWritesNothing(t *testing.T) {
	source := englishNoun("L1", domain.TermList{"en": "color"})
	target := englishNoun("L2", domain.TermList{"en-gb": "colour"})
	f := newFixture(t, source, target)

	req := request("L1", "L2")
	req.DryRun = true
	result, err := f.interactor.MergeLexemes(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, result.DryRun)
	assert.Equal(t, domain.TermList{"en": "color", "en-gb": "colour"}, result.After.Lemmas)
	assert.Equal(t, []string{"get L1", "get L2"}, f.repo.calls)
	assert.Empty(t, f.watchlist.copies)
	assert.Equal(t, int64(1), f.repo.lexemes["L2"].revision)
}

func TestErrorKindString(t *testing.T) {
	assert.Equal(t, "lexeme-save-failed", KindLexemeSaveFailed.String())
	assert.Equal(t, "unknown(0)", ErrorKind(0).String())

	err := &Error{Kind: KindLexemeSaveFailed, LexemeID: "L2", Step: "target", Err: errors.New("boom")}
	assert.Equal(t, "failed to save target of L2: boom", err.Error())
}
