// Package merge folds one lexeme, with its forms and senses, into another.
//
// Every refusal condition is checked before the target is touched. Once
// mutation starts the only possible failures come from the statements
// merger, and those are reported as KindModificationFailed.
package merge

import (
	"errors"

	"github.com/lherron/lexq/internal/domain"
	"github.com/lherron/lexq/internal/statements"
)

// LexemeMerger merges a source lexeme into a target lexeme
type LexemeMerger struct {
	statements statements.Merger
	forms      *FormsMerger
	senses     *SensesMerger
	validator  NoCrossReferencingValidator
}

// NewLexemeMerger creates a merger that moves statements with sm
func NewLexemeMerger(sm statements.Merger) *LexemeMerger {
	return &LexemeMerger{
		statements: sm,
		forms:      &FormsMerger{Statements: sm},
		senses:     &SensesMerger{Statements: sm},
	}
}

// Merge merges source into target, mutating target only. It returns nil or
// a *Error.
//
// Checks run in this order: same lexeme, cross references, language,
// lexical category, lemma conflicts. Then lemmas, statements, forms and
// senses are merged.
func (m *LexemeMerger) Merge(source, target *domain.Lexeme) error {
	if source == nil || target == nil {
		return &Error{Kind: KindModificationFailed, Cause: errors.New("source and target lexemes are required")}
	}
	if source == target || source.ID == target.ID {
		return &Error{Kind: KindReferenceSameLexeme, SourceID: source.ID, TargetID: target.ID}
	}
	if err := m.validator.Validate(source, target); err != nil {
		return err
	}
	if source.Language != target.Language {
		return &Error{Kind: KindDifferentLanguages, SourceID: source.ID, TargetID: target.ID}
	}
	if source.LexicalCategory != target.LexicalCategory {
		return &Error{Kind: KindDifferentLexicalCategories, SourceID: source.ID, TargetID: target.ID}
	}
	if conflicts := conflictingLanguages(source.Lemmas, target.Lemmas); len(conflicts) > 0 {
		return &Error{Kind: KindConflictingLemmaValue, SourceID: source.ID, TargetID: target.ID, Language: conflicts[0]}
	}

	// Work from a private copy so nothing the target ends up holding is
	// shared with the caller's source.
	src := source.Clone()

	target.Lemmas = MergeTerms(src.Lemmas, target.Lemmas)

	if err := m.statements.Merge(src.Statements, &target.Statements, target.ID); err != nil {
		return modificationFailed(source.ID, target.ID, err)
	}
	if err := m.forms.Merge(src, target); err != nil {
		return modificationFailed(source.ID, target.ID, err)
	}
	if err := m.senses.Merge(src, target); err != nil {
		return modificationFailed(source.ID, target.ID, err)
	}

	return nil
}
