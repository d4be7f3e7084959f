package merge

import (
	"errors"
	"fmt"
)

// ErrorKind identifies why a merge was refused or failed
type ErrorKind int

const (
	// KindReferenceSameLexeme: source and target are the same lexeme
	KindReferenceSameLexeme ErrorKind = iota + 1
	// KindCrossReferencing: a statement points across the source/target boundary
	KindCrossReferencing
	// KindDifferentLanguages: source and target languages differ
	KindDifferentLanguages
	// KindDifferentLexicalCategories: source and target lexical categories differ
	KindDifferentLexicalCategories
	// KindConflictingLemmaValue: a lemma language has different texts on both sides
	KindConflictingLemmaValue
	// KindModificationFailed wraps any other failure raised while merging
	KindModificationFailed
)

func (k ErrorKind) String() string {
	switch k {
	case KindReferenceSameLexeme:
		return "reference-same-lexeme"
	case KindCrossReferencing:
		return "cross-referencing"
	case KindDifferentLanguages:
		return "different-languages"
	case KindDifferentLexicalCategories:
		return "different-lexical-categories"
	case KindConflictingLemmaValue:
		return "conflicting-lemma-value"
	case KindModificationFailed:
		return "modification-failed"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Error is the only error type returned by LexemeMerger.Merge. The fields
// that are set depend on Kind.
type Error struct {
	Kind     ErrorKind
	SourceID string
	TargetID string

	// Language is set for KindConflictingLemmaValue
	Language string

	// Guid and ReferencedID are set for KindCrossReferencing
	Guid         string
	ReferencedID string

	// Cause is set for KindModificationFailed
	Cause error
}

// Sentinels for errors.Is. Only the kind is compared.
var (
	ErrReferenceSameLexeme        = &Error{Kind: KindReferenceSameLexeme}
	ErrCrossReferencing           = &Error{Kind: KindCrossReferencing}
	ErrDifferentLanguages         = &Error{Kind: KindDifferentLanguages}
	ErrDifferentLexicalCategories = &Error{Kind: KindDifferentLexicalCategories}
	ErrConflictingLemmaValue      = &Error{Kind: KindConflictingLemmaValue}
	ErrModificationFailed         = &Error{Kind: KindModificationFailed}
)

func (e *Error) Error() string {
	switch e.Kind {
	case KindReferenceSameLexeme:
		return fmt.Sprintf("cannot merge lexeme %s into itself", e.TargetID)
	case KindCrossReferencing:
		if e.Guid == "" {
			return fmt.Sprintf("lexeme data references %s across the merge of %s into %s", e.ReferencedID, e.SourceID, e.TargetID)
		}
		return fmt.Sprintf("statement %s references %s across the merge of %s into %s", e.Guid, e.ReferencedID, e.SourceID, e.TargetID)
	case KindDifferentLanguages:
		return fmt.Sprintf("lexemes %s and %s have different languages", e.SourceID, e.TargetID)
	case KindDifferentLexicalCategories:
		return fmt.Sprintf("lexemes %s and %s have different lexical categories", e.SourceID, e.TargetID)
	case KindConflictingLemmaValue:
		return fmt.Sprintf("lexemes %s and %s have conflicting lemmas in language %q", e.SourceID, e.TargetID, e.Language)
	case KindModificationFailed:
		return fmt.Sprintf("failed to merge %s into %s: %v", e.SourceID, e.TargetID, e.Cause)
	default:
		return fmt.Sprintf("merge error %s", e.Kind)
	}
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error of the same kind
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// KindOf returns the kind of a merge error anywhere in err's chain
func KindOf(err error) (ErrorKind, bool) {
	var me *Error
	if errors.As(err, &me) {
		return me.Kind, true
	}
	return 0, false
}

// IsMergingError reports whether err is one of the engine's own refusal
// kinds, as opposed to a wrapped foreign failure.
func IsMergingError(err error) bool {
	kind, ok := KindOf(err)
	return ok && kind != KindModificationFailed
}

func modificationFailed(sourceID, targetID string, err error) error {
	var me *Error
	if errors.As(err, &me) {
		return err
	}
	return &Error{Kind: KindModificationFailed, SourceID: sourceID, TargetID: targetID, Cause: err}
}
