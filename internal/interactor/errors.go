package interactor

import (
	"errors"
	"fmt"
)

// ErrorKind identifies which orchestration step failed
type ErrorKind int

const (
	// KindLexemeNotFound: a lexeme to merge does not exist
	KindLexemeNotFound ErrorKind = iota + 1
	// KindLexemeLoading: a lexeme could not be read, or is a redirect
	KindLexemeLoading
	// KindPermissionDenied: the actor may not edit one of the lexemes
	KindPermissionDenied
	// KindLexemeSaveFailed: the merged target, the redirect or the watchlist could not be written
	KindLexemeSaveFailed
)

func (k ErrorKind) String() string {
	switch k {
	case KindLexemeNotFound:
		return "lexeme-not-found"
	case KindLexemeLoading:
		return "lexeme-loading"
	case KindPermissionDenied:
		return "permission-denied"
	case KindLexemeSaveFailed:
		return "lexeme-save-failed"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Error is returned by MergeLexemes for failures outside the merge itself.
// Errors from the merge engine are returned unchanged.
type Error struct {
	Kind     ErrorKind
	LexemeID string
	// Step names what was being written when a save failed: "target", "redirect" or "watchlist"
	Step string
	Err  error
}

// Sentinels for errors.Is. Only the kind is compared.
var (
	ErrLexemeNotFound   = &Error{Kind: KindLexemeNotFound}
	ErrLexemeLoading    = &Error{Kind: KindLexemeLoading}
	ErrPermissionDenied = &Error{Kind: KindPermissionDenied}
	ErrLexemeSaveFailed = &Error{Kind: KindLexemeSaveFailed}
)

func (e *Error) Error() string {
	var msg string
	switch e.Kind {
	case KindLexemeNotFound:
		msg = fmt.Sprintf("lexeme %s not found", e.LexemeID)
	case KindLexemeLoading:
		msg = fmt.Sprintf("failed to load lexeme %s", e.LexemeID)
	case KindPermissionDenied:
		msg = fmt.Sprintf("permission denied on %s", e.LexemeID)
	case KindLexemeSaveFailed:
		msg = fmt.Sprintf("failed to save %s of %s", e.Step, e.LexemeID)
	default:
		msg = e.Kind.String()
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// KindOf returns the orchestration kind of err, if it is one
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}
