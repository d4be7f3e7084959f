package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lherron/lexq/internal/guid"
	"github.com/lherron/lexq/internal/id"
)

// ErrLexemeNotFound is returned when no lexeme exists under an ID
var ErrLexemeNotFound = errors.New("lexeme not found")

// RedirectError is returned when loading a lexeme that was merged away
type RedirectError struct {
	ID     string
	Target string
}

func (e *RedirectError) Error() string {
	return fmt.Sprintf("lexeme %s is a redirect to %s", e.ID, e.Target)
}

// PermissionDeniedError is returned when an actor may not edit a lexeme
type PermissionDeniedError struct {
	Actor    string
	LexemeID string
	Reason   string
}

func (e *PermissionDeniedError) Error() string {
	return fmt.Sprintf("actor %q may not edit %s: %s", e.Actor, e.LexemeID, e.Reason)
}

// ETagMismatchError is returned when a revision doesn't match
type ETagMismatchError struct {
	Expected int64
	Actual   int64
}

func (e *ETagMismatchError) Error() string {
	return fmt.Sprintf("etag mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// CheckETag validates an etag against the current value
func CheckETag(expected, actual int64) error {
	if expected != actual {
		return &ETagMismatchError{Expected: expected, Actual: actual}
	}
	return nil
}

// ValidateLexemeID validates a lexeme ID (L<n>)
func ValidateLexemeID(s string) error {
	if !id.IsLexemeID(s) {
		return fmt.Errorf("invalid lexeme ID %q: must look like L123", s)
	}
	return nil
}

// ValidateItemID validates an item ID (Q<n>)
func ValidateItemID(s string) error {
	if t, _, err := id.Parse(s); err != nil || t != id.TypeItem {
		return fmt.Errorf("invalid item ID %q: must look like Q123", s)
	}
	return nil
}

// ValidatePropertyID validates a property ID (P<n>)
func ValidatePropertyID(s string) error {
	if t, _, err := id.Parse(s); err != nil || t != id.TypeProperty {
		return fmt.Errorf("invalid property ID %q: must look like P123", s)
	}
	return nil
}

// ValidateActorRole validates an actor role
func ValidateActorRole(role string) error {
	switch role {
	case "editor", "admin", "bot":
		return nil
	default:
		return fmt.Errorf("invalid actor role: must be one of: editor, admin, bot")
	}
}

// ValidateTermList checks that every term has a language code and a text
func ValidateTermList(field string, terms TermList) error {
	for _, lang := range terms.Languages() {
		if strings.TrimSpace(lang) == "" {
			return fmt.Errorf("invalid %s: empty language code", field)
		}
		if strings.TrimSpace(terms[lang]) == "" {
			return fmt.Errorf("invalid %s: empty text for language %q", field, lang)
		}
	}
	return nil
}

// ValidateStatements checks that every statement is owned by ownerID, that
// every snak names a property, that value snaks carry a value and that
// entity values are well-formed entity IDs
func ValidateStatements(ownerID string, list StatementList) error {
	for _, st := range list {
		if !guid.HasOwner(st.GUID, ownerID) {
			return fmt.Errorf("statement %q is not owned by %s", st.GUID, ownerID)
		}
		if st.MainSnak.Type == SnakTypeValue && st.MainSnak.Value == nil {
			return fmt.Errorf("statement %q is a value snak without a value", st.GUID)
		}
		snaks := append([]Snak{st.MainSnak}, st.Qualifiers...)
		for _, ref := range st.References {
			snaks = append(snaks, ref.Snaks...)
		}
		for _, snak := range snaks {
			if err := ValidatePropertyID(snak.Property); err != nil {
				return fmt.Errorf("statement %q: %w", st.GUID, err)
			}
		}
		for _, eid := range st.ReferencedEntityIDs() {
			if !id.IsEntityID(eid) {
				return fmt.Errorf("statement %q references invalid entity ID %q", st.GUID, eid)
			}
		}
	}
	return nil
}

// ValidateLexeme checks the structural invariants of a lexeme: well-formed
// IDs, forms and senses owned by the lexeme with unique IDs below the
// counters, and every statement GUID owned by the entity holding it.
func ValidateLexeme(l *Lexeme) error {
	if err := ValidateLexemeID(l.ID); err != nil {
		return err
	}
	if err := ValidateItemID(l.Language); err != nil {
		return fmt.Errorf("invalid language: %w", err)
	}
	if err := ValidateItemID(l.LexicalCategory); err != nil {
		return fmt.Errorf("invalid lexical category: %w", err)
	}
	if err := ValidateTermList("lemmas", l.Lemmas); err != nil {
		return err
	}
	if err := ValidateStatements(l.ID, l.Statements); err != nil {
		return err
	}

	seen := make(map[string]bool)
	for _, f := range l.Forms {
		if err := validateSubEntity(l, f.ID, id.TypeForm, l.NextFormID, seen); err != nil {
			return err
		}
		if err := ValidateTermList("representations of "+f.ID, f.Representations); err != nil {
			return err
		}
		for _, feature := range f.GrammaticalFeatures {
			if err := ValidateItemID(feature); err != nil {
				return fmt.Errorf("invalid grammatical feature on %s: %w", f.ID, err)
			}
		}
		if err := ValidateStatements(f.ID, f.Statements); err != nil {
			return err
		}
	}
	for _, s := range l.Senses {
		if err := validateSubEntity(l, s.ID, id.TypeSense, l.NextSenseID, seen); err != nil {
			return err
		}
		if err := ValidateTermList("glosses of "+s.ID, s.Glosses); err != nil {
			return err
		}
		if err := ValidateStatements(s.ID, s.Statements); err != nil {
			return err
		}
	}
	return nil
}

func validateSubEntity(l *Lexeme, subID string, want id.Type, next int, seen map[string]bool) error {
	t, seq, err := id.Parse(subID)
	if err != nil || t != want {
		return fmt.Errorf("invalid %s ID %q", want, subID)
	}
	if owner, _ := id.LexemeOf(subID); owner != l.ID {
		return fmt.Errorf("%s %s does not belong to lexeme %s", want, subID, l.ID)
	}
	if seen[subID] {
		return fmt.Errorf("duplicate %s ID %s", want, subID)
	}
	if seq >= next {
		return fmt.Errorf("%s ID %s is not below the lexeme's counter %d", want, subID, next)
	}
	seen[subID] = true
	return nil
}
