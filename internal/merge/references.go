package merge

import (
	"maps"
	"slices"

	"github.com/lherron/lexq/internal/domain"
	"github.com/lherron/lexq/internal/id"
)

// allStatements lists the statements of a lexeme followed by those of its
// forms and senses, in document order.
func allStatements(l *domain.Lexeme) []domain.Statement {
	out := append(domain.StatementList{}, l.Statements...)
	for _, f := range l.Forms {
		out = append(out, f.Statements...)
	}
	for _, s := range l.Senses {
		out = append(out, s.Statements...)
	}
	return out
}

// ExtractReferences returns the set of entity IDs a lexeme points at: its
// language and lexical category, the grammatical features of its forms,
// plus every entity ID used as a value in any statement of the lexeme, its
// forms or its senses.
func ExtractReferences(l *domain.Lexeme) map[string]struct{} {
	refs := make(map[string]struct{})
	if l.Language != "" {
		refs[l.Language] = struct{}{}
	}
	if l.LexicalCategory != "" {
		refs[l.LexicalCategory] = struct{}{}
	}
	addStatementReferences(refs, l.Statements)
	for _, f := range l.Forms {
		maps.Copy(refs, ExtractFormReferences(f))
	}
	for _, s := range l.Senses {
		maps.Copy(refs, ExtractSenseReferences(s))
	}
	return refs
}

// ExtractFormReferences returns the entity IDs referenced by a form's
// grammatical features and statements.
func ExtractFormReferences(f domain.Form) map[string]struct{} {
	refs := make(map[string]struct{})
	for _, feature := range f.GrammaticalFeatures {
		refs[feature] = struct{}{}
	}
	addStatementReferences(refs, f.Statements)
	return refs
}

// ExtractSenseReferences returns the entity IDs referenced by a sense's
// statements.
func ExtractSenseReferences(s domain.Sense) map[string]struct{} {
	refs := make(map[string]struct{})
	addStatementReferences(refs, s.Statements)
	return refs
}

func addStatementReferences(refs map[string]struct{}, list domain.StatementList) {
	for _, st := range list {
		for _, eid := range st.ReferencedEntityIDs() {
			refs[eid] = struct{}{}
		}
	}
}

// NoCrossReferencingValidator rejects a merge when either lexeme has a
// statement pointing at the other one, or at one of the other's forms or
// senses. References a lexeme makes to itself, and references to unrelated
// entities, are allowed.
type NoCrossReferencingValidator struct{}

// Validate returns a KindCrossReferencing *Error for the first offending
// statement found, checking source before target.
func (NoCrossReferencingValidator) Validate(source, target *domain.Lexeme) error {
	if err := findReferenceTo(source, target.ID); err != nil {
		err.SourceID, err.TargetID = source.ID, target.ID
		return err
	}
	if err := findReferenceTo(target, source.ID); err != nil {
		err.SourceID, err.TargetID = source.ID, target.ID
		return err
	}
	return nil
}

// findReferenceTo checks the references of l for the lexeme otherID or any
// form or sense of it. The error names the first statement holding such a
// reference; a reference held only by a core field carries no GUID.
func findReferenceTo(l *domain.Lexeme, otherID string) *Error {
	crossing := make(map[string]bool)
	for ref := range ExtractReferences(l) {
		if owner, ok := id.LexemeOf(ref); ok && owner == otherID {
			crossing[ref] = true
		}
	}
	if len(crossing) == 0 {
		return nil
	}

	for _, st := range allStatements(l) {
		for _, eid := range st.ReferencedEntityIDs() {
			if crossing[eid] {
				return &Error{
					Kind:         KindCrossReferencing,
					Guid:         st.GUID,
					ReferencedID: eid,
				}
			}
		}
	}
	return &Error{
		Kind:         KindCrossReferencing,
		ReferencedID: slices.Sorted(maps.Keys(crossing))[0],
	}
}
