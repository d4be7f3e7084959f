package merge

import (
	"github.com/lherron/lexq/internal/domain"
	"github.com/lherron/lexq/internal/statements"
)

// itemKind describes how the shared form/sense algorithm reaches into one
// kind of sub-entity.
type itemKind[T any] struct {
	items      func(*domain.Lexeme) *[]T
	id         func(*T) string
	terms      func(*T) *domain.TermList
	statements func(*T) *domain.StatementList

	// matches is the merge-time equality between a source and a target item
	matches func(source, target *T) bool

	// add appends an item with source's term data but no statements to the
	// lexeme and returns the ID the lexeme allocated for it
	add func(l *domain.Lexeme, source *T) string
}

// merge folds the items of source into target. Each source item, in order,
// is merged into the first not yet matched item that target had before the
// merge and that matches it. Source items without a match are added to
// target under a newly allocated ID. Target items are never removed.
func (k itemKind[T]) merge(source, target *domain.Lexeme, sm statements.Merger) error {
	sourceItems := *k.items(source)
	targetItems := k.items(target)
	existing := len(*targetItems)
	matched := make([]bool, existing)

	for si := range sourceItems {
		src := &sourceItems[si]

		ti := k.findMatch(src, (*targetItems)[:existing], matched)
		if ti >= 0 {
			matched[ti] = true
			dst := &(*targetItems)[ti]
			*k.terms(dst) = MergeTerms(*k.terms(src), *k.terms(dst))
			if err := sm.Merge(*k.statements(src), k.statements(dst), k.id(dst)); err != nil {
				return err
			}
			continue
		}

		newID := k.add(target, src)
		dst := &(*targetItems)[len(*targetItems)-1]
		if err := sm.Merge(*k.statements(src), k.statements(dst), newID); err != nil {
			return err
		}
	}

	return nil
}

func (k itemKind[T]) findMatch(src *T, candidates []T, matched []bool) int {
	for i := range candidates {
		if matched[i] {
			continue
		}
		if k.matches(src, &candidates[i]) {
			return i
		}
	}
	return -1
}

// FormsMatch reports whether two forms are the same form for merging
// purposes: their representations share a term and never contradict, and
// their grammatical features are equal as sets.
func FormsMatch(a, b domain.Form) bool {
	return HasAtLeastOneSharedTermAndNoConflicts(a.Representations, b.Representations) &&
		sameFeatureSet(a.GrammaticalFeatures, b.GrammaticalFeatures)
}

// SensesMatch reports whether two senses are the same sense for merging
// purposes: their glosses share a term and never contradict.
func SensesMatch(a, b domain.Sense) bool {
	return HasAtLeastOneSharedTermAndNoConflicts(a.Glosses, b.Glosses)
}

func sameFeatureSet(a, b []string) bool {
	setA := make(map[string]struct{}, len(a))
	for _, f := range a {
		setA[f] = struct{}{}
	}
	setB := make(map[string]struct{}, len(b))
	for _, f := range b {
		if _, ok := setA[f]; !ok {
			return false
		}
		setB[f] = struct{}{}
	}
	return len(setA) == len(setB)
}

var formKind = itemKind[domain.Form]{
	items:      func(l *domain.Lexeme) *[]domain.Form { return &l.Forms },
	id:         func(f *domain.Form) string { return f.ID },
	terms:      func(f *domain.Form) *domain.TermList { return &f.Representations },
	statements: func(f *domain.Form) *domain.StatementList { return &f.Statements },
	matches:    func(a, b *domain.Form) bool { return FormsMatch(*a, *b) },
	add: func(l *domain.Lexeme, f *domain.Form) string {
		return l.AddForm(f.Representations, f.GrammaticalFeatures)
	},
}

var senseKind = itemKind[domain.Sense]{
	items:      func(l *domain.Lexeme) *[]domain.Sense { return &l.Senses },
	id:         func(s *domain.Sense) string { return s.ID },
	terms:      func(s *domain.Sense) *domain.TermList { return &s.Glosses },
	statements: func(s *domain.Sense) *domain.StatementList { return &s.Statements },
	matches:    func(a, b *domain.Sense) bool { return SensesMatch(*a, *b) },
	add: func(l *domain.Lexeme, s *domain.Sense) string {
		return l.AddSense(s.Glosses)
	},
}

// FormsMerger merges the forms of one lexeme into another
type FormsMerger struct {
	Statements statements.Merger
}

// Merge folds source's forms into target's. Errors from the statements
// merger are returned as is.
func (m *FormsMerger) Merge(source, target *domain.Lexeme) error {
	return formKind.merge(source, target, m.Statements)
}

// SensesMerger merges the senses of one lexeme into another
type SensesMerger struct {
	Statements statements.Merger
}

// Merge folds source's senses into target's. Errors from the statements
// merger are returned as is.
func (m *SensesMerger) Merge(source, target *domain.Lexeme) error {
	return senseKind.merge(source, target, m.Statements)
}
