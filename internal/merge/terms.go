package merge

import "github.com/lherron/lexq/internal/domain"

// MergeTerms adds every term of source whose language target lacks and
// returns the resulting list. Existing target terms are never overwritten or
// removed; callers that must reject conflicting texts check before calling.
// target is updated in place and returned, unless it is nil and source adds
// something, in which case a new list is allocated.
func MergeTerms(source, target domain.TermList) domain.TermList {
	for _, lang := range source.Languages() {
		if target.Has(lang) {
			continue
		}
		if target == nil {
			target = domain.TermList{}
		}
		target[lang] = source[lang]
	}
	return target
}

// conflictingLanguages returns, sorted, every language present in both
// lists with different texts.
func conflictingLanguages(a, b domain.TermList) []string {
	var out []string
	for _, lang := range a.Languages() {
		if text, ok := b[lang]; ok && text != a[lang] {
			out = append(out, lang)
		}
	}
	return out
}

// HasAtLeastOneSharedTermAndNoConflicts reports whether two term lists agree
// on every language they share and share at least one identical term.
func HasAtLeastOneSharedTermAndNoConflicts(a, b domain.TermList) bool {
	shared := false
	for lang, text := range a {
		other, ok := b[lang]
		if !ok {
			continue
		}
		if other != text {
			return false
		}
		shared = true
	}
	return shared
}
