package render

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/lherron/lexq/internal/domain"
)

// LexemeJSON returns the canonical indented JSON of a lexeme
func LexemeJSON(l *domain.Lexeme) (string, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(l); err != nil {
		return "", fmt.Errorf("failed to encode lexeme %s: %w", l.ID, err)
	}
	return buf.String(), nil
}

// LexemeDiff returns a unified diff between two versions of a lexeme, or ""
// when they serialize identically.
func LexemeDiff(before, after *domain.Lexeme) (string, error) {
	a, err := LexemeJSON(before)
	if err != nil {
		return "", err
	}
	b, err := LexemeJSON(after)
	if err != nil {
		return "", err
	}
	if a == b {
		return "", nil
	}

	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(a),
		B:        difflib.SplitLines(b),
		FromFile: before.ID + " (current)",
		ToFile:   after.ID + " (merged)",
		Context:  3,
	}
	return difflib.GetUnifiedDiffString(diff)
}

// MergeSummary describes a merge in one line
func MergeSummary(sourceID, targetID string, targetRevision int64, dryRun bool) string {
	if dryRun {
		return fmt.Sprintf("would merge %s into %s (dry run, nothing saved)", sourceID, targetID)
	}
	return fmt.Sprintf("merged %s into %s (revision %d); %s now redirects to %s", sourceID, targetID, targetRevision, sourceID, targetID)
}
