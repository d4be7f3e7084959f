package id

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	lexemeIDPattern   = regexp.MustCompile(`^L[1-9]\d*$`)
	formIDPattern     = regexp.MustCompile(`^(L[1-9]\d*)-F([1-9]\d*)$`)
	senseIDPattern    = regexp.MustCompile(`^(L[1-9]\d*)-S([1-9]\d*)$`)
	itemIDPattern     = regexp.MustCompile(`^Q[1-9]\d*$`)
	propertyIDPattern = regexp.MustCompile(`^P[1-9]\d*$`)
)

// Type represents the kind of entity an ID refers to
type Type string

const (
	TypeLexeme   Type = "lexeme"
	TypeForm     Type = "form"
	TypeSense    Type = "sense"
	TypeItem     Type = "item"
	TypeProperty Type = "property"
)

// FormatLexeme formats a lexeme ID
func FormatLexeme(seq int) string {
	return fmt.Sprintf("L%d", seq)
}

// FormatForm formats a form ID scoped to its lexeme
func FormatForm(lexemeID string, seq int) string {
	return fmt.Sprintf("%s-F%d", lexemeID, seq)
}

// FormatSense formats a sense ID scoped to its lexeme
func FormatSense(lexemeID string, seq int) string {
	return fmt.Sprintf("%s-S%d", lexemeID, seq)
}

// Parse parses an entity ID and returns its type and sequence number.
// For forms and senses the sequence is the one local to the owning lexeme.
func Parse(id string) (Type, int, error) {
	id = strings.TrimSpace(id)

	switch {
	case lexemeIDPattern.MatchString(id):
		seq, _ := strconv.Atoi(id[1:])
		return TypeLexeme, seq, nil
	case formIDPattern.MatchString(id):
		m := formIDPattern.FindStringSubmatch(id)
		seq, _ := strconv.Atoi(m[2])
		return TypeForm, seq, nil
	case senseIDPattern.MatchString(id):
		m := senseIDPattern.FindStringSubmatch(id)
		seq, _ := strconv.Atoi(m[2])
		return TypeSense, seq, nil
	case itemIDPattern.MatchString(id):
		seq, _ := strconv.Atoi(id[1:])
		return TypeItem, seq, nil
	case propertyIDPattern.MatchString(id):
		seq, _ := strconv.Atoi(id[1:])
		return TypeProperty, seq, nil
	default:
		return "", 0, fmt.Errorf("invalid entity ID format: %s", id)
	}
}

// LexemeOf returns the lexeme ID an ID belongs to. Lexeme IDs belong to
// themselves; form and sense IDs belong to the lexeme in their prefix.
// Any other ID returns false.
func LexemeOf(id string) (string, bool) {
	if lexemeIDPattern.MatchString(id) {
		return id, true
	}
	if m := formIDPattern.FindStringSubmatch(id); m != nil {
		return m[1], true
	}
	if m := senseIDPattern.FindStringSubmatch(id); m != nil {
		return m[1], true
	}
	return "", false
}

// IsLexemeID checks if a string is a valid lexeme ID
func IsLexemeID(s string) bool {
	return lexemeIDPattern.MatchString(s)
}

// IsEntityID checks if a string is any valid entity ID
func IsEntityID(s string) bool {
	_, _, err := Parse(s)
	return err == nil
}
