package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateActorRole(t *testing.T) {
	tests := []struct {
		name    string
		role    string
		wantErr bool
	}{
		{name: "editor", role: "editor", wantErr: false},
		{name: "admin", role: "admin", wantErr: false},
		{name: "bot", role: "bot", wantErr: false},
		{name: "human", role: "human", wantErr: true},
		{name: "empty", role: "", wantErr: true},
		{name: "uppercase", role: "ADMIN", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateActorRole(tt.role)
			if tt.wantErr && err == nil {
				t.Error("ValidateActorRole() expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("ValidateActorRole() unexpected error: %v", err)
			}
		})
	}
}

func TestValidateLexemeID(t *testing.T) {
	for _, valid := range []string{"L1", "L42"} {
		if err := ValidateLexemeID(valid); err != nil {
			t.Errorf("ValidateLexemeID(%q) unexpected error: %v", valid, err)
		}
	}
	for _, invalid := range []string{"", "Q1", "L1-F1", "L0", "lexeme"} {
		if err := ValidateLexemeID(invalid); err == nil {
			t.Errorf("ValidateLexemeID(%q) expected error, got nil", invalid)
		}
	}
}

func validLexeme() *Lexeme {
	l := NewLexeme("L3", "Q1860", "Q1084")
	l.Lemmas["en"] = "color"
	l.Statements = StatementList{{
		GUID:     "L3$0b7c1c5e-5f0a-4f5e-8f34-9d2c3a7b1e11",
		MainSnak: Snak{Type: SnakTypeValue, Property: "P5137", Value: &DataValue{Type: ValueTypeEntityID, EntityID: "Q1075"}},
		Rank:     RankNormal,
	}}
	formID := l.AddForm(TermList{"en": "colors"}, []string{"Q146786"})
	l.Forms[0].Statements = StatementList{{
		GUID:     formID + "$a",
		MainSnak: Snak{Type: SnakTypeNoValue, Property: "P1"},
		Rank:     RankNormal,
	}}
	l.AddSense(TermList{"en": "hue"})
	return l
}

func TestValidateLexeme(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(l *Lexeme)
		wantErr string
	}{
		{name: "valid", mutate: func(l *Lexeme) {}},
		{name: "bad id", mutate: func(l *Lexeme) { l.ID = "X1" }, wantErr: "invalid lexeme ID"},
		{name: "bad language", mutate: func(l *Lexeme) { l.Language = "L1" }, wantErr: "invalid language"},
		{name: "bad category", mutate: func(l *Lexeme) { l.LexicalCategory = "" }, wantErr: "invalid lexical category"},
		{name: "empty lemma text", mutate: func(l *Lexeme) { l.Lemmas["de"] = " " }, wantErr: "empty text"},
		{
			name:    "statement owned by another entity",
			mutate:  func(l *Lexeme) { l.Statements[0].GUID = "L4$x" },
			wantErr: "is not owned by L3",
		},
		{
			name:    "form statement owned by lexeme",
			mutate:  func(l *Lexeme) { l.Forms[0].Statements[0].GUID = "L3$x" },
			wantErr: "is not owned by L3-F1",
		},
		{
			name:    "value snak without value",
			mutate:  func(l *Lexeme) { l.Statements[0].MainSnak.Value = nil },
			wantErr: "without a value",
		},
		{
			name:    "statement without property",
			mutate:  func(l *Lexeme) { l.Forms[0].Statements[0].MainSnak.Property = "" },
			wantErr: "invalid property ID",
		},
		{
			name: "qualifier with item as property",
			mutate: func(l *Lexeme) {
				l.Statements[0].Qualifiers = []Snak{{Type: SnakTypeNoValue, Property: "Q5"}}
			},
			wantErr: "invalid property ID",
		},
		{
			name:    "malformed entity value",
			mutate:  func(l *Lexeme) { l.Statements[0].MainSnak.Value.EntityID = "color" },
			wantErr: "invalid entity ID",
		},
		{
			name:   "sense reference value",
			mutate: func(l *Lexeme) { l.Statements[0].MainSnak.Value.EntityID = "L9-S2" },
		},
		{
			name:    "form of another lexeme",
			mutate:  func(l *Lexeme) { l.Forms[0].ID = "L4-F1"; l.Forms[0].Statements = nil },
			wantErr: "does not belong",
		},
		{
			name: "duplicate form",
			mutate: func(l *Lexeme) {
				l.Forms = append(l.Forms, l.Forms[0].Clone())
			},
			wantErr: "duplicate form ID",
		},
		{
			name:    "sense above counter",
			mutate:  func(l *Lexeme) { l.Senses[0].ID = "L3-S9" },
			wantErr: "not below",
		},
		{
			name:    "sense with form ID",
			mutate:  func(l *Lexeme) { l.Senses[0].ID = "L3-F1" },
			wantErr: "invalid sense ID",
		},
		{
			name:    "bad grammatical feature",
			mutate:  func(l *Lexeme) { l.Forms[0].GrammaticalFeatures = []string{"plural"} },
			wantErr: "invalid grammatical feature",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := validLexeme()
			tt.mutate(l)
			err := ValidateLexeme(l)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("ValidateLexeme() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("ValidateLexeme() expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ValidateLexeme() error = %q, want it to contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestRedirectError(t *testing.T) {
	var err error = &RedirectError{ID: "L1", Target: "L2"}
	var re *RedirectError
	if !errors.As(err, &re) {
		t.Fatal("expected RedirectError")
	}
	if got := err.Error(); got != "lexeme L1 is a redirect to L2" {
		t.Errorf("RedirectError.Error() = %q", got)
	}
}

func TestCheckETag(t *testing.T) {
	tests := []struct {
		name     string
		expected int64
		actual   int64
		wantErr  bool
	}{
		{
			name:     "matching etags",
			expected: 123,
			actual:   123,
			wantErr:  false,
		},
		{
			name:     "different etags",
			expected: 123,
			actual:   456,
			wantErr:  true,
		},
		{
			name:     "zero etags matching",
			expected: 0,
			actual:   0,
			wantErr:  false,
		},
		{
			name:     "zero vs non-zero",
			expected: 0,
			actual:   1,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckETag(tt.expected, tt.actual)
			if tt.wantErr {
				if err == nil {
					t.Error("CheckETag() expected error, got nil")
					return
				}
				// Verify it's the correct error type
				var etagErr *ETagMismatchError
				if !errors.As(err, &etagErr) {
					t.Errorf("CheckETag() error type = %T, want *ETagMismatchError", err)
					return
				}
				if etagErr.Expected != tt.expected {
					t.Errorf("ETagMismatchError.Expected = %d, want %d", etagErr.Expected, tt.expected)
				}
				if etagErr.Actual != tt.actual {
					t.Errorf("ETagMismatchError.Actual = %d, want %d", etagErr.Actual, tt.actual)
				}
			} else {
				if err != nil {
					t.Errorf("CheckETag() unexpected error: %v", err)
				}
			}
		})
	}
}

func TestETagMismatchError(t *testing.T) {
	err := &ETagMismatchError{
		Expected: 123,
		Actual:   456,
	}

	want := "etag mismatch: expected 123, got 456"
	if got := err.Error(); got != want {
		t.Errorf("ETagMismatchError.Error() = %q, want %q", got, want)
	}
}

// Benchmark tests
func BenchmarkValidateLexeme(b *testing.B) {
	l := validLexeme()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ValidateLexeme(l)
	}
}

func BenchmarkCheckETag(b *testing.B) {
	for i := 0; i < b.N; i++ {
		CheckETag(123, 123)
	}
}
