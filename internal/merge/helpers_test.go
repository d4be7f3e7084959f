package merge

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lherron/lexq/internal/domain"
	"github.com/lherron/lexq/internal/guid"
	"github.com/lherron/lexq/internal/statements"
)

const (
	english = "Q1860"
	noun    = "Q1084"
	verb    = "Q24905"
	plural  = "Q146786"
	british = "Q47"
)

// countingGenerator hands out predictable GUIDs: <entity>$g<n>
type countingGenerator struct {
	n int
}

func (g *countingGenerator) NewGuid(entityID string) (string, error) {
	g.n++
	return fmt.Sprintf("%s$g%d", entityID, g.n), nil
}

type brokenGenerator struct{}

func (brokenGenerator) NewGuid(string) (string, error) {
	return "", errors.New("generator unavailable")
}

// stubMerger returns a fixed error from every call
type stubMerger struct {
	err error
}

func (s stubMerger) Merge(domain.StatementList, *domain.StatementList, string) error {
	return s.err
}

func newMerger() *LexemeMerger {
	return NewLexemeMerger(statements.NewMerger(&countingGenerator{}))
}

func newEnglishNoun(lexemeID string) *domain.Lexeme {
	return domain.NewLexeme(lexemeID, english, noun)
}

func refStatement(ownerID, property, value string) domain.Statement {
	return domain.Statement{
		GUID: ownerID + "$seed-" + strings.ToLower(property) + "-" + value,
		MainSnak: domain.Snak{
			Type:     domain.SnakTypeValue,
			Property: property,
			Value:    &domain.DataValue{Type: domain.ValueTypeEntityID, EntityID: value},
		},
		Rank: domain.RankNormal,
	}
}

func textStatement(ownerID, property, text string) domain.Statement {
	return domain.Statement{
		GUID: ownerID + "$seed-" + strings.ToLower(property) + "-" + text,
		MainSnak: domain.Snak{
			Type:     domain.SnakTypeValue,
			Property: property,
			Value:    &domain.DataValue{Type: domain.ValueTypeString, Text: text},
		},
		Rank: domain.RankNormal,
	}
}

// addForm adds a form and returns a pointer to it. The pointer is only
// valid until the next form is added.
func addForm(l *domain.Lexeme, reps domain.TermList, features ...string) *domain.Form {
	formID := l.AddForm(reps, features)
	return &l.Forms[l.FormIndex(formID)]
}

func addSense(l *domain.Lexeme, glosses domain.TermList) *domain.Sense {
	senseID := l.AddSense(glosses)
	return &l.Senses[l.SenseIndex(senseID)]
}

// ownersConsistent reports the first statement whose GUID is not owned by
// the entity holding it.
func ownersConsistent(l *domain.Lexeme) error {
	check := func(ownerID string, list domain.StatementList) error {
		for _, st := range list {
			if !guid.HasOwner(st.GUID, ownerID) {
				return fmt.Errorf("statement %s held by %s", st.GUID, ownerID)
			}
		}
		return nil
	}
	if err := check(l.ID, l.Statements); err != nil {
		return err
	}
	for _, f := range l.Forms {
		if err := check(f.ID, f.Statements); err != nil {
			return err
		}
	}
	for _, s := range l.Senses {
		if err := check(s.ID, s.Statements); err != nil {
			return err
		}
	}
	return nil
}
