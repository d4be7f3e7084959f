package domain

import (
	"slices"
	"time"

	"github.com/lherron/lexq/internal/id"
)

// SnakType represents how a snak carries its value
type SnakType string

const (
	SnakTypeValue     SnakType = "value"
	SnakTypeSomeValue SnakType = "somevalue"
	SnakTypeNoValue   SnakType = "novalue"
)

// ValueType represents the kind of data value held by a value snak
type ValueType string

const (
	ValueTypeEntityID     ValueType = "wikibase-entityid"
	ValueTypeString       ValueType = "string"
	ValueTypeMonolingual  ValueType = "monolingualtext"
	ValueTypeQuantity     ValueType = "quantity"
	ValueTypeExternalLink ValueType = "url"
)

// StatementRank represents the rank of a statement
type StatementRank string

const (
	RankPreferred  StatementRank = "preferred"
	RankNormal     StatementRank = "normal"
	RankDeprecated StatementRank = "deprecated"
)

// TermList maps a language code to a text. At most one text per language.
type TermList map[string]string

// Clone returns an independent copy of the term list
func (tl TermList) Clone() TermList {
	out := make(TermList, len(tl))
	for lang, text := range tl {
		out[lang] = text
	}
	return out
}

// Has reports whether the list has a term in the given language
func (tl TermList) Has(lang string) bool {
	_, ok := tl[lang]
	return ok
}

// Languages returns the term languages in sorted order
func (tl TermList) Languages() []string {
	langs := make([]string, 0, len(tl))
	for lang := range tl {
		langs = append(langs, lang)
	}
	slices.Sort(langs)
	return langs
}

// DataValue is the value carried by a value snak
type DataValue struct {
	Type     ValueType `json:"type" yaml:"type"`
	EntityID string    `json:"entity_id,omitempty" yaml:"entity_id,omitempty"`
	Text     string    `json:"text,omitempty" yaml:"text,omitempty"`
	Language string    `json:"language,omitempty" yaml:"language,omitempty"`
}

// Snak is a property/value pair
type Snak struct {
	Type     SnakType   `json:"snaktype" yaml:"snaktype"`
	Property string     `json:"property" yaml:"property"`
	Value    *DataValue `json:"datavalue,omitempty" yaml:"datavalue,omitempty"`
}

// ReferencedEntityID returns the entity ID held as the snak's value, if any
func (s Snak) ReferencedEntityID() (string, bool) {
	if s.Type != SnakTypeValue || s.Value == nil || s.Value.Type != ValueTypeEntityID {
		return "", false
	}
	return s.Value.EntityID, s.Value.EntityID != ""
}

func (s Snak) clone() Snak {
	if s.Value != nil {
		v := *s.Value
		s.Value = &v
	}
	return s
}

// Reference is a group of snaks backing a statement
type Reference struct {
	Snaks []Snak `json:"snaks" yaml:"snaks"`
}

// Statement is a claim attached to an entity. Its GUID is prefixed with the
// serialized ID of the entity that owns it.
type Statement struct {
	GUID       string        `json:"id" yaml:"id"`
	MainSnak   Snak          `json:"mainsnak" yaml:"mainsnak"`
	Qualifiers []Snak        `json:"qualifiers,omitempty" yaml:"qualifiers,omitempty"`
	References []Reference   `json:"references,omitempty" yaml:"references,omitempty"`
	Rank       StatementRank `json:"rank" yaml:"rank"`
}

// Clone returns a deep copy of the statement
func (st Statement) Clone() Statement {
	out := st
	out.MainSnak = st.MainSnak.clone()
	if st.Qualifiers != nil {
		out.Qualifiers = make([]Snak, len(st.Qualifiers))
		for i, q := range st.Qualifiers {
			out.Qualifiers[i] = q.clone()
		}
	}
	if st.References != nil {
		out.References = make([]Reference, len(st.References))
		for i, ref := range st.References {
			snaks := make([]Snak, len(ref.Snaks))
			for j, s := range ref.Snaks {
				snaks[j] = s.clone()
			}
			out.References[i] = Reference{Snaks: snaks}
		}
	}
	return out
}

// ReferencedEntityIDs returns every entity ID used as a value in the main
// snak, qualifiers and references, in that order. The statement's own
// subject is not included.
func (st Statement) ReferencedEntityIDs() []string {
	var ids []string
	if eid, ok := st.MainSnak.ReferencedEntityID(); ok {
		ids = append(ids, eid)
	}
	for _, q := range st.Qualifiers {
		if eid, ok := q.ReferencedEntityID(); ok {
			ids = append(ids, eid)
		}
	}
	for _, ref := range st.References {
		for _, s := range ref.Snaks {
			if eid, ok := s.ReferencedEntityID(); ok {
				ids = append(ids, eid)
			}
		}
	}
	return ids
}

// StatementList is an ordered collection of statements
type StatementList []Statement

// Clone returns a deep copy of the list
func (sl StatementList) Clone() StatementList {
	if sl == nil {
		return nil
	}
	out := make(StatementList, len(sl))
	for i, st := range sl {
		out[i] = st.Clone()
	}
	return out
}

// Form is a spelling or inflection of a lexeme
type Form struct {
	ID                  string        `json:"id" yaml:"id"`
	Representations     TermList      `json:"representations" yaml:"representations"`
	GrammaticalFeatures []string      `json:"grammatical_features" yaml:"grammatical_features"`
	Statements          StatementList `json:"claims,omitempty" yaml:"claims,omitempty"`
}

// Clone returns a deep copy of the form
func (f Form) Clone() Form {
	return Form{
		ID:                  f.ID,
		Representations:     f.Representations.Clone(),
		GrammaticalFeatures: slices.Clone(f.GrammaticalFeatures),
		Statements:          f.Statements.Clone(),
	}
}

// Sense is a meaning of a lexeme
type Sense struct {
	ID         string        `json:"id" yaml:"id"`
	Glosses    TermList      `json:"glosses" yaml:"glosses"`
	Statements StatementList `json:"claims,omitempty" yaml:"claims,omitempty"`
}

// Clone returns a deep copy of the sense
func (s Sense) Clone() Sense {
	return Sense{
		ID:         s.ID,
		Glosses:    s.Glosses.Clone(),
		Statements: s.Statements.Clone(),
	}
}

// Lexeme is a lexicographic entry with its forms and senses.
//
// NextFormID and NextSenseID are the counters used to allocate form and sense
// IDs. They only grow, so an ID is never handed out twice even after the
// form or sense carrying it was removed.
type Lexeme struct {
	ID              string        `json:"id" yaml:"id"`
	Lemmas          TermList      `json:"lemmas" yaml:"lemmas"`
	Language        string        `json:"language" yaml:"language"`
	LexicalCategory string        `json:"lexical_category" yaml:"lexical_category"`
	Statements      StatementList `json:"claims,omitempty" yaml:"claims,omitempty"`
	Forms           []Form        `json:"forms" yaml:"forms"`
	Senses          []Sense       `json:"senses" yaml:"senses"`
	NextFormID      int           `json:"next_form_id" yaml:"next_form_id"`
	NextSenseID     int           `json:"next_sense_id" yaml:"next_sense_id"`
}

// NewLexeme creates an empty lexeme
func NewLexeme(lexemeID, language, lexicalCategory string) *Lexeme {
	return &Lexeme{
		ID:              lexemeID,
		Lemmas:          TermList{},
		Language:        language,
		LexicalCategory: lexicalCategory,
		Forms:           []Form{},
		Senses:          []Sense{},
		NextFormID:      1,
		NextSenseID:     1,
	}
}

// Normalize fills nil collections and raises the ID counters above every
// form and sense ID already present. Call it after decoding a document.
func (l *Lexeme) Normalize() {
	if l.Lemmas == nil {
		l.Lemmas = TermList{}
	}
	if l.Forms == nil {
		l.Forms = []Form{}
	}
	if l.Senses == nil {
		l.Senses = []Sense{}
	}
	for i := range l.Forms {
		if l.Forms[i].Representations == nil {
			l.Forms[i].Representations = TermList{}
		}
	}
	for i := range l.Senses {
		if l.Senses[i].Glosses == nil {
			l.Senses[i].Glosses = TermList{}
		}
	}
	l.raiseFormCounter()
	l.raiseSenseCounter()
}

// raiseFormCounter moves NextFormID past every form ID already present
func (l *Lexeme) raiseFormCounter() {
	if l.NextFormID < 1 {
		l.NextFormID = 1
	}
	for _, f := range l.Forms {
		if _, seq, err := id.Parse(f.ID); err == nil && seq >= l.NextFormID {
			l.NextFormID = seq + 1
		}
	}
}

func (l *Lexeme) raiseSenseCounter() {
	if l.NextSenseID < 1 {
		l.NextSenseID = 1
	}
	for _, s := range l.Senses {
		if _, seq, err := id.Parse(s.ID); err == nil && seq >= l.NextSenseID {
			l.NextSenseID = seq + 1
		}
	}
}

// AddForm appends a new form with the given representations and
// grammatical features and returns the ID the lexeme allocated for it.
// The statements of the new form start empty. The ID is never one a form of
// the lexeme already has, even when the counter lags behind.
func (l *Lexeme) AddForm(representations TermList, grammaticalFeatures []string) string {
	l.raiseFormCounter()
	formID := id.FormatForm(l.ID, l.NextFormID)
	l.NextFormID++
	l.Forms = append(l.Forms, Form{
		ID:                  formID,
		Representations:     representations.Clone(),
		GrammaticalFeatures: slices.Clone(grammaticalFeatures),
	})
	return formID
}

// AddSense appends a new sense with the given glosses and returns the ID the
// lexeme allocated for it.
func (l *Lexeme) AddSense(glosses TermList) string {
	l.raiseSenseCounter()
	senseID := id.FormatSense(l.ID, l.NextSenseID)
	l.NextSenseID++
	l.Senses = append(l.Senses, Sense{
		ID:      senseID,
		Glosses: glosses.Clone(),
	})
	return senseID
}

// FormIndex returns the position of the form with the given ID, or -1
func (l *Lexeme) FormIndex(formID string) int {
	return slices.IndexFunc(l.Forms, func(f Form) bool { return f.ID == formID })
}

// SenseIndex returns the position of the sense with the given ID, or -1
func (l *Lexeme) SenseIndex(senseID string) int {
	return slices.IndexFunc(l.Senses, func(s Sense) bool { return s.ID == senseID })
}

// RemoveForm removes the form with the given ID. The counter is not rolled
// back.
func (l *Lexeme) RemoveForm(formID string) bool {
	i := l.FormIndex(formID)
	if i < 0 {
		return false
	}
	l.Forms = slices.Delete(l.Forms, i, i+1)
	return true
}

// RemoveSense removes the sense with the given ID. The counter is not rolled
// back.
func (l *Lexeme) RemoveSense(senseID string) bool {
	i := l.SenseIndex(senseID)
	if i < 0 {
		return false
	}
	l.Senses = slices.Delete(l.Senses, i, i+1)
	return true
}

// Clone returns a deep copy of the lexeme
func (l *Lexeme) Clone() *Lexeme {
	out := &Lexeme{
		ID:              l.ID,
		Lemmas:          l.Lemmas.Clone(),
		Language:        l.Language,
		LexicalCategory: l.LexicalCategory,
		Statements:      l.Statements.Clone(),
		Forms:           make([]Form, len(l.Forms)),
		Senses:          make([]Sense, len(l.Senses)),
		NextFormID:      l.NextFormID,
		NextSenseID:     l.NextSenseID,
	}
	for i, f := range l.Forms {
		out.Forms[i] = f.Clone()
	}
	for i, s := range l.Senses {
		out.Senses[i] = s.Clone()
	}
	return out
}

// EditInfo describes who made an edit and why
type EditInfo struct {
	Actor   string
	Summary string
	Bot     bool
}

// Event represents an event in the event log
type Event struct {
	ID           int64     `json:"id" db:"id"`
	Timestamp    time.Time `json:"timestamp" db:"timestamp"`
	Actor        *string   `json:"actor,omitempty" db:"actor"`
	ResourceType string    `json:"resource_type" db:"resource_type"`
	ResourceID   *string   `json:"resource_id,omitempty" db:"resource_id"`
	EventType    string    `json:"event_type" db:"event_type"`
	Revision     *int64    `json:"revision,omitempty" db:"revision"`
	Payload      *string   `json:"payload,omitempty" db:"payload"` // JSON
}

// Actor is someone allowed to edit lexemes
type Actor struct {
	Slug      string    `json:"slug"`
	Role      string    `json:"role"` // editor, admin, bot
	Blocked   bool      `json:"blocked"`
	CreatedAt time.Time `json:"created_at"`
}
