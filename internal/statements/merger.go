// Package statements moves statements between entities while keeping every
// GUID prefixed with the ID of the entity that owns it.
package statements

import (
	"fmt"

	"github.com/lherron/lexq/internal/domain"
	"github.com/lherron/lexq/internal/guid"
)

// Merger appends statements from one entity onto another
type Merger interface {
	Merge(source domain.StatementList, target *domain.StatementList, targetID string) error
}

// GuidMerger is the default Merger. Each appended statement gets a fresh GUID
// from Generator.
type GuidMerger struct {
	Generator guid.Generator
}

// NewMerger creates a merger using the given GUID generator
func NewMerger(gen guid.Generator) *GuidMerger {
	return &GuidMerger{Generator: gen}
}

// RewriteGuid returns a copy of st carrying the given GUID. The original
// statement is left untouched.
func RewriteGuid(st domain.Statement, newGuid string) domain.Statement {
	out := st.Clone()
	out.GUID = newGuid
	return out
}

// Merge appends every statement in source to target, in order, with GUIDs
// owned by targetID. Content other than the GUID is preserved. On error
// target is not modified.
func (m *GuidMerger) Merge(source domain.StatementList, target *domain.StatementList, targetID string) error {
	if len(source) == 0 {
		return nil
	}

	moved := make(domain.StatementList, 0, len(source))
	for _, st := range source {
		g, err := m.Generator.NewGuid(targetID)
		if err != nil {
			return fmt.Errorf("failed to generate GUID for statement %s: %w", st.GUID, err)
		}
		moved = append(moved, RewriteGuid(st, g))
	}

	*target = append(*target, moved...)
	return nil
}

// Reassign returns a copy of list with every GUID regenerated for ownerID
func Reassign(list domain.StatementList, ownerID string, gen guid.Generator) (domain.StatementList, error) {
	var out domain.StatementList
	if err := NewMerger(gen).Merge(list, &out, ownerID); err != nil {
		return nil, err
	}
	return out, nil
}
