// Package guid generates and parses statement GUIDs. A GUID has the form
// "<entity id>$<uuid>", where the entity is the statement's owner.
package guid

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Separator joins the owning entity ID and the random part of a GUID
const Separator = "$"

// Generator produces statement GUIDs scoped to an entity
type Generator interface {
	NewGuid(entityID string) (string, error)
}

// UUIDGenerator generates GUIDs from random (v4) UUIDs
type UUIDGenerator struct{}

// NewGenerator returns the default GUID generator
func NewGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// NewGuid returns a fresh GUID owned by entityID
func (UUIDGenerator) NewGuid(entityID string) (string, error) {
	if entityID == "" {
		return "", fmt.Errorf("cannot generate statement GUID: empty entity ID")
	}
	u, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("failed to generate uuid: %w", err)
	}
	return entityID + Separator + u.String(), nil
}

// OwnerOf returns the entity ID prefix of a GUID
func OwnerOf(guid string) (string, error) {
	owner, rest, ok := strings.Cut(guid, Separator)
	if !ok || owner == "" || rest == "" {
		return "", fmt.Errorf("invalid statement GUID: %q", guid)
	}
	return owner, nil
}

// HasOwner reports whether the GUID is prefixed with the given entity ID
func HasOwner(guid, entityID string) bool {
	owner, err := OwnerOf(guid)
	return err == nil && owner == entityID
}
