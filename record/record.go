// Package record defines the identity model shared by every collection: a
// record is any value exposing a stable 128-bit unique identifier, and two
// records are equal iff their identifiers are equal.
package record

import (
	"github.com/google/uuid"
)

// Identifier is implemented by any type that exposes a stable, externally
// immutable unique identifier. The persistence layer never inspects anything
// else.
type Identifier interface {
	ID() uuid.UUID
}

// Meta is meant to be embedded in application record types. It carries the
// identifier and nothing else.
type Meta struct {
	Id uuid.UUID `json:"id"`
}

// NewMeta generates a fresh identifier. Identifiers are assigned at
// construction time and never change afterwards.
func NewMeta() Meta {
	return Meta{Id: uuid.New()}
}

func (m Meta) ID() uuid.UUID {
	return m.Id
}

// Equal compares two records by identity. Field values are intentionally
// ignored, identity is defined solely over the identifier.
func Equal(a, b Identifier) bool {
	return a.ID() == b.ID()
}
