// Package idgen generates record identifiers decoupled from wall-clock time.
package idgen

import "github.com/google/uuid"

// Generator produces unique identifiers
type Generator interface {
	NewID() string
}

// UUIDGenerator returns random v4 UUIDs with a fixed prefix, e.g. "will-<uuid>"
type UUIDGenerator struct {
	prefix string
}

// NewUUIDGenerator creates a generator for prefix
func NewUUIDGenerator(prefix string) *UUIDGenerator {
	return &UUIDGenerator{prefix: prefix}
}

// NewID returns a new identifier
func (g *UUIDGenerator) NewID() string {
	return g.prefix + uuid.NewString()
}
