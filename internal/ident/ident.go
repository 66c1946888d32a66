// Package ident provides the identifier generators used for vault records.
package ident

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator produces opaque identifiers that are unique with
// overwhelming probability.
type Generator interface {
	NewID() string
}

// UUID generates random (version 4) UUID strings
type UUID struct{}

// NewID returns a new random UUID string
func (UUID) NewID() string {
	return uuid.NewString()
}

// Sequence generates deterministic identifiers of the form prefix-N.
// Useful where reproducible ids matter, e.g. in tests.
type Sequence struct {
	Prefix string
	n      atomic.Uint64
}

// NewSequence creates a Sequence starting at 1
func NewSequence(prefix string) *Sequence {
	return &Sequence{Prefix: prefix}
}

// NewID returns the next identifier in the sequence
func (s *Sequence) NewID() string {
	return fmt.Sprintf("%s-%d", s.Prefix, s.n.Add(1))
}
