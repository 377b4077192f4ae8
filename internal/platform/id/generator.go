package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

const idBytes = 16

// Generator mints identifiers for rows the pipeline creates itself, which
// today means players first seen during goal attribution.
type Generator interface {
	NewID() (string, error)
}

// RandomGenerator issues hex-encoded crypto/rand identifiers. Collisions
// across concurrent imports are left to the store's unique constraints.
type RandomGenerator struct{}

func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{}
}

func (g *RandomGenerator) NewID() (string, error) {
	buf := make([]byte, idBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}

	return hex.EncodeToString(buf), nil
}
