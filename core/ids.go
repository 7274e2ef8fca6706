package core

import (
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
)

// NewID returns a random 128-bit identifier as 32 lowercase hex characters.
func NewID() string {
	id := uuid.New()
	return hex.EncodeToString(id[:])
}

// GenerateID draws IDs from gen until taken reports false, trying at most
// attempts times. Every namespace in relgraph uses it so that a collision is
// re-rolled rather than surfaced.
//
// Returns ErrDuplicateID only when all attempts collide.
func GenerateID(gen func() string, attempts int, taken func(string) bool) (string, error) {
	if attempts < 1 {
		attempts = 1
	}
	var id string
	for i := 0; i < attempts; i++ {
		id = gen()
		if id != "" && !taken(id) {
			return id, nil
		}
	}

	return "", fmt.Errorf("%w: %d generated IDs collided (last %q)", ErrDuplicateID, attempts, id)
}
