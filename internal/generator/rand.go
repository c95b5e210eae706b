package generator

import "math/rand/v2"

// defaultRandSource delegates to math/rand/v2's auto-seeded global source
// when the caller injects none.
type defaultRandSource struct{}

func (defaultRandSource) IntN(n int) int {
	return rand.IntN(n)
}
