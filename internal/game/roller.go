package game

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
)

// Roller draws uniform integers in [0, n). *rand.Rand satisfies it.
type Roller interface {
	IntN(n int) int
}

// NewRoller returns a PCG source seeded from crypto/rand.
func NewRoller() (Roller, error) {
	var b [16]byte
	if _, err := crand.Read(b[:]); err != nil {
		return nil, fmt.Errorf("read random seed: %w", err)
	}
	return rand.New(rand.NewPCG(binary.LittleEndian.Uint64(b[:8]), binary.LittleEndian.Uint64(b[8:]))), nil
}

// NewSeededRoller is deterministic for a given seed.
func NewSeededRoller(seed uint64) Roller {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func rollDie(r Roller) int {
	return r.IntN(6) + 1
}
