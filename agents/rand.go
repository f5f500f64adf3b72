package agents

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
	"sync"
)

// lockedRand lets one seeded generator serve battles running on different goroutines.
type lockedRand struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func newLockedRand(seed *rand.PCG) *lockedRand {
	if seed == nil {
		random := RandomSeed()
		seed = &random
	}
	return &lockedRand{rng: rand.New(seed)}
}

func (r *lockedRand) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.IntN(n)
}

func (r *lockedRand) Perm(n int) []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Perm(n)
}

func RandomSeed() rand.PCG {
	var randBytes [16]byte
	if _, err := cryptoRand.Read(randBytes[:]); err != nil {
		// crypto/rand only fails when the OS has no entropy source at all
		panic(err)
	}

	return *rand.NewPCG(binary.LittleEndian.Uint64(randBytes[0:8]), binary.LittleEndian.Uint64(randBytes[8:]))
}
