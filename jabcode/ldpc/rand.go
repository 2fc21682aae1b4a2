// Package ldpc implements the Gallager-style LDPC error-correction layer: matrix construction,
// Gauss-Jordan reduction to a generator matrix, encoding, and hard-decision / belief-propagation
// decoding, per original_source/src/jabcode/ldpc.c.
package ldpc

// Seeds for the three deterministic uses of the shared LCG across the codec.
const (
	MetadataSeed   uint64 = 38545
	MessageSeed    uint64 = 785465
	InterleaveSeed uint64 = 226759
)

// RNG is a 64-bit linear congruential generator tempered by an MT-style four-step XOR-and-shift,
// matching original_source/src/jabcode/pseudo_random.c exactly. Its state is carried explicitly
// by the caller (never a package global) so two codecs can run concurrently from separate
// goroutines, per the spec's concurrency model.
type RNG struct {
	seed uint64
}

// NewRNG creates an RNG seeded with seed.
func NewRNG(seed uint64) *RNG {
	return &RNG{seed: seed}
}

func temper(x uint32) uint32 {
	x ^= x >> 11
	x ^= (x << 7) & 0x9D2C5680
	x ^= (x << 15) & 0xEFC60000
	x ^= x >> 18
	return x
}

// Next advances the generator and returns the next tempered 32-bit value.
func (r *RNG) Next() uint32 {
	r.seed = 6364136223846793005*r.seed + 1
	return temper(uint32(r.seed >> 32))
}

// Shuffle runs an in-place Fisher-Yates shuffle of perm (length n, assumed pre-filled 0..n-1),
// drawing one position for each step i from 0 to n-1 — the same sequence the C source inlines for
// its LDPC column permutation and interleaver. It returns nothing; the result is perm itself.
func (r *RNG) Shuffle(perm []int32) {
	n := len(perm)
	for i := 0; i < n; i++ {
		pos := int(float64(r.Next()) / float64(^uint32(0)) * float64(n-i))
		perm[n-1-i], perm[pos] = perm[pos], perm[n-1-i]
	}
}
