// Package interleave scatters and gathers encoded data bits with a deterministic Fisher-Yates
// shuffle so that a burst error in a photographed symbol spreads across many LDPC codewords
// instead of concentrating in one, per original_source/src/jabcode/interleave.c.
package interleave

import "github.com/jabcode/jabcode/jabcode/ldpc"

// Interleave returns a shuffled copy of data using the Fisher-Yates permutation seeded with
// ldpc.InterleaveSeed, mirroring interleaveData's in-place swap sequence.
func Interleave(data []byte) []byte {
	out := append([]byte(nil), data...)
	rng := ldpc.NewRNG(ldpc.InterleaveSeed)
	n := len(out)
	for i := 0; i < n; i++ {
		pos := nextPos(rng, n-i)
		out[n-1-i], out[pos] = out[pos], out[n-1-i]
	}
	return out
}

// Deinterleave reverses Interleave: it rebuilds the same index permutation and scatters data
// back into its pre-interleave positions, mirroring deinterleaveData.
func Deinterleave(data []byte) []byte {
	n := len(data)
	index := make([]int, n)
	for i := range index {
		index[i] = i
	}
	rng := ldpc.NewRNG(ldpc.InterleaveSeed)
	for i := 0; i < n; i++ {
		pos := nextPos(rng, n-i)
		index[n-1-i], index[pos] = index[pos], index[n-1-i]
	}

	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[index[i]] = data[i]
	}
	return out
}

// nextPos matches the C source's inline "(jab_int32)(lcg64_temper()/UINT32_MAX * remaining)"
// position draw, exposed here so Interleave/Deinterleave derive it identically.
func nextPos(rng *ldpc.RNG, remaining int) int {
	return int(float64(rng.Next()) / float64(^uint32(0)) * float64(remaining))
}
