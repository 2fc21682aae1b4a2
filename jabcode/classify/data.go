package classify

import "github.com/jabcode/jabcode/jabcode/symbol"

// GatherDataModules reads every data-bearing module of matrix (per dataMap) in the same
// column-major order PlaceData wrote them in (start-column advancing by 1, then rows), returning
// the raw palette-index values as sampled.
func GatherDataModules(matrix [][]int, dataMap [][]bool) []int {
	w := len(dataMap[0])
	h := len(dataMap)
	out := make([]int, 0, w*h)
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			if dataMap[y][x] {
				out = append(out, matrix[y][x])
			}
		}
	}
	return out
}

// ExpandBits unpacks bitsPerModule-wide color values into a flat one-bit-per-byte stream, MSB
// first per module -- the inverse of PlaceData's packing.
func ExpandBits(values []int, colorNumber int) []byte {
	bpm := symbol.BitsPerModule(colorNumber)
	out := make([]byte, 0, len(values)*bpm)
	for _, v := range values {
		for j := bpm - 1; j >= 0; j-- {
			out = append(out, byte((v>>uint(j))&1))
		}
	}
	return out
}
