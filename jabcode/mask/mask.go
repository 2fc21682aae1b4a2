package mask

import (
	"golang.org/x/exp/slices"

	"github.com/jabcode/jabcode/jabcode/symbol"
)

// NumberOfMaskPatterns is the count of candidate XOR masks tried during encoding.
const NumberOfMaskPatterns = 8

// DefaultMaskingReference is the mask type assumed by a default-mode master whose metadata is
// never written to the grid, per spec.md §4.6's DEFAULT_MASKING_REFERENCE.
const DefaultMaskingReference = 0

// value computes the XOR mask for module (x, y) under maskType, per maskSymbols'/
// demaskSymbol's shared switch in mask.c.
func value(maskType, x, y, colorNumber int) int {
	var v int
	switch maskType {
	case 0:
		v = (x + y) % colorNumber
	case 1:
		v = x % colorNumber
	case 2:
		v = y % colorNumber
	case 3:
		v = (x/2 + y/3) % colorNumber
	case 4:
		v = (x/3 + y/2) % colorNumber
	case 5:
		v = ((x+y)/2 + (x+y)/3) % colorNumber
	case 6:
		v = ((x*x*y)%7 + (2*x*x+2*y)%19) % colorNumber
	case 7:
		v = ((x*y*y)%5 + (2*x+y*y)%13) % colorNumber
	}
	return v
}

// Apply XORs maskType into every data-bearing module of sym in place, per maskSymbols.
func Apply(sym *symbol.Symbol, colorNumber, maskType int) {
	for y, row := range sym.DataMap {
		for x, isData := range row {
			if !isData {
				continue
			}
			sym.ModuleMatrix[y][x] ^= value(maskType, x, y, colorNumber)
		}
	}
}

// matrixCopy returns an independent copy of sym's module matrix for trial masking.
func matrixCopy(sym *symbol.Symbol) [][]int {
	out := make([][]int, len(sym.ModuleMatrix))
	for i, row := range sym.ModuleMatrix {
		out[i] = append([]int(nil), row...)
	}
	return out
}

// SelectAndApply tries all eight mask patterns against sym, scores each with Evaluate, and
// leaves sym masked with whichever pattern scored lowest -- mirroring maskCode's single-symbol
// path. For a multi-symbol code, SelectAndApplyAll sums each symbol's Evaluate score per mask
// type; no merged code matrix is scored.
func SelectAndApply(sym *symbol.Symbol, colorNumber int) int {
	scores := make([]int, NumberOfMaskPatterns)
	for t := range scores {
		trial := matrixCopy(sym)
		for y, row := range sym.DataMap {
			for x, isData := range row {
				if isData {
					trial[y][x] ^= value(t, x, y, colorNumber)
				}
			}
		}
		scores[t] = Evaluate(trial, colorNumber)
	}
	bestType := slices.Index(scores, slices.Min(scores))
	Apply(sym, colorNumber, bestType)
	return bestType
}

// SelectAndApplyAll scores all eight mask types across every symbol of a (possibly multi-symbol)
// code jointly -- summing Evaluate over each symbol's trial matrix -- and applies whichever type
// scores lowest overall to every symbol, so a docked code carries one common mask_type candidate
// per mask.c's maskCode.
func SelectAndApplyAll(syms []*symbol.Symbol, colorNumber int) int {
	scores := make([]int, NumberOfMaskPatterns)
	for t := range scores {
		for _, sym := range syms {
			trial := matrixCopy(sym)
			for y, row := range sym.DataMap {
				for x, isData := range row {
					if isData {
						trial[y][x] ^= value(t, x, y, colorNumber)
					}
				}
			}
			scores[t] += Evaluate(trial, colorNumber)
		}
	}
	bestType := slices.Index(scores, slices.Min(scores))
	for _, sym := range syms {
		Apply(sym, colorNumber, bestType)
	}
	return bestType
}

// Demask reverses Apply given the decoded per-module color values in data, laid out in the same
// column-major (x outer, y inner) order PlaceData wrote them in, per demaskSymbol.
func Demask(data []int, dataMap [][]bool, maskType, colorNumber int) {
	width := len(dataMap[0])
	height := len(dataMap)
	count := 0
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			if !dataMap[y][x] {
				continue
			}
			if count > len(data)-1 {
				return
			}
			data[count] ^= value(maskType, x, y, colorNumber)
			count++
		}
	}
}
