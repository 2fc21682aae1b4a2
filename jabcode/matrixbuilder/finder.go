package matrixbuilder

import (
	"github.com/jabcode/jabcode/jabcode/colorspace"
	"github.com/jabcode/jabcode/jabcode/symbol"
)

// DistanceToBorder is the module offset of the finder/alignment pattern core from a symbol edge.
const DistanceToBorder = 4

func set(sym *symbol.Symbol, x, y, color int) {
	sym.ModuleMatrix[y][x] = color
	sym.DataMap[y][x] = false
}

// PlaceFinderPatterns draws the three concentric finder-pattern rings at a master symbol's four
// corners, per createMatrix's index==0 branch in encoder.c: ring k=0 is the 1-module core, k=1
// and k=2 the two surrounding rings. Ring k=1 swaps the colors of FP0 and FP3 and of FP1 and
// FP2, so each corner's bands alternate between its own color and its vertical neighbor's.
func PlaceFinderPatterns(sym *symbol.Symbol, colorNumber int) {
	nc := symbol.BitsPerModule(colorNumber) - 1
	w := len(sym.ModuleMatrix[0])
	h := len(sym.ModuleMatrix)
	d := DistanceToBorder

	for k := 0; k < 3; k++ {
		for i := 0; i <= k; i++ {
			for j := 0; j <= k; j++ {
				if i != k && j != k {
					continue
				}
				var fp0, fp1, fp2, fp3 int
				if k%2 == 1 {
					fp0, fp1, fp2, fp3 = colorspace.FP3CoreColorByNc[nc], colorspace.FP2CoreColorByNc[nc], colorspace.FP1CoreColorByNc[nc], colorspace.FP0CoreColorByNc[nc]
				} else {
					fp0, fp1, fp2, fp3 = colorspace.FP0CoreColorByNc[nc], colorspace.FP1CoreColorByNc[nc], colorspace.FP2CoreColorByNc[nc], colorspace.FP3CoreColorByNc[nc]
				}

				// top-left (FP0)
				set(sym, d-j-1, d-(i+1), fp0)
				set(sym, d+j-1, d+(i-1), fp0)
				// top-right (FP1)
				set(sym, w-(d-1)-j-1, d-(i+1), fp1)
				set(sym, w-(d-1)+j-1, d+(i-1), fp1)
				// bottom-right (FP2)
				set(sym, w-(d-1)-j-1, h-d+i, fp2)
				set(sym, w-(d-1)+j-1, h-d-i, fp2)
				// bottom-left (FP3)
				set(sym, d-j-1, h-d+i, fp3)
				set(sym, d+j-1, h-d-i, fp3)
			}
		}
	}
}

// PlaceSlaveFinderRings draws the smaller two-ring finder alignment markers at a slave symbol's
// four corners, per createMatrix's else branch (index != 0): both rings share one color per
// corner, alternating between the APX and APN core colors by ring parity.
func PlaceSlaveFinderRings(sym *symbol.Symbol, colorNumber int) {
	nc := symbol.BitsPerModule(colorNumber) - 1
	w := len(sym.ModuleMatrix[0])
	h := len(sym.ModuleMatrix)
	d := DistanceToBorder

	for k := 0; k < 2; k++ {
		for i := 0; i <= k; i++ {
			for j := 0; j <= k; j++ {
				if i != k && j != k {
					continue
				}
				var color int
				if k%2 == 1 {
					color = colorspace.APXCoreColorByNc[nc]
				} else {
					color = colorspace.APNCoreColorByNc[nc]
				}
				set(sym, d-j-1, d-(i+1), color)
				set(sym, d+j-1, d+(i-1), color)
				set(sym, w-(d-1)-j-1, d-(i+1), color)
				set(sym, w-(d-1)+j-1, d+(i-1), color)
				set(sym, w-(d-1)-j-1, h-d+i, color)
				set(sym, w-(d-1)+j-1, h-d-i, color)
				set(sym, d-j-1, h-d+i, color)
				set(sym, d+j-1, h-d-i, color)
			}
		}
	}
}
