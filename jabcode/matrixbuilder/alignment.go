package matrixbuilder

import (
	"github.com/jabcode/jabcode/jabcode/colorspace"
	"github.com/jabcode/jabcode/jabcode/symbol"
)

// PlaceAlignmentPatterns draws the interior 5+2-module alignment-pattern crosses, skipping the
// four corner positions (which coincide with the finder patterns placed separately). The
// diagonal pair's parity alternates by column (`left`) so the grid never reads as a second,
// regular grid of finders, per createMatrix's AP loop in encoder.c.
func PlaceAlignmentPatterns(sym *symbol.Symbol, colorNumber int) {
	nc := symbol.BitsPerModule(colorNumber) - 1
	apxCore := colorspace.APXCoreColorByNc[nc]
	apnCore := colorspace.APNCoreColorByNc[nc]

	numX := symbol.APNum(sym.Version.X)
	numY := symbol.APNum(sym.Version.Y)
	posX := symbol.APPositions(sym.Version.X)
	posY := symbol.APPositions(sym.Version.Y)

	for x := 0; x < numX; x++ {
		left := x%2 == 0
		for y := 0; y < numY; y++ {
			isCorner := (x == 0 && y == 0) || (x == 0 && y == numY-1) || (x == numX-1 && y == 0) || (x == numX-1 && y == numY-1)
			if !isCorner {
				xOff := posX[x] - 1
				yOff := posY[y] - 1
				if left {
					set(sym, xOff-1, yOff-1, apnCore)
					set(sym, xOff, yOff-1, apnCore)
					set(sym, xOff-1, yOff, apnCore)
					set(sym, xOff+1, yOff, apnCore)
					set(sym, xOff, yOff+1, apnCore)
					set(sym, xOff+1, yOff+1, apnCore)
					set(sym, xOff, yOff, apxCore)
				} else {
					set(sym, xOff+1, yOff-1, apnCore)
					set(sym, xOff, yOff-1, apnCore)
					set(sym, xOff-1, yOff, apnCore)
					set(sym, xOff+1, yOff, apnCore)
					set(sym, xOff, yOff+1, apnCore)
					set(sym, xOff-1, yOff+1, apnCore)
					set(sym, xOff, yOff, apxCore)
				}
			}
			left = !left
		}
	}
}
