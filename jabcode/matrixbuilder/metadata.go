package matrixbuilder

import (
	"github.com/jabcode/jabcode/jabcode/colorspace"
	"github.com/jabcode/jabcode/jabcode/symbol"
)

// MasterMetadataX, MasterMetadataY is the starting module of the master metadata snake.
const (
	MasterMetadataX = 6
	MasterMetadataY = 1
)

// PlaceMasterMetadataAndPalette walks the master symbol's metadata snake once, writing (in
// order) metadata Part I, the color palette, and metadata Part II -- mirroring the single shared
// cursor walk in createMatrix (encoder.c): all three sections advance the same (x,y) via
// NextMetadataModuleInMaster, so they must be placed together. partI and partII are the LDPC
// -encoded bit streams (0/1 per byte); both are empty when isDefaultMode is true.
func PlaceMasterMetadataAndPalette(sym *symbol.Symbol, colorNumber int, partI, partII []byte, isDefaultMode bool) {
	bpm := symbol.BitsPerModule(colorNumber)
	w := len(sym.ModuleMatrix[0])
	h := len(sym.ModuleMatrix)
	x, y := MasterMetadataX, MasterMetadataY
	moduleCount := 0

	advance := func() {
		moduleCount++
		NextMetadataModuleInMaster(h, w, moduleCount, &x, &y)
	}

	if !isDefaultMode {
		for i := 0; i < len(partI) && i < symbol.MasterMetadataPart1Length; i += 3 {
			val := int(partI[i])<<2 | int(partI[i+1])<<1 | int(partI[i+2])
			// Part I always draws from the 8-color sub-alphabet {0,3,6}, independent of the
			// symbol's actual color_number, so the decoder can read it before Nc is known
			// (spec.md §9 Open Question; decodeModuleNc enforces value in {0,3,6}).
			for c := 0; c < 2; c++ {
				color := symbol.NcColorEncodeTable[val][c]
				set(sym, x, y, color)
				advance()
			}
		}
	}

	paletteIndex := colorspace.ColorPaletteIndex(colorNumber)
	upper := colorNumber
	if upper > 64 {
		upper = 64
	}
	for i := 2; i < upper; i++ {
		for corner := 0; corner < symbol.ColorPaletteNumber; corner++ {
			color := paletteIndex[colorspace.MasterPlacementAt(corner, i)%colorNumber]
			set(sym, x, y, color)
			advance()
		}
	}

	if !isDefaultMode {
		idx := 0
		for idx < len(partII) {
			color := 0
			for j := 0; j < bpm && idx < len(partII); j++ {
				color |= int(partII[idx]) << (bpm - 1 - j)
				idx++
			}
			set(sym, x, y, color)
			advance()
		}
	}
}
