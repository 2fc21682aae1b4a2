package matrixbuilder

import (
	"github.com/jabcode/jabcode/jabcode/colorspace"
	"github.com/jabcode/jabcode/jabcode/symbol"
)

// PlaceSlaveColorPalette writes the color-palette modules into a slave symbol's four corners,
// each corner reusing SlavePalettePosition's coordinates rotated 90 degrees, per createMatrix's
// slave (index != 0) branch in encoder.c.
//
// SlavePalettePosition only tabulates 32 positions while color_number can require up to 62
// palette entries (min(color_number,64)-2); the reference table is undersized for the same
// reason master_palette_placement_index is (see DESIGN.md). This wraps with modulo 32 rather
// than reading past the table.
func PlaceSlaveColorPalette(sym *symbol.Symbol, colorNumber int) {
	w := len(sym.ModuleMatrix[0])
	h := len(sym.ModuleMatrix)
	paletteIndex := colorspace.ColorPaletteIndex(colorNumber)

	upper := colorNumber
	if upper > 64 {
		upper = 64
	}
	for i := 2; i < upper; i++ {
		pos := colorspace.SlavePalettePosition[(i-2)%len(colorspace.SlavePalettePosition)]
		px, py := pos[0], pos[1]
		color := paletteIndex[colorspace.SlavePlacementAt(i)%colorNumber]

		set(sym, px, py, color)                 // left
		set(sym, w-1-py, px, color)              // top
		set(sym, w-1-px, h-1-py, color)          // right
		set(sym, py, h-1-px, color)              // bottom
	}
}
