package matrixbuilder

import "github.com/jabcode/jabcode/jabcode/symbol"

// PlaceData packs encoded (bits_per_module bits per module) into every data-bearing module of
// sym, column by column, padding the tail with an alternating 0/1 pattern once encoded runs out,
// per createMatrix's "Data placement" pass in encoder.c.
func PlaceData(sym *symbol.Symbol, colorNumber int, encoded []byte) {
	bpm := symbol.BitsPerModule(colorNumber)
	w := len(sym.ModuleMatrix[0])
	h := len(sym.ModuleMatrix)

	written := 0
	padding := 0
	for startX := 0; startX < w; startX++ {
		for y := 0; y < h; y++ {
			x := startX
			if !sym.DataMap[y][x] {
				continue
			}
			color := 0
			for j := 0; j < bpm; j++ {
				var bit int
				if written < len(encoded) {
					bit = int(encoded[written])
				} else {
					bit = padding
					if padding == 0 {
						padding = 1
					} else {
						padding = 0
					}
				}
				color |= bit << (bpm - 1 - j)
				written++
			}
			sym.ModuleMatrix[y][x] = color
		}
	}
}
