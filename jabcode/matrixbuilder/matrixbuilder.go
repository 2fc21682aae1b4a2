// Package matrixbuilder places finder patterns, alignment patterns, color palettes, metadata,
// and payload bits into a symbol's module matrix, mirroring createMatrix in encoder.c.
package matrixbuilder

import "github.com/jabcode/jabcode/jabcode/symbol"

// Build assembles sym's module matrix end to end: alignment patterns, finder/alignment-ring
// corners, (master only) metadata + color palette on the shared metadata snake, (slave only)
// color palette at the four rotated corners, then the encoded payload bits.
func Build(sym *symbol.Symbol, colorNumber int, metadataPartI, metadataPartII []byte, isDefaultMode bool, encoded []byte) {
	PlaceAlignmentPatterns(sym, colorNumber)

	if sym.IsMaster() {
		PlaceFinderPatterns(sym, colorNumber)
		PlaceMasterMetadataAndPalette(sym, colorNumber, metadataPartI, metadataPartII, isDefaultMode)
	} else {
		PlaceSlaveFinderRings(sym, colorNumber)
		PlaceSlaveColorPalette(sym, colorNumber)
	}

	PlaceData(sym, colorNumber, encoded)
}

// ReservedMap runs the same FP/AP/palette/metadata placement Build does on a scratch symbol of
// the given index/version, and returns only the resulting data_map -- which cell is data-bearing
// versus reserved. The decoder needs this to know which sampled modules to treat as payload
// before it has any payload to place, per the invariant that "the decoder data_map and encoder
// data_map differ only by origin (derived from the same deterministic placement rules)" (spec.md
// §3).
func ReservedMap(index int, version symbol.Version, colorNumber int, isDefaultMode bool) [][]bool {
	dummy := symbol.NewSymbol(index, version)
	var partI, partII []byte
	if index == 0 && !isDefaultMode {
		partI = make([]byte, symbol.MasterMetadataPart1Length)
		partII = make([]byte, symbol.MasterMetadataPart2Length)
	}
	Build(dummy, colorNumber, partI, partII, isDefaultMode, nil)
	return dummy.DataMap
}
