// Package symbol models the JABCode Symbol/Metadata data model and the planning pass that
// assigns versions, ECC levels, docking positions, and payload slices before LDPC encoding.
package symbol

// MaxSymbolNumber is the largest number of symbols (including the master) one code may contain.
const MaxSymbolNumber = 61

// ColorPaletteNumber is the number of corner palette regions every symbol carries.
const ColorPaletteNumber = 4

const (
	MasterMetadataPart1Length       = 6
	MasterMetadataPart2Length       = 38
	MasterMetadataPart1ModuleNumber = 4
)

// DefaultECCLevel is the ECC level index used when the caller leaves symbol_ecc_levels[0] at 0.
const DefaultECCLevel = 3

// Position is a signed (x,y) offset on the 11x11 virtual placement grid, position 0 = master.
type Position struct{ X, Y int }

// SymbolPos mirrors original_source/src/jabcode/encoder.h's jab_symbol_pos: the decoding/search
// order of the 61 placement-grid slots around the master, nearest first.
var SymbolPos = [MaxSymbolNumber]Position{
	{0, 0},
	{0, -1}, {0, 1}, {-1, 0}, {1, 0}, {0, -2}, {-1, -1}, {1, -1}, {0, 2}, {-1, 1}, {1, 1},
	{-2, 0}, {2, 0}, {0, -3}, {-1, -2}, {1, -2}, {-2, -1}, {2, -1}, {0, 3}, {-1, 2}, {1, 2},
	{-2, 1}, {2, 1}, {-3, 0}, {3, 0}, {0, -4}, {-1, -3}, {1, -3}, {-2, -2}, {2, -2}, {-3, -1},
	{3, -1}, {0, 4}, {-1, 3}, {1, 3}, {-2, 2}, {2, 2}, {-3, 1}, {3, 1}, {-4, 0}, {4, 0},
	{0, -5}, {-1, -4}, {1, -4}, {-2, -3}, {2, -3}, {-3, -2}, {3, -2}, {-4, -1}, {4, -1}, {0, 5},
	{-1, 4}, {1, 4}, {-2, 3}, {2, 3}, {-3, 2}, {3, 2}, {-4, 1}, {4, 1}, {-5, 0}, {5, 0},
}

// ECCLevelCodeRate is the approximate code rate of each of the 11 ECC levels (0 unused, 1..10
// used), per ecclevel2coderate in encoder.h. Informational only; wc/wr drive the real math.
var ECCLevelCodeRate = [11]float64{0.55, 0.63, 0.57, 0.55, 0.50, 0.43, 0.34, 0.25, 0.20, 0.17, 0.14}

// ECCLevelWcWr gives the LDPC (wc,wr) pair for each ECC level, per ecclevel2wcwr in encoder.h.
var ECCLevelWcWr = [11][2]int{
	{4, 9}, {3, 8}, {3, 7}, {4, 9}, {3, 6}, {4, 7}, {4, 6}, {3, 4}, {4, 5}, {5, 6}, {6, 7},
}

// NcColorEncodeTable packs the two Nc color indices read from the master's Part I snake: for a
// given 3-bit table index, column 0/1 give the canonical color (0=black, 3=cyan, 6=yellow) read
// in each of the two Nc sub-fields.
var NcColorEncodeTable = [8][2]int{
	{0, 0}, {0, 3}, {0, 6}, {3, 0}, {3, 3}, {3, 6}, {6, 0}, {6, 3},
}

// SideSize returns the module side length for a side version v (1..32): 4v+17.
func SideSize(version int) int { return 4*version + 17 }
