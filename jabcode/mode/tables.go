// Package mode implements the adaptive character-mode encoder and decoder: Upper, Lower, Numeric,
// Punct, Mixed, Alphanumeric and Byte modes, switched between by a dynamic-programming search over
// a fixed mode-switch-cost table, per original_source/src/jabcode/encoder.c/decoder.c and encoder.h/
// decoder.h's mode tables.
package mode

// Mode identifies one of the seven character encoding modes, in the order the original tables are
// indexed by (Upper, Lower, Numeric, Punct, Mixed, Alphanumeric, Byte).
type Mode int

const (
	Upper Mode = iota
	Lower
	Numeric
	Punct
	Mixed
	Alphanumeric
	Byte
	modeCount
)

func (m Mode) String() string {
	switch m {
	case Upper:
		return "upper"
	case Lower:
		return "lower"
	case Numeric:
		return "numeric"
	case Punct:
		return "punct"
	case Mixed:
		return "mixed"
	case Alphanumeric:
		return "alphanumeric"
	case Byte:
		return "byte"
	default:
		return "unknown"
	}
}

// CharacterSize gives the number of bits a character costs in each mode, indexed by Mode, per
// original_source/src/jabcode/encoder.h character_size.
var CharacterSize = [7]int{5, 5, 4, 4, 5, 6, 8}

// infinite marks a switch that is never taken (ENC_MAX in the C source: switching between two
// modes with no direct latch/shift path).
const infinite = 1 << 30

// LatchShiftCost[from][col] is the number of bits spent switching from mode `from`: columns 0-6
// latch into mode col, columns 7-13 shift into mode col-7 for a single character. Rows 7-13
// repeat rows 0-6. Ported verbatim from
// original_source/src/jabcode/encoder.h latch_shift_to, with ENC_MAX translated to infinite.
var LatchShiftCost = [14][14]int{
	{0, 5, 5, infinite, infinite, 5, infinite, infinite, infinite, infinite, 5, 7, infinite, 11},
	{7, 0, 5, infinite, infinite, 5, infinite, 5, infinite, infinite, 5, 7, infinite, 11},
	{4, 6, 0, infinite, infinite, 9, infinite, 6, infinite, infinite, 4, 6, infinite, 10},
	{infinite, infinite, infinite, infinite, infinite, infinite, infinite, 0, 0, 0, infinite, infinite, 0, infinite},
	{infinite, infinite, infinite, infinite, infinite, infinite, infinite, 0, 0, 0, infinite, infinite, 0, infinite},
	{8, 13, 13, infinite, infinite, 0, infinite, infinite, infinite, infinite, 8, 8, infinite, 12},
	{infinite, infinite, infinite, infinite, infinite, infinite, 0, 0, 0, 0, infinite, infinite, 0, 0},
	{0, 5, 5, infinite, infinite, 5, infinite, infinite, infinite, infinite, 5, 7, infinite, 11},
	{7, 0, 5, infinite, infinite, 5, infinite, 5, infinite, infinite, 5, 7, infinite, 11},
	{4, 6, 0, infinite, infinite, 9, infinite, 6, infinite, infinite, 4, 6, infinite, 10},
	{infinite, infinite, infinite, infinite, infinite, infinite, infinite, 0, 0, 0, infinite, infinite, 0, infinite},
	{infinite, infinite, infinite, infinite, infinite, infinite, infinite, 0, 0, 0, infinite, infinite, 0, infinite},
	{8, 13, 13, infinite, infinite, 0, infinite, infinite, infinite, infinite, 8, 8, infinite, 12},
	{infinite, infinite, infinite, infinite, infinite, infinite, 0, 0, 0, 0, infinite, infinite, 0, 0},
}

// ModeSwitchCode[from] holds, for mode `from`, the codeword values for: latch to each of the 7
// modes (indices 0-6), shift to each of the 7 modes (indices 7-13),
// ECI (index 14) and FNC1 (index 15). -1 marks a switch that mode never performs. Ported from
// original_source/src/jabcode/encoder.h mode_switch.
var ModeSwitchCode = [7][16]int{
	{-1, 28, 29, -1, -1, 30, -1, -1, -1, -1, 27, 125, -1, 124, 126, -1},
	{126, -1, 29, -1, -1, 30, -1, 28, -1, 127, 27, 125, -1, 124, -1, 127},
	{14, 63, -1, -1, -1, 478, -1, 62, -1, -1, 13, 61, -1, 60, -1, -1},
	{-1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1},
	{-1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1},
	{255, 8188, 8189, -1, -1, -1, -1, -1, -1, -1, 254, 253, -1, 252, -1, -1},
	{-1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1},
}

// decoding tables: the character set each mode's index maps to, per
// original_source/src/jabcode/decoder.h.
var (
	decodingTableUpper        = [27]byte{32, 65, 66, 67, 68, 69, 70, 71, 72, 73, 74, 75, 76, 77, 78, 79, 80, 81, 82, 83, 84, 85, 86, 87, 88, 89, 90}
	decodingTableLower        = [27]byte{32, 97, 98, 99, 100, 101, 102, 103, 104, 105, 106, 107, 108, 109, 110, 111, 112, 113, 114, 115, 116, 117, 118, 119, 120, 121, 122}
	decodingTableNumeric      = [13]byte{32, 48, 49, 50, 51, 52, 53, 54, 55, 56, 57, 44, 46}
	decodingTablePunct        = [16]byte{33, 34, 36, 37, 38, 39, 40, 41, 44, 45, 46, 47, 58, 59, 63, 64}
	decodingTableMixed        = [32]byte{35, 42, 43, 60, 61, 62, 91, 92, 93, 94, 95, 96, 123, 124, 125, 126, 9, 10, 13, 0, 0, 0, 0, 164, 167, 196, 214, 220, 223, 228, 246, 252}
	decodingTableAlphanumeric = [63]byte{32, 48, 49, 50, 51, 52, 53, 54, 55, 56, 57, 65, 66, 67, 68, 69, 70, 71, 72, 73, 74, 75, 76, 77, 78, 79, 80, 81, 82, 83, 84, 85,
		86, 87, 88, 89, 90, 97, 98, 99, 100, 101, 102, 103, 104, 105, 106, 107, 108, 109, 110, 111, 112, 113, 114, 115, 116, 117, 118, 119, 120, 121, 122}
)

// DecodingTable returns the character lookup table for m (empty for Byte mode, which carries raw
// bytes rather than an indexed alphabet).
func DecodingTable(m Mode) []byte {
	switch m {
	case Upper:
		return decodingTableUpper[:]
	case Lower:
		return decodingTableLower[:]
	case Numeric:
		return decodingTableNumeric[:]
	case Punct:
		return decodingTablePunct[:]
	case Mixed:
		return decodingTableMixed[:]
	case Alphanumeric:
		return decodingTableAlphanumeric[:]
	default:
		return nil
	}
}
