package colorspace

import "math"

// RGB is a single palette entry.
type RGB struct{ R, G, B byte }

// NearestColor classifies an RGB triple against palette by normalized Euclidean distance, with a
// black-cutoff shortcut for every palette size: a module whose three channels are all below the
// midpoint between the palette's first (index 0) and last entries on that channel is taken to be
// palette index 0 (black) outright, per decodeModuleHD's black-cutoff branch. Shared by the
// decoder's module classifier and the detector's finder/alignment-pattern color checks, so it
// lives in this leaf package rather than jabcode/classify (which the detector cannot import
// without a cycle: classify already imports detect for detect.Frame).
func NearestColor(r, g, b byte, palette []RGB) int {
	if len(palette) > 0 {
		black := palette[0]
		white := palette[len(palette)-1]
		cutR := (int(black.R) + int(white.R)) / 2
		cutG := (int(black.G) + int(white.G)) / 2
		cutB := (int(black.B) + int(white.B)) / 2
		if int(r) < cutR && int(g) < cutG && int(b) < cutB {
			return 0
		}
	}

	nr, ng, nb := normalizeRGB(r, g, b)
	best, bestDist := 0, math.MaxFloat64
	for i, c := range palette {
		cr, cg, cb := normalizeRGB(c.R, c.G, c.B)
		dr, dg, db := nr-cr, ng-cg, nb-cb
		d := dr*dr + dg*dg + db*db
		if d < bestDist {
			bestDist = d
			best = i
		}
	}

	// Disambiguate black (index 0) vs. white (last index) in 8-color mode via sum-of-channels,
	// per the special-case in spec.md §4.9 step 5: the normalized-distance metric alone can
	// confuse near-black/near-white samples once noise is present.
	if len(palette) == 8 && (best == 0 || best == len(palette)-1) {
		sum := int(r) + int(g) + int(b)
		mid := (int(palette[0].R)+int(palette[0].G)+int(palette[0].B)+
			int(palette[7].R)+int(palette[7].G)+int(palette[7].B))/2
		if sum < mid {
			return 0
		}
		return 7
	}
	return best
}

func normalizeRGB(r, g, b byte) (float64, float64, float64) {
	max := r
	if g > max {
		max = g
	}
	if b > max {
		max = b
	}
	if max == 0 {
		return 0, 0, 0
	}
	m := float64(max)
	return float64(r) / m, float64(g) / m, float64(b) / m
}

// DefaultPalette8 holds the eight canonical colors, in fixed index order: black, blue, green,
// cyan, red, magenta, yellow, white. Only the 8-color palette is this table as is; NewPalette
// takes the 4-color palette from four of its entries, and builds 16 colors and up from an even
// level grid whose first eight entries are not this table.
var DefaultPalette8 = [8]RGB{
	{0, 0, 0},
	{0, 0, 255},
	{0, 255, 0},
	{0, 255, 255},
	{255, 0, 0},
	{255, 0, 255},
	{255, 255, 0},
	{255, 255, 255},
}

// Finder/alignment pattern core color indices into DefaultPalette8.
const (
	FP0CoreColor = 0
	FP1CoreColor = 0
	FP2CoreColor = 6
	FP3CoreColor = 3
	AP0CoreColor = 3
	AP1CoreColor = 3
	AP2CoreColor = 3
	AP3CoreColor = 3
	APXCoreColor = 6
)

// Nc-indexed (Nc = bits_per_module-1, 0..7) finder/alignment pattern core color indices, covering
// every supported color depth rather than just the 8-color default.
var (
	FP0CoreColorByNc = [8]int{0, 0, FP0CoreColor, 0, 0, 0, 0, 0}
	FP1CoreColorByNc = [8]int{0, 0, FP1CoreColor, 0, 0, 0, 0, 0}
	FP2CoreColorByNc = [8]int{0, 2, FP2CoreColor, 14, 30, 60, 124, 252}
	FP3CoreColorByNc = [8]int{0, 3, FP3CoreColor, 3, 7, 15, 15, 31}
	APNCoreColorByNc = [8]int{0, 3, AP0CoreColor, 3, 7, 15, 15, 31}
	APXCoreColorByNc = [8]int{0, 2, APXCoreColor, 14, 30, 60, 124, 252}
)

// Palette is the ordered set of colors a symbol may assign to its modules.
type Palette struct {
	Colors []RGB
}

// NewPalette builds the default palette for colorNumber in {4,8,16,32,64,128,256}.
func NewPalette(colorNumber int) *Palette {
	switch colorNumber {
	case 4:
		return &Palette{Colors: []RGB{
			DefaultPalette8[FP0CoreColor], // 00: black
			DefaultPalette8[5],            // 01: magenta
			DefaultPalette8[FP2CoreColor], // 10: yellow
			DefaultPalette8[FP3CoreColor], // 11: cyan
		}}
	case 8:
		colors := make([]RGB, 8)
		copy(colors, DefaultPalette8[:])
		return &Palette{Colors: colors}
	default:
		return &Palette{Colors: genColorPalette(colorNumber)}
	}
}

// genColorPalette reconstructs the >8 color palettes by independently quantizing each RGB
// channel into vr/vg/vb evenly spaced levels and taking their cartesian product, per
// original_source/src/jabcode/encoder.c genColorPalette.
func genColorPalette(colorNumber int) []RGB {
	var vr, vg, vb int
	switch colorNumber {
	case 16:
		vr, vg, vb = 4, 2, 2
	case 32:
		vr, vg, vb = 4, 4, 2
	case 64:
		vr, vg, vb = 4, 4, 4
	case 128:
		vr, vg, vb = 8, 4, 4
	case 256:
		vr, vg, vb = 8, 8, 4
	default:
		return nil
	}
	step := func(v int) float64 {
		if v-1 == 3 {
			return 85
		}
		return 256 / float64(v-1)
	}
	dr, dg, db := step(vr), step(vg), step(vb)
	clamp := func(f float64) byte {
		v := int(f)
		if v > 255 {
			v = 255
		}
		return byte(v)
	}
	colors := make([]RGB, 0, vr*vg*vb)
	for i := 0; i < vr; i++ {
		r := clamp(dr * float64(i))
		for j := 0; j < vg; j++ {
			g := clamp(dg * float64(j))
			for k := 0; k < vb; k++ {
				b := clamp(db * float64(k))
				colors = append(colors, RGB{r, g, b})
			}
		}
	}
	return colors
}

// MasterPalettePlacementIndex gives, for each of the 4 corner regions, the palette-index
// traversal order used to place the color-palette modules in a master symbol.
var MasterPalettePlacementIndex = [4][8]int{
	{0, 3, 5, 6, 1, 2, 4, 7},
	{0, 6, 5, 3, 1, 2, 4, 7},
	{6, 0, 5, 3, 1, 2, 4, 7},
	{3, 0, 5, 6, 1, 2, 4, 7},
}

// SlavePalettePlacementIndex is the single traversal order used at every corner of a slave symbol.
var SlavePalettePlacementIndex = [8]int{3, 6, 5, 0, 1, 2, 4, 7}

// SlavePalettePosition gives the first 32 color-palette module coordinates inside a slave
// symbol's top-left corner; the other three corners reuse it rotated 90 degrees at a time.
var SlavePalettePosition = [32][2]int{
	{4, 5}, {4, 6}, {4, 7}, {4, 8}, {4, 9}, {4, 10}, {4, 11}, {4, 12},
	{5, 12}, {5, 11}, {5, 10}, {5, 9}, {5, 8}, {5, 7}, {5, 6}, {5, 5},
	{6, 5}, {6, 6}, {6, 7}, {6, 8}, {6, 9}, {6, 10}, {6, 11}, {6, 12},
	{7, 12}, {7, 11}, {7, 10}, {7, 9}, {7, 8}, {7, 7}, {7, 6}, {7, 5},
}

// MasterPlacementAt and SlavePlacementAt resolve the traversal tables above for the i-th palette
// module (i runs 2..min(color_number,64)-1). The reference tables are only 8 entries wide, so
// this cycles i%8 for the entries beyond the first eight -- a reasoned generalization, since the
// original C arrays are declared with a fixed size of 8 yet the placement loop runs i up to 63
// for color_number > 8 (an out-of-bounds read in the reference source that this port does not
// reproduce; see DESIGN.md).
func MasterPlacementAt(corner, i int) int { return MasterPalettePlacementIndex[corner][i%8] }
func SlavePlacementAt(i int) int          { return SlavePalettePlacementIndex[i%8] }

// ColorPaletteIndex returns the palette-slot traversal order used to read/write the color
// palette modules: identity for color_number <= 64, and a block-interleaved reordering for 128
// and 256 colors (so the modules placed in the symbol correspond to a 2x2/4x4 spatial block
// layout rather than a flat index run), per getColorPaletteIndex in encoder.c.
func ColorPaletteIndex(colorNumber int) []int {
	size := colorNumber
	if size > 64 {
		size = 64
	}
	index := make([]int, size)
	for i := range index {
		index[i] = i
	}
	if colorNumber < 128 {
		return index
	}

	tmp := make([]int, colorNumber)
	for i := range tmp {
		tmp[i] = i
	}
	copyBlock := func(dst, src, n int) {
		copy(index[dst:dst+n], tmp[src:src+n])
	}
	if colorNumber == 128 {
		copyBlock(0, 0, 16)
		copyBlock(16, 32, 16)
		copyBlock(32, 80, 16)
		copyBlock(48, 112, 16)
	} else if colorNumber == 256 {
		copyBlock(0, 0, 4)
		copyBlock(4, 8, 4)
		copyBlock(8, 20, 4)
		copyBlock(12, 28, 4)
		copyBlock(16, 64, 4)
		copyBlock(20, 72, 4)
		copyBlock(24, 84, 4)
		copyBlock(28, 92, 4)
		copyBlock(32, 160, 4)
		copyBlock(36, 168, 4)
		copyBlock(40, 180, 4)
		copyBlock(44, 188, 4)
		copyBlock(48, 224, 4)
		copyBlock(52, 232, 4)
		copyBlock(56, 244, 4)
		copyBlock(60, 252, 4)
	}
	return index
}
