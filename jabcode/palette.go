package jabcode

import "github.com/jabcode/jabcode/jabcode/colorspace"

// RGB is a single palette entry. Aliased from colorspace; see bitmap.go for why.
type RGB = colorspace.RGB

// DefaultPalette8 holds the eight canonical colors, in fixed index order: black, blue, green,
// cyan, red, magenta, yellow, white.
var DefaultPalette8 = colorspace.DefaultPalette8

// Finder/alignment pattern core color indices into DefaultPalette8.
const (
	FP0CoreColor = colorspace.FP0CoreColor
	FP1CoreColor = colorspace.FP1CoreColor
	FP2CoreColor = colorspace.FP2CoreColor
	FP3CoreColor = colorspace.FP3CoreColor
	AP0CoreColor = colorspace.AP0CoreColor
	AP1CoreColor = colorspace.AP1CoreColor
	AP2CoreColor = colorspace.AP2CoreColor
	AP3CoreColor = colorspace.AP3CoreColor
	APXCoreColor = colorspace.APXCoreColor
)

// Palette is the ordered set of colors a symbol may assign to its modules.
type Palette = colorspace.Palette

// NewPalette builds the default palette for colorNumber in {4,8,16,32,64,128,256}.
func NewPalette(colorNumber int) *Palette { return colorspace.NewPalette(colorNumber) }

// ColorPaletteIndex returns the palette-slot traversal order used to read/write the color
// palette modules.
func ColorPaletteIndex(colorNumber int) []int { return colorspace.ColorPaletteIndex(colorNumber) }

// MasterPlacementAt and SlavePlacementAt resolve the master/slave palette traversal tables for
// the i-th palette module.
func MasterPlacementAt(corner, i int) int { return colorspace.MasterPlacementAt(corner, i) }
func SlavePlacementAt(i int) int          { return colorspace.SlavePlacementAt(i) }
