// Package classify reads a sampled symbol's module matrix back into palette indices, then
// reverses masking, interleaving, and LDPC protection to recover a symbol's message bits, per
// spec.md §4.9.
package classify

import (
	"github.com/jabcode/jabcode/jabcode/colorspace"
)

// NearestColor re-exports colorspace.NearestColor: the nearest-palette-entry classifier is shared
// with jabcode/detect (which cannot import this package -- classify already imports detect for
// detect.Frame), so its implementation lives in the colorspace leaf package.
func NearestColor(r, g, b byte, palette []colorspace.RGB) int {
	return colorspace.NearestColor(r, g, b, palette)
}
