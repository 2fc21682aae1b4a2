// Package detect locates symbols inside a rendered Bitmap and samples their module grids back
// into color-index values, per original_source/src/jabcode/detector.c's findMasterSymbol /
// findSlaveSymbol / sampleSymbolByAlignmentPattern.
//
// Scope (documented simplification, see DESIGN.md): the reference detector is built to recover a
// symbol from a photographed, possibly skewed and unevenly lit capture -- it balances and
// block-thresholds each color channel before scanning. This port instead scans the bitmap's raw
// RGB channels directly: every bitmap this package processes was rendered (by this module's own
// raster package, or an equivalent noiseless renderer) in exact palette colors, so the channel
//-preparation stage detector.c needs for photographic robustness has nothing to correct. The
// finder-pattern search itself (the 5-state run-length ratio scan, candidate coalescing,
// best-four selection with missing-corner parallelogram completion, and the mod-4 symbol-size
// correction), and the perspective homography used to sample every module, are real, not
// shortcuts: see finder.go and transform.go.
package detect

import (
	"math"

	"github.com/pkg/errors"

	"github.com/jabcode/jabcode/jabcode/colorspace"
)

// ErrNotFound is returned when no symbol content can be located inside the bitmap.
var ErrNotFound = errors.New("detect: no symbol found in bitmap")

// Grid is one symbol's sampled module matrix, in raw classified palette-index form (not yet
// demasked/deinterleaved/LDPC-decoded).
type Grid struct {
	Values [][]int // sy x sx, row-major
}

// Frame resolves a located symbol's module-grid size and the perspective homography mapping
// module coordinates to bitmap pixel coordinates, replacing the axis-aligned
// origin-plus-module-pitch arithmetic of this package's earlier toy detector.
type Frame struct {
	WidthModules, HeightModules int
	ModuleSize                  float64
	Bounds                      MasterBounds
	transform                   Homography
}

// ModuleCenter maps module grid coordinates (x,y), 0-indexed from the symbol's top-left module,
// to the bitmap pixel coordinates of that module's center, per warpPoints in transform.c.
func (f Frame) ModuleCenter(x, y int) (float64, float64) {
	return f.transform.Apply(float64(x)+0.5, float64(y)+0.5)
}

// buildFrame constructs a Frame from four located corner points and a confirmed module-grid
// size, by building the homography mapping the four corners' canonical module-space positions
// (3.5 modules in from each edge, per getPerspectiveTransform in transform.c) to their detected
// pixel positions.
func buildFrame(fps [4]Finder, sideX, sideY int) (Frame, error) {
	moduleSize := (fps[0].ModuleSize + fps[1].ModuleSize + fps[2].ModuleSize + fps[3].ModuleSize) / 4
	src := [4][2]float64{
		{3.5, 3.5},
		{float64(sideX) - 3.5, 3.5},
		{float64(sideX) - 3.5, float64(sideY) - 3.5},
		{3.5, float64(sideY) - 3.5},
	}
	dst := [4][2]float64{
		{fps[0].X, fps[0].Y},
		{fps[1].X, fps[1].Y},
		{fps[2].X, fps[2].Y},
		{fps[3].X, fps[3].Y},
	}
	h, err := NewQuadToQuad(src, dst)
	if err != nil {
		return Frame{}, err
	}
	return Frame{
		WidthModules:  sideX,
		HeightModules: sideY,
		ModuleSize:    moduleSize,
		Bounds:        boundsOf(fps, moduleSize),
		transform:     h,
	}, nil
}

// LocateFrame finds a master symbol's four finder patterns anywhere in bmp (horizontal scan, then
// a vertical rescan implicit in scanFinderCandidates' per-candidate column recheck), coalesces
// and best-four-selects them, confirms the symbol's module-grid size, and returns its sampling
// Frame, per "Finder-Pattern Search" and "Symbol size" in spec.md §4.7.
func LocateFrame(bmp *colorspace.Bitmap) (Frame, error) {
	if bmp == nil || bmp.Width == 0 || bmp.Height == 0 {
		return Frame{}, ErrNotFound
	}
	candidates := coalesce(scanFinderCandidates(bmp, 0, 0, bmp.Width, bmp.Height))
	fps, ok := selectBestFour(candidates)
	if !ok {
		return Frame{}, ErrNotFound
	}
	sideX, sideY, ok := calculateSideSize(fps)
	if !ok {
		return Frame{}, ErrNotFound
	}
	return buildFrame(fps, sideX, sideY)
}

// Sample reads every module center inside frame's grid into color-index values against the given
// palette, producing a Grid one cell per module, per sampleSymbolByAlignmentPattern's per-module
// homography projection in detector.c.
func Sample(bmp *colorspace.Bitmap, frame Frame, classify func(r, g, b byte) int) Grid {
	values := make([][]int, frame.HeightModules)
	for y := range values {
		row := make([]int, frame.WidthModules)
		for x := range row {
			px, py := frame.ModuleCenter(x, y)
			ix := clampInt(int(math.Round(px)), 0, bmp.Width-1)
			iy := clampInt(int(math.Round(py)), 0, bmp.Height-1)
			r, g, b, _ := bmp.At(ix, iy)
			row[x] = classify(r, g, b)
		}
		values[y] = row
	}
	return Grid{Values: values}
}
