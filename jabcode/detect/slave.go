package detect

import (
	"math"

	"github.com/pkg/errors"

	"github.com/jabcode/jabcode/jabcode/colorspace"
	"github.com/jabcode/jabcode/jabcode/symbol"
)

// slaveCorner is the signature PlaceSlaveFinderRings draws at every one of a slave symbol's four
// corners: a single cyan core cell surrounded by a yellow ring, the inverse pairing of a
// standalone alignment pattern's cyan-ring/yellow-center ("Cyan,Yellow,Cyan" vs. a slave corner's
// "Yellow,Cyan,Yellow" when read across a line through it).
var slaveCorner = struct{ core, ring colorspace.RGB }{core: structCyan, ring: structYellow}

// MasterBounds is the master symbol's pixel-space bounding box, derived from its four finder
// centers (each inset 3.5 modules from its corresponding edge, per getPerspectiveTransform's
// module-space anchor convention).
type MasterBounds struct {
	MinX, MinY, MaxX, MaxY float64
}

func boundsOf(fps [4]Finder, moduleSize float64) MasterBounds {
	return MasterBounds{
		MinX: fps[FP0].X - 3.5*moduleSize,
		MinY: fps[FP0].Y - 3.5*moduleSize,
		MaxX: fps[FP2].X + 3.5*moduleSize,
		MaxY: fps[FP2].Y + 3.5*moduleSize,
	}
}

// DetectSlave locates the docked slave symbol found outward from host's edge in the given
// docking direction, then returns its Frame. This repo's own raster.Render places every docked
// symbol on one shared canvas, abutting its host directly with no gap and no independent quiet
// zone, and at the same pixel module size as every other symbol on the canvas -- so rather than
// the reference detector's host-relative anchor projection and alignment-pattern proportionality
// search (detector.c's findSlaveSymbol, built for a photographed capture where the slave's own
// module size must be independently re-measured), this port searches directly for the slave's own
// four corner markers in the half-plane beyond the host's edge and derives its geometry exactly
// as the master's, reusing the inherited (shared) module size. See DESIGN.md.
func DetectSlave(bmp *colorspace.Bitmap, host MasterBounds, moduleSize float64, direction int) (Frame, error) {
	var x0, y0, x1, y1 int
	switch direction {
	case symbol.DockNorth:
		x0, y0, x1, y1 = 0, 0, bmp.Width, int(host.MinY)
	case symbol.DockSouth:
		x0, y0, x1, y1 = 0, int(host.MaxY), bmp.Width, bmp.Height
	case symbol.DockWest:
		x0, y0, x1, y1 = 0, 0, int(host.MinX), bmp.Height
	case symbol.DockEast:
		x0, y0, x1, y1 = int(host.MaxX), 0, bmp.Width, bmp.Height
	default:
		return Frame{}, errors.Errorf("detect: unknown docking direction %d", direction)
	}
	x0, y0 = clampInt(x0, 0, bmp.Width-1), clampInt(y0, 0, bmp.Height-1)
	x1, y1 = clampInt(x1, 0, bmp.Width), clampInt(y1, 0, bmp.Height)
	if x1 <= x0 || y1 <= y0 {
		return Frame{}, errors.New("detect: docked slave region is empty")
	}

	clusters := findCornerClusters(bmp, x0, y0, x1, y1, moduleSize, slaveCorner)
	if len(clusters) < 4 {
		return Frame{}, errors.New("detect: could not find four corner markers for docked slave")
	}

	minX, minY := clusters[0].X, clusters[0].Y
	maxX, maxY := clusters[0].X, clusters[0].Y
	for _, c := range clusters[1:] {
		minX, minY = math.Min(minX, c.X), math.Min(minY, c.Y)
		maxX, maxY = math.Max(maxX, c.X), math.Max(maxY, c.Y)
	}
	ideal := [4][2]float64{{minX, minY}, {maxX, minY}, {maxX, maxY}, {minX, maxY}}
	var fps [4]Finder
	for i, p := range ideal {
		fps[i] = nearestCluster(clusters, p[0], p[1])
		fps[i].ModuleSize = moduleSize
	}

	sideX, sideY, ok := calculateSideSize(fps)
	if !ok {
		return Frame{}, errors.New("detect: could not confirm docked slave's symbol size")
	}
	return buildFrame(fps, sideX, sideY)
}

// findCornerClusters scans the region [x0,x1)x[y0,y1) of bmp on a moduleSize/2 grid stride for
// points whose immediate neighborhood matches sig's core/ring color pair on all four cardinal
// sides, coalescing nearby hits the same way finder-pattern candidates are coalesced.
func findCornerClusters(bmp *colorspace.Bitmap, x0, y0, x1, y1 int, moduleSize float64, sig struct{ core, ring colorspace.RGB }) []Finder {
	step := int(math.Max(1, moduleSize/2))
	var hits []Finder
	for y := y0; y < y1; y += step {
		for x := x0; x < x1; x += step {
			if matchesCornerTemplate(bmp, float64(x), float64(y), moduleSize, sig) {
				hits = append(hits, Finder{X: float64(x), Y: float64(y), ModuleSize: moduleSize, Count: 1})
			}
		}
	}
	return coalesce(hits)
}

func matchesCornerTemplate(bmp *colorspace.Bitmap, x, y, moduleSize float64, sig struct{ core, ring colorspace.RGB }) bool {
	if !closeColor(sampleRGB(bmp, x, y), sig.core) {
		return false
	}
	offsets := [4][2]float64{{moduleSize, 0}, {-moduleSize, 0}, {0, moduleSize}, {0, -moduleSize}}
	for _, o := range offsets {
		if !closeColor(sampleRGB(bmp, x+o[0], y+o[1]), sig.ring) {
			return false
		}
	}
	return true
}

func nearestCluster(clusters []Finder, x, y float64) Finder {
	best := clusters[0]
	bestDist := math.Hypot(best.X-x, best.Y-y)
	for _, c := range clusters[1:] {
		if d := math.Hypot(c.X-x, c.Y-y); d < bestDist {
			bestDist = d
			best = c
		}
	}
	return best
}
