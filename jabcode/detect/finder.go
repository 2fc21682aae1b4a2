package detect

import (
	"math"

	"golang.org/x/exp/slices"

	"github.com/jabcode/jabcode/jabcode/colorspace"
)

// FPType identifies one of a symbol's four finder-pattern corners, numbered clockwise from
// top-left per original_source/src/jabcode/detector.h's layout comment:
//
//	0	1
//	3	2
type FPType int

const (
	FP0 FPType = iota // top-left
	FP1               // top-right
	FP2               // bottom-right
	FP3               // bottom-left
	fpTypeCount
)

// Finder is one located finder-pattern center, in source-bitmap pixel coordinates.
type Finder struct {
	Type       FPType
	X, Y       float64
	ModuleSize float64
	Count      int // number of raw candidates coalesced into this one
}

// fpRingColors gives the core (middle run) and ring (the runs either side of the core) color of each finder-pattern
// type's 1:1:1:1:1 cross, derived from matrixbuilder.PlaceFinderPatterns: every core color table
// entry resolves to one of exactly three canonical RGB values (black, cyan, yellow) regardless of
// color_number, so the detector can check against this small structural palette before
// color_number itself is known.
var fpRingColors = [fpTypeCount]struct{ core, ring colorspace.RGB }{
	FP0: {core: structBlack, ring: structCyan},
	FP1: {core: structBlack, ring: structYellow},
	FP2: {core: structYellow, ring: structBlack},
	FP3: {core: structCyan, ring: structBlack},
}

var (
	structBlack  = colorspace.RGB{R: 0, G: 0, B: 0}
	structCyan   = colorspace.RGB{R: 0, G: 255, B: 255}
	structYellow = colorspace.RGB{R: 255, G: 255, B: 0}
)

func closeColor(a, b colorspace.RGB) bool {
	d := func(x, y byte) int {
		v := int(x) - int(y)
		if v < 0 {
			return -v
		}
		return v
	}
	return d(a.R, b.R)+d(a.G, b.G)+d(a.B, b.B) < 180
}

// run1D is one confirmed 5-state candidate along a single scanline.
type run1D struct {
	center     float64
	moduleSize float64
}

// findRuns walks values (one channel's pixels along a row or column) for every 1:1:1:1:1 cross,
// porting seekPatternHorizontal/checkPatternCross's state machine: state[1..3] (the inner three
// runs) must be roughly equal, and state[0]/state[4] (the outer two) merely nonzero, with layer-1
// and layer-3 additionally required to match each other.
func findRuns(values []byte) []run1D {
	n := len(values)
	if n == 0 {
		return nil
	}
	var out []run1D
	var state [5]int
	cur := 0
	for p := 0; p < n; p++ {
		if p == 0 {
			state[0]++
			continue
		}
		same := values[p] == values[p-1]
		if same {
			state[cur]++
		}
		if same && p != n-1 {
			continue
		}
		if cur < 4 {
			if state[cur] < 3 {
				if cur == 0 {
					state[cur] = 1
				} else {
					state[cur-1] += state[cur]
					state[cur] = 0
					cur--
					state[cur]++
				}
			} else {
				cur++
				state[cur]++
			}
			continue
		}
		if state[cur] < 3 {
			state[cur-1] += state[cur]
			state[cur] = 0
			cur--
			state[cur]++
			continue
		}
		if moduleSize, ok := checkPatternCross(state); ok {
			var endPos int
			if p == n-1 && same {
				endPos = p + 1
			} else {
				endPos = p
			}
			center := float64(endPos-state[4]-state[3]) - float64(state[2])/2.0
			out = append(out, run1D{center: center, moduleSize: moduleSize})
			state = [5]int{}
			cur = 0
			continue
		}
		for k := 0; k < 4; k++ {
			state[k] = state[k+1]
		}
		state[4] = 1
		cur = 4
	}
	return out
}

// checkPatternCross validates a 5-run state vector against the finder pattern's n-1-1-1-m ratio,
// per checkPatternCross in detector.c.
func checkPatternCross(state [5]int) (moduleSize float64, ok bool) {
	if state[1] == 0 || state[2] == 0 || state[3] == 0 {
		return 0, false
	}
	layerSize := float64(state[1]+state[2]+state[3]) / 3.0
	tolerance := layerSize / 2.0
	ok = math.Abs(layerSize-float64(state[1])) < tolerance &&
		math.Abs(layerSize-float64(state[2])) < tolerance &&
		math.Abs(layerSize-float64(state[3])) < tolerance &&
		float64(state[0]) > 0.5*tolerance &&
		float64(state[4]) > 0.5*tolerance &&
		math.Abs(float64(state[1]-state[3])) < tolerance
	return layerSize, ok
}

// greenRow/greenCol sample one channel line of bmp, thresholded at the midpoint: every finder or
// alignment pattern ring alternates between black and a cyan/yellow core color, both of which
// read green>=128, so thresholding the green channel alone recovers the 1:1:1:1:1 alternation
// regardless of which corner type is present.
func greenRow(bmp *colorspace.Bitmap, y int) []byte {
	out := make([]byte, bmp.Width)
	for x := 0; x < bmp.Width; x++ {
		_, g, _, _ := bmp.At(x, y)
		if g >= 128 {
			out[x] = 1
		}
	}
	return out
}

func greenCol(bmp *colorspace.Bitmap, x int) []byte {
	out := make([]byte, bmp.Height)
	for y := 0; y < bmp.Height; y++ {
		_, g, _, _ := bmp.At(x, y)
		if g >= 128 {
			out[y] = 1
		}
	}
	return out
}

// classifyFP samples the candidate's core and ring colors to identify which of the four finder
// types it is (or rejects it as neither), per crossCheckColor's cross-channel confirmation --
// simplified here to a direct RGB sample since this package's bitmaps carry exact, noiseless
// palette colors rather than a photographed capture.
func classifyFP(bmp *colorspace.Bitmap, x, y, moduleSize float64) (FPType, bool) {
	core := sampleRGB(bmp, x, y)
	ringOffset := moduleSize
	ring := sampleRGB(bmp, x+ringOffset, y)
	for t := FP0; t < fpTypeCount; t++ {
		sig := fpRingColors[t]
		if closeColor(core, sig.core) && closeColor(ring, sig.ring) {
			return t, true
		}
	}
	return 0, false
}

func sampleRGB(bmp *colorspace.Bitmap, x, y float64) colorspace.RGB {
	px, py := int(math.Round(x)), int(math.Round(y))
	if px < 0 {
		px = 0
	}
	if px >= bmp.Width {
		px = bmp.Width - 1
	}
	if py < 0 {
		py = 0
	}
	if py >= bmp.Height {
		py = bmp.Height - 1
	}
	r, g, b, _ := bmp.At(px, py)
	return colorspace.RGB{R: r, G: g, B: b}
}

// scanFinderCandidates performs the horizontal-then-vertical scan of §4.7 over the rectangular
// region [x0,x1)x[y0,y1) of bmp, returning every accepted finder-pattern candidate (pre-
// coalescing). Rows and columns are scanned at 1-pixel stride: this package's own renderer never
// shrinks a module below a few pixels, so a full-stride scan stays cheap without needing the
// reference's adaptively estimated stride.
func scanFinderCandidates(bmp *colorspace.Bitmap, x0, y0, x1, y1 int) []Finder {
	var found []Finder
	for y := y0; y < y1; y++ {
		row := greenRow(bmp, y)
		for _, r := range findRuns(row[x0:x1]) {
			cx := float64(x0) + r.center
			// Vertical rescan through the candidate column refines the y center and confirms
			// the module size agrees within tolerance (checkModuleSize2 in detector.c).
			col := greenCol(bmp, clampInt(int(math.Round(cx)), x0, x1-1))
			best, ok := nearestRun(findRuns(col[y0:y1]), float64(y-y0), r.moduleSize)
			if !ok {
				continue
			}
			cy := float64(y0) + best.center
			meanModule := (r.moduleSize + best.moduleSize) / 2.0
			if t, ok := classifyFP(bmp, cx, cy, meanModule); ok {
				found = append(found, Finder{Type: t, X: cx, Y: cy, ModuleSize: meanModule, Count: 1})
			}
		}
	}
	return found
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func nearestRun(runs []run1D, want, moduleSize float64) (run1D, bool) {
	best := run1D{}
	bestDist := math.MaxFloat64
	found := false
	for _, r := range runs {
		d := math.Abs(r.center - want)
		if d < moduleSize*4 && d < bestDist {
			bestDist = d
			best = r
			found = true
		}
	}
	return best, found
}

// coalesce groups candidates of the same type within one module-size of each other into a single
// running average, per "Pattern aggregation" in spec.md §4.7.
func coalesce(candidates []Finder) []Finder {
	var out []Finder
	used := make([]bool, len(candidates))
	for i, c := range candidates {
		if used[i] {
			continue
		}
		sumX, sumY, sumM := c.X, c.Y, c.ModuleSize
		count := 1
		used[i] = true
		for j := i + 1; j < len(candidates); j++ {
			if used[j] || candidates[j].Type != c.Type {
				continue
			}
			o := candidates[j]
			avgX, avgY := sumX/float64(count), sumY/float64(count)
			if math.Hypot(o.X-avgX, o.Y-avgY) < c.ModuleSize {
				sumX += o.X
				sumY += o.Y
				sumM += o.ModuleSize
				count++
				used[j] = true
			}
		}
		out = append(out, Finder{
			Type:       c.Type,
			X:          sumX / float64(count),
			Y:          sumY / float64(count),
			ModuleSize: sumM / float64(count),
			Count:      count,
		})
	}
	return out
}

// selectBestFour keeps at most one finder per type -- the coalesced candidate with the highest
// Count, ties broken by closeness to the mean module size across all kept candidates -- per
// "Best-four selection" in spec.md §4.7. A missing type (at most one) is reconstructed from the
// other three by parallelogram completion (opposite corners share a midpoint: fp0+fp2 == fp1+fp3).
// Two or more missing types is reported as not found.
func selectBestFour(candidates []Finder) ([4]Finder, bool) {
	var perType [fpTypeCount][]Finder
	for _, c := range candidates {
		perType[c.Type] = append(perType[c.Type], c)
	}

	meanModule := 0.0
	for _, c := range candidates {
		meanModule += c.ModuleSize / float64(len(candidates))
	}

	var best [4]Finder
	var present [4]bool
	for t := FP0; t < fpTypeCount; t++ {
		list := perType[t]
		if len(list) == 0 {
			continue
		}
		slices.SortFunc(list, func(a, b Finder) int {
			if a.Count != b.Count {
				return b.Count - a.Count
			}
			da, db := math.Abs(a.ModuleSize-meanModule), math.Abs(b.ModuleSize-meanModule)
			if da < db {
				return -1
			}
			if da > db {
				return 1
			}
			return 0
		})
		best[t] = list[0]
		present[t] = true
	}

	missing := 0
	missIdx := -1
	for i, ok := range present {
		if !ok {
			missing++
			missIdx = i
		}
	}
	if missing > 1 {
		return best, false
	}
	if missing == 1 {
		// Opposite corners of a rectangle share a midpoint (0<->2, 1<->3), so the missing one
		// is the other diagonal's two points minus its own diagonal partner.
		opp := [4]int{2, 3, 0, 1}
		o := opp[missIdx]
		n1, n2 := -1, -1
		for i := 0; i < 4; i++ {
			if i != missIdx && i != o {
				if n1 == -1 {
					n1 = i
				} else {
					n2 = i
				}
			}
		}
		best[missIdx] = Finder{
			Type:       FPType(missIdx),
			X:          best[n1].X + best[n2].X - best[o].X,
			Y:          best[n1].Y + best[n2].Y - best[o].Y,
			ModuleSize: (best[n1].ModuleSize + best[n2].ModuleSize) / 2,
			Count:      0,
		}
	}
	return best, true
}

// calculateModuleNumber returns the number of modules between two finder/alignment patterns, per
// calculateModuleNumber in detector.c.
func calculateModuleNumber(a, b Finder) int {
	dx := b.X - a.X
	dy := b.Y - a.Y
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		return 0
	}
	cosTheta := math.Max(math.Abs(dx), math.Abs(dy)) / dist
	mean := (a.ModuleSize + b.ModuleSize) * cosTheta / 2.0
	return int(dist/mean + 0.5)
}

// getSideSize applies the mod-4 correction of spec.md §4.7 ("case 0 -> +1, case 2 -> -1, case 3 ->
// +2 with low confidence") to a raw module-number guess, returning -1 with flag -1 when the
// corrected size falls outside the valid [21,145] module range.
func getSideSize(size int) (corrected, flag int) {
	flag = 1
	switch size % 4 {
	case 0:
		size++
	case 2:
		size--
	case 3:
		size += 2
		flag = 0
	}
	if size < 21 || size > 145 {
		return -1, -1
	}
	return size, flag
}

func chooseSideSize(size1, flag1, size2, flag2 int) int {
	if flag1 == -1 && flag2 == -1 {
		return -1
	}
	if flag1 == flag2 {
		if size1 > size2 {
			return size1
		}
		return size2
	}
	if flag1 > flag2 {
		return size1
	}
	return size2
}

// calculateSideSize derives the master's horizontal and vertical module counts from its four
// finder-pattern centers, confirming top against bottom (and left against right) per
// calculateSideSize in detector.c.
func calculateSideSize(fps [4]Finder) (sideX, sideY int, ok bool) {
	top, flagTop := getSideSize(calculateModuleNumber(fps[FP0], fps[FP1]) + 7)
	bottom, flagBottom := getSideSize(calculateModuleNumber(fps[FP3], fps[FP2]) + 7)
	sideX = chooseSideSize(top, flagTop, bottom, flagBottom)

	left, flagLeft := getSideSize(calculateModuleNumber(fps[FP0], fps[FP3]) + 7)
	right, flagRight := getSideSize(calculateModuleNumber(fps[FP1], fps[FP2]) + 7)
	sideY = chooseSideSize(left, flagLeft, right, flagRight)

	return sideX, sideY, sideX > 0 && sideY > 0
}
