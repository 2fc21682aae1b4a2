package detect_test

import (
	"math"
	"testing"

	"github.com/jabcode/jabcode/jabcode/classify"
	"github.com/jabcode/jabcode/jabcode/colorspace"
	"github.com/jabcode/jabcode/jabcode/detect"
	"github.com/jabcode/jabcode/jabcode/matrixbuilder"
	"github.com/jabcode/jabcode/jabcode/raster"
	"github.com/jabcode/jabcode/jabcode/symbol"
)

func renderTestSymbol(t *testing.T, colorNumber int, version symbol.Version) (*colorspace.Bitmap, *symbol.Symbol, *colorspace.Palette, int) {
	t.Helper()
	sym := symbol.NewSymbol(0, version)
	encoded := make([]byte, 400)
	for i := range encoded {
		encoded[i] = byte((i * 5) % 2)
	}
	matrixbuilder.Build(sym, colorNumber, nil, nil, true, encoded)

	palette := colorspace.NewPalette(colorNumber)
	const moduleSize = 4
	layout := raster.PlaceSymbols([]*symbol.Symbol{sym}, &symbol.DockPlan{
		Positions: []int{0}, Host: []int{0}, Slaves: [][4]int{{0, 0, 0, 0}},
	})
	bmp := raster.Render([]*symbol.Symbol{sym}, []*colorspace.Palette{palette}, moduleSize, layout)
	return bmp, sym, palette, moduleSize
}

func TestLocateFrameFindsRenderedSymbol(t *testing.T) {
	version := symbol.Version{X: 5, Y: 5}
	bmp, _, _, moduleSize := renderTestSymbol(t, 8, version)
	sideModules := symbol.SideSize(5)

	frame, err := detect.LocateFrame(bmp)
	if err != nil {
		t.Fatalf("LocateFrame: %v", err)
	}
	if math.Abs(frame.ModuleSize-float64(moduleSize)) > 0.5 {
		t.Errorf("ModuleSize = %v, want close to %d", frame.ModuleSize, moduleSize)
	}
	if frame.WidthModules != sideModules || frame.HeightModules != sideModules {
		t.Errorf("grid = %dx%d, want %dx%d", frame.WidthModules, frame.HeightModules, sideModules, sideModules)
	}
}

func TestLocateFrameRejectsBlankBitmap(t *testing.T) {
	bmp := colorspace.NewBitmap(40, 40)
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			bmp.Set(x, y, 255, 255, 255, 255)
		}
	}
	if _, err := detect.LocateFrame(bmp); err == nil {
		t.Fatal("expected LocateFrame to reject an all-white bitmap")
	}
}

func TestSampleRecoversModuleMatrix(t *testing.T) {
	colorNumber := 8
	version := symbol.Version{X: 5, Y: 5}
	bmp, sym, palette, _ := renderTestSymbol(t, colorNumber, version)

	frame, err := detect.LocateFrame(bmp)
	if err != nil {
		t.Fatalf("LocateFrame: %v", err)
	}
	grid := detect.Sample(bmp, frame, func(r, g, b byte) int {
		return classify.NearestColor(r, g, b, palette.Colors)
	})

	for y, row := range sym.ModuleMatrix {
		for x, want := range row {
			if grid.Values[y][x] != want {
				t.Fatalf("module (%d,%d) = %d, want %d", x, y, grid.Values[y][x], want)
			}
		}
	}
}

// renderDockedPair renders a master with one slave docked to its east, mirroring the layout
// Encode produces for spec.md §8's multi-symbol scenario, so DetectSlave can be exercised
// against a bitmap built the same way the real encoder builds one.
func renderDockedPair(t *testing.T, colorNumber int, version symbol.Version) (*colorspace.Bitmap, [2]*symbol.Symbol, *colorspace.Palette, int) {
	t.Helper()
	master := symbol.NewSymbol(0, version)
	slave := symbol.NewSymbol(1, version)
	encoded := make([]byte, 400)
	for i := range encoded {
		encoded[i] = byte((i * 3) % 2)
	}
	matrixbuilder.Build(master, colorNumber, nil, nil, true, encoded)
	matrixbuilder.Build(slave, colorNumber, nil, nil, true, encoded)

	plan := &symbol.DockPlan{
		Positions: []int{0, 4},
		Host:      []int{0, 0},
		Slaves:    [][4]int{{0, 0, 0, 1}, {0, 0, 0, 0}},
	}
	palette := colorspace.NewPalette(colorNumber)
	const moduleSize = 4
	syms := []*symbol.Symbol{master, slave}
	layout := raster.PlaceSymbols(syms, plan)
	bmp := raster.Render(syms, []*colorspace.Palette{palette, palette}, moduleSize, layout)
	return bmp, [2]*symbol.Symbol{master, slave}, palette, moduleSize
}

func TestDetectSlaveFindsEastDockedSymbol(t *testing.T) {
	colorNumber := 8
	version := symbol.Version{X: 5, Y: 5}
	bmp, syms, palette, _ := renderDockedPair(t, colorNumber, version)
	sideModules := symbol.SideSize(5)

	hostFrame, err := detect.LocateFrame(bmp)
	if err != nil {
		t.Fatalf("LocateFrame: %v", err)
	}

	slaveFrame, err := detect.DetectSlave(bmp, hostFrame.Bounds, hostFrame.ModuleSize, symbol.DockEast)
	if err != nil {
		t.Fatalf("DetectSlave: %v", err)
	}
	if slaveFrame.WidthModules != sideModules || slaveFrame.HeightModules != sideModules {
		t.Errorf("slave grid = %dx%d, want %dx%d", slaveFrame.WidthModules, slaveFrame.HeightModules, sideModules, sideModules)
	}

	grid := detect.Sample(bmp, slaveFrame, func(r, g, b byte) int {
		return classify.NearestColor(r, g, b, palette.Colors)
	})
	for y, row := range syms[1].ModuleMatrix {
		for x, want := range row {
			if grid.Values[y][x] != want {
				t.Fatalf("slave module (%d,%d) = %d, want %d", x, y, grid.Values[y][x], want)
			}
		}
	}
}
