package raster

import (
	"testing"

	"github.com/jabcode/jabcode/jabcode/colorspace"
	"github.com/jabcode/jabcode/jabcode/matrixbuilder"
	"github.com/jabcode/jabcode/jabcode/symbol"
)

func buildFilledSymbol(index int, version symbol.Version, colorNumber int) *symbol.Symbol {
	sym := symbol.NewSymbol(index, version)
	matrixbuilder.Build(sym, colorNumber, nil, nil, true, nil)
	return sym
}

func TestPlaceSymbolsSingleMasterIsAtOrigin(t *testing.T) {
	sym := buildFilledSymbol(0, symbol.Version{X: 5, Y: 5}, 8)
	plan, err := symbol.PlanDocking([]int{0})
	if err != nil {
		t.Fatalf("PlanDocking: %v", err)
	}
	layout := PlaceSymbols([]*symbol.Symbol{sym}, plan)
	if layout.OriginX[0] != 0 || layout.OriginY[0] != 0 {
		t.Fatalf("single-symbol origin = (%d,%d), want (0,0)", layout.OriginX[0], layout.OriginY[0])
	}
	sx, sy := sym.Version.SideSize()
	if layout.WidthModules != sx || layout.HeightModules != sy {
		t.Fatalf("layout = %dx%d, want %dx%d", layout.WidthModules, layout.HeightModules, sx, sy)
	}
}

func TestRenderSingleSymbolHasQuietZoneBorder(t *testing.T) {
	sym := buildFilledSymbol(0, symbol.Version{X: 5, Y: 5}, 8)
	plan, err := symbol.PlanDocking([]int{0})
	if err != nil {
		t.Fatalf("PlanDocking: %v", err)
	}
	layout := PlaceSymbols([]*symbol.Symbol{sym}, plan)
	palette := colorspace.NewPalette(8)
	const moduleSize = 3

	bmp := Render([]*symbol.Symbol{sym}, []*colorspace.Palette{palette}, moduleSize, layout)

	sx, sy := sym.Version.SideSize()
	wantWidth := (sx + 2*QuietZoneModules) * moduleSize
	wantHeight := (sy + 2*QuietZoneModules) * moduleSize
	if bmp.Width != wantWidth || bmp.Height != wantHeight {
		t.Fatalf("bitmap = %dx%d, want %dx%d", bmp.Width, bmp.Height, wantWidth, wantHeight)
	}

	if r, g, b, _ := bmp.At(0, 0); r != 255 || g != 255 || b != 255 {
		t.Errorf("corner of quiet zone = (%d,%d,%d), want white", r, g, b)
	}

	qz := QuietZoneModules * moduleSize
	wantColor := palette.Colors[sym.ModuleMatrix[0][0]]
	if r, g, b, _ := bmp.At(qz, qz); r != wantColor.R || g != wantColor.G || b != wantColor.B {
		t.Errorf("first module pixel = (%d,%d,%d), want %v", r, g, b, wantColor)
	}
}

func TestPlaceSymbolsDocksMasterAndSlaveSideBySide(t *testing.T) {
	master := buildFilledSymbol(0, symbol.Version{X: 5, Y: 5}, 8)
	slave := buildFilledSymbol(1, symbol.Version{X: 5, Y: 5}, 8)

	// position 4 is symbol.SymbolPos[4] == {1,0}, directly east of the master at {0,0}.
	plan, err := symbol.PlanDocking([]int{0, 4})
	if err != nil {
		t.Fatalf("PlanDocking: %v", err)
	}
	layout := PlaceSymbols([]*symbol.Symbol{master, slave}, plan)

	msx, _ := master.Version.SideSize()
	if layout.OriginX[1] != layout.OriginX[0]+msx {
		t.Errorf("slave origin X = %d, want %d (east of the master)", layout.OriginX[1], layout.OriginX[0]+msx)
	}
	if layout.OriginY[1] != layout.OriginY[0] {
		t.Errorf("slave origin Y = %d, want %d (aligned with the master)", layout.OriginY[1], layout.OriginY[0])
	}
}
