package matrixbuilder

import (
	"testing"

	"github.com/jabcode/jabcode/jabcode/symbol"
)

func TestBuildMasterProducesDataBearingModules(t *testing.T) {
	sym := symbol.NewSymbol(0, symbol.Version{X: 5, Y: 5})
	encoded := make([]byte, 0, 400)
	for i := 0; i < 400; i++ {
		encoded = append(encoded, byte(i%2))
	}
	Build(sym, 8, nil, nil, true, encoded)

	dataModules := 0
	for _, row := range sym.DataMap {
		for _, d := range row {
			if d {
				dataModules++
			}
		}
	}
	if dataModules == 0 {
		t.Fatal("expected some data-bearing modules to remain after placing FP/AP/palette")
	}

	side := symbol.SideSize(5)
	if len(sym.ModuleMatrix) != side || len(sym.ModuleMatrix[0]) != side {
		t.Fatalf("unexpected matrix dimensions %dx%d, want %dx%d", len(sym.ModuleMatrix[0]), len(sym.ModuleMatrix), side, side)
	}

	// the top-left finder core must be the FP0 color (0) and non-data.
	if sym.DataMap[DistanceToBorder-1][DistanceToBorder-1] {
		t.Error("expected the finder-pattern core to be reserved, not data-bearing")
	}
}

func TestBuildSlaveDoesNotOverrunMatrix(t *testing.T) {
	sym := symbol.NewSymbol(1, symbol.Version{X: 3, Y: 3})
	sym.HostIndex = 0
	encoded := make([]byte, 200)
	Build(sym, 8, nil, nil, true, encoded)

	side := symbol.SideSize(3)
	if len(sym.ModuleMatrix) != side {
		t.Fatalf("unexpected side size %d, want %d", len(sym.ModuleMatrix), side)
	}
}

func TestNextMetadataModuleInMasterWalkStaysNonNegative(t *testing.T) {
	x, y := MasterMetadataX, MasterMetadataY
	for count := 1; count <= 172; count++ {
		NextMetadataModuleInMaster(29*4, 29, count, &x, &y)
		if x < 0 || y < 0 {
			t.Fatalf("module walk went negative at count %d: (%d,%d)", count, x, y)
		}
	}
}
