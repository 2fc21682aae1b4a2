package mask

import (
	"testing"

	"github.com/jabcode/jabcode/jabcode/matrixbuilder"
	"github.com/jabcode/jabcode/jabcode/symbol"
)

func buildTestSymbol(t *testing.T) *symbol.Symbol {
	t.Helper()
	sym := symbol.NewSymbol(0, symbol.Version{X: 5, Y: 5})
	encoded := make([]byte, 300)
	for i := range encoded {
		encoded[i] = byte(i % 2)
	}
	matrixbuilder.Build(sym, 8, nil, nil, true, encoded)
	return sym
}

func TestApplyThenDemaskRoundTrips(t *testing.T) {
	sym := buildTestSymbol(t)

	before := matrixCopy(sym)
	Apply(sym, 8, 3)

	changed := false
	for y, row := range sym.DataMap {
		for x, isData := range row {
			if isData && sym.ModuleMatrix[y][x] != before[y][x] {
				changed = true
			}
			if !isData && sym.ModuleMatrix[y][x] != before[y][x] {
				t.Fatalf("non-data module (%d,%d) was modified by Apply", x, y)
			}
		}
	}
	if !changed {
		t.Fatal("expected at least one data module to change after masking")
	}

	// collect the masked data values in PlaceData's column-major order, then demask and compare.
	width := len(sym.DataMap[0])
	data := make([]int, 0)
	for x := 0; x < width; x++ {
		for y := 0; y < len(sym.DataMap); y++ {
			if sym.DataMap[y][x] {
				data = append(data, sym.ModuleMatrix[y][x])
			}
		}
	}
	Demask(data, sym.DataMap, 3, 8)

	idx := 0
	for x := 0; x < width; x++ {
		for y := 0; y < len(sym.DataMap); y++ {
			if !sym.DataMap[y][x] {
				continue
			}
			if data[idx] != before[y][x] {
				t.Errorf("demasked value at (%d,%d) = %d, want %d", x, y, data[idx], before[y][x])
			}
			idx++
		}
	}
}

func TestSelectAndApplyPicksAPatternInRange(t *testing.T) {
	sym := buildTestSymbol(t)
	chosen := SelectAndApply(sym, 8)
	if chosen < 0 || chosen >= NumberOfMaskPatterns {
		t.Fatalf("mask type %d out of range [0,%d)", chosen, NumberOfMaskPatterns)
	}
}

func TestEvaluateIgnoresUnfilledCells(t *testing.T) {
	matrix := [][]int{
		{unfilled, unfilled, unfilled},
		{unfilled, unfilled, unfilled},
		{unfilled, unfilled, unfilled},
	}
	if score := Evaluate(matrix, 8); score != 0 {
		t.Errorf("all-unfilled matrix scored %d, want 0", score)
	}
}
