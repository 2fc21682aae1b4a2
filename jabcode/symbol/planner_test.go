package symbol

import "testing"

func TestSideSizeMatchesVersionFormula(t *testing.T) {
	cases := map[int]int{1: 21, 2: 25, 3: 29, 32: 145}
	for v, want := range cases {
		if got := SideSize(v); got != want {
			t.Errorf("SideSize(%d) = %d, want %d", v, got, want)
		}
	}
}

func TestIsDefaultMode(t *testing.T) {
	if !IsDefaultMode(8, 0) {
		t.Error("color_number=8, ecc_level=0 should be default mode")
	}
	if !IsDefaultMode(8, DefaultECCLevel) {
		t.Error("color_number=8 at the default ECC level should be default mode")
	}
	if IsDefaultMode(16, 0) {
		t.Error("color_number=16 should never be default mode")
	}
	if IsDefaultMode(8, 5) {
		t.Error("a non-default ECC level should not be default mode")
	}
}

func TestSetMasterVersionFitsSmallPayload(t *testing.T) {
	version, wcwr, level, err := SetMasterVersion(8, 0, 40)
	if err != nil {
		t.Fatalf("SetMasterVersion: %v", err)
	}
	if version.X < 1 || version.X > 32 {
		t.Fatalf("unexpected version %+v", version)
	}
	if wcwr[0] >= wcwr[1] {
		t.Fatalf("expected wc < wr, got %v", wcwr)
	}
	if level != DefaultECCLevel {
		t.Fatalf("expected default ECC level, got %d", level)
	}
}

func TestAPPositionsEndsCoincideWithFinderPatterns(t *testing.T) {
	for v := 1; v <= 32; v++ {
		pos := APPositions(v)
		side := SideSize(v)
		if pos[0] != fpCoreOffset {
			t.Fatalf("version %d: first AP at %d, want %d", v, pos[0], fpCoreOffset)
		}
		if last := pos[len(pos)-1]; last != side-1-fpCoreOffset {
			t.Fatalf("version %d: last AP at %d, want %d", v, last, side-1-fpCoreOffset)
		}
	}
}

func TestPlanDockingSingleSymbol(t *testing.T) {
	plan, err := PlanDocking([]int{0})
	if err != nil {
		t.Fatalf("PlanDocking: %v", err)
	}
	if plan.Host[0] != 0 {
		t.Fatalf("master should host itself, got %d", plan.Host[0])
	}
}

func TestPlanDockingThreeSymbols(t *testing.T) {
	// positions 0 (master), 3 (west of master), 2 (south of master) per jab_symbol_pos.
	plan, err := PlanDocking([]int{0, 3, 2})
	if err != nil {
		t.Fatalf("PlanDocking: %v", err)
	}
	for i, host := range plan.Host {
		if i != 0 && host != 0 {
			t.Fatalf("symbol %d expected to dock directly to the master, got host %d", i, host)
		}
	}
}

func TestPlanDockingRejectsUndockedSymbol(t *testing.T) {
	// position 24 ({3,0}) is far from the master with nothing bridging the gap.
	_, err := PlanDocking([]int{0, 24})
	if err == nil {
		t.Fatal("expected an error for an undocked symbol")
	}
}

func TestFitPayloadSumsToInput(t *testing.T) {
	versions := []Version{{X: 5, Y: 5}, {X: 3, Y: 3}}
	eccLevels := []int{0, 0}
	hostOf := []int{0, 0}
	shares, wcwr, err := FitPayload(8, versions, eccLevels, hostOf, 200)
	if err != nil {
		t.Fatalf("FitPayload: %v", err)
	}
	total := 0
	for _, s := range shares {
		total += s
	}
	if total != 200 {
		t.Fatalf("shares sum to %d, want 200", total)
	}
	if len(wcwr) != 2 {
		t.Fatalf("expected wcwr per symbol, got %v", wcwr)
	}
}
