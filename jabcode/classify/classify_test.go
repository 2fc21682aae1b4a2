package classify

import (
	"testing"

	"github.com/jabcode/jabcode/jabcode/colorspace"
	"github.com/jabcode/jabcode/jabcode/interleave"
	"github.com/jabcode/jabcode/jabcode/ldpc"
	"github.com/jabcode/jabcode/jabcode/mask"
	"github.com/jabcode/jabcode/jabcode/matrixbuilder"
	"github.com/jabcode/jabcode/jabcode/symbol"
)

func TestNearestColorExactMatches(t *testing.T) {
	palette := colorspace.DefaultPalette8[:]
	for i, c := range palette {
		if got := NearestColor(c.R, c.G, c.B, palette); got != i {
			t.Errorf("NearestColor(%v) = %d, want %d", c, got, i)
		}
	}
}

func TestNearestColorNoisyStillClassifies(t *testing.T) {
	palette := colorspace.DefaultPalette8[:]
	black := palette[colorspace.FP0CoreColor]
	r, g, b := black.R+10, black.G, black.B
	got := NearestColor(r, g, b, palette)
	if got != colorspace.FP0CoreColor {
		t.Errorf("NearestColor with slight noise = %d, want %d", got, colorspace.FP0CoreColor)
	}
}

func TestGatherAndExpandRoundTripThroughPlaceData(t *testing.T) {
	sym := symbol.NewSymbol(0, symbol.Version{X: 5, Y: 5})
	colorNumber := 8
	encoded := make([]byte, 200)
	for i := range encoded {
		encoded[i] = byte((i * 3) % 2)
	}
	matrixbuilder.Build(sym, colorNumber, nil, nil, true, encoded)

	values := GatherDataModules(sym.ModuleMatrix, sym.DataMap)
	bits := ExpandBits(values, colorNumber)

	if len(bits) < len(encoded) {
		t.Fatalf("expanded %d bits, too few to contain the %d encoded", len(bits), len(encoded))
	}
	for i := range encoded {
		if bits[i] != encoded[i] {
			t.Fatalf("bit %d = %d, want %d", i, bits[i], encoded[i])
		}
	}
}

func TestDecodeSymbolDataRoundTripsThroughMaskAndInterleave(t *testing.T) {
	colorNumber := 8
	wc, wr := 4, 7

	probe := symbol.NewSymbol(0, symbol.Version{X: 6, Y: 6})
	matrixbuilder.Build(probe, colorNumber, nil, nil, true, nil)
	capacity := countData(probe) * symbol.BitsPerModule(colorNumber)
	capacity -= capacity % wr // drop any partial block so the LDPC codeword exactly fills capacity
	pn := capacity / wr * (wr - wc)

	msg := make([]byte, pn)
	for i := range msg {
		msg[i] = byte((i * 7) % 2)
	}

	ldpcEncoded, err := ldpc.Encode(msg, wc, wr, ldpc.MessageSeed)
	if err != nil {
		t.Fatalf("ldpc.Encode: %v", err)
	}
	if len(ldpcEncoded) != capacity {
		t.Fatalf("ldpc.Encode produced %d bits, want exactly the %d-bit capacity", len(ldpcEncoded), capacity)
	}

	sym := symbol.NewSymbol(0, symbol.Version{X: 6, Y: 6})
	sym.WcWr = [2]int{wc, wr}
	matrixbuilder.Build(sym, colorNumber, nil, nil, true, interleave.Interleave(ldpcEncoded))

	maskType := mask.SelectAndApply(sym, colorNumber)

	got, err := DecodeSymbolData(sym, colorNumber, maskType)
	if err != nil {
		t.Fatalf("DecodeSymbolData: %v", err)
	}
	if len(got) != len(msg) {
		t.Fatalf("decoded %d bits, want %d", len(got), len(msg))
	}
	for i := range msg {
		if got[i] != msg[i] {
			t.Fatalf("bit %d = %d, want %d", i, got[i], msg[i])
		}
	}
}

func countData(sym *symbol.Symbol) int {
	n := 0
	for _, row := range sym.DataMap {
		for _, v := range row {
			if v {
				n++
			}
		}
	}
	return n
}
