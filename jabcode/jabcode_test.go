package jabcode

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jabcode/jabcode/jabcode/symbol"
)

func TestEncodeDecodeRoundTripsDefaultMode(t *testing.T) {
	payload := []byte("JABCODE round trip over the default 8-color, default-ECC single master symbol.")

	bmp, err := Encode(payload, EncodeConfig{})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	got, err := Decode(bmp)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if diff := cmp.Diff(payload, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeDecodeRoundTripsNonDefaultECCLevel(t *testing.T) {
	payload := []byte("non-default ECC level forces explicit metadata, not the default-mode fallback")

	bmp, err := Encode(payload, EncodeConfig{ColorNumber: 8, SymbolECCLevels: []int{5}})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	got, err := Decode(bmp)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if diff := cmp.Diff(payload, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeDecodeRoundTripsDockedSymbols(t *testing.T) {
	payload := []byte("a master docked to a north slave and an east slave, split and reassembled")

	version := symbol.Version{X: 6, Y: 6}
	cfg := EncodeConfig{
		ColorNumber:     8,
		SymbolPositions: []int{0, 1, 4}, // master, north slave, east slave
		SymbolVersions:  []symbol.Version{version, version, version},
		SymbolECCLevels: []int{5, 5, 5},
	}

	bmp, err := Encode(payload, cfg)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	got, err := Decode(bmp)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if diff := cmp.Diff(payload, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeRejectsEmptyPayload(t *testing.T) {
	if _, err := Encode(nil, EncodeConfig{}); err == nil {
		t.Fatal("expected Encode to reject an empty payload")
	}
}

func TestDecodeRejectsInvalidBitmap(t *testing.T) {
	bmp := &Bitmap{Width: 0, Height: 0}
	if _, err := Decode(bmp); err == nil {
		t.Fatal("expected Decode to reject a zero-sized bitmap")
	}
}
