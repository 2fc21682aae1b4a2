package metadata

import "testing"

func TestPartIRoundTrips(t *testing.T) {
	for nc := 0; nc < 8; nc++ {
		bits := EncodePartI(nc)
		if len(bits) != PartILength {
			t.Fatalf("EncodePartI(%d) length = %d, want %d", nc, len(bits), PartILength)
		}
		if got := DecodePartI(bits); got != nc {
			t.Errorf("DecodePartI(EncodePartI(%d)) = %d, want %d", nc, got, nc)
		}
	}
}

func TestPartIIRoundTrips(t *testing.T) {
	cases := []PartII{
		{MaskType: 0, DockedPosition: 0, Wc: 4, Wr: 7},
		{MaskType: 7, DockedPosition: 15, Wc: 0, Wr: 15},
		{MaskType: 3, DockedPosition: 9, Wc: 2, Wr: 3},
	}
	for _, c := range cases {
		bits := EncodePartII(c)
		if len(bits) != PartIILength {
			t.Fatalf("EncodePartII(%+v) length = %d, want %d", c, len(bits), PartIILength)
		}
		if got := DecodePartII(bits); got != c {
			t.Errorf("DecodePartII(EncodePartII(%+v)) = %+v, want %+v", c, got, c)
		}
	}
}

func TestWcBoundary(t *testing.T) {
	if Wc(19) != 2 {
		t.Errorf("Wc(19) = %d, want 2", Wc(19))
	}
	if Wc(36) != 2 {
		t.Errorf("Wc(36) = %d, want 2", Wc(36))
	}
	if Wc(37) != 3 {
		t.Errorf("Wc(37) = %d, want 3", Wc(37))
	}
}

func TestSlaveFooterRoundTripsWhenEverythingDiffers(t *testing.T) {
	f := SlaveFooter{SameVersion: false, SameECC: false, Version: 12, Wc: 4, Wr: 9}
	bits := f.Encode()
	got, pos, ok := DecodeSlaveFooter(bits, 0)
	if !ok {
		t.Fatal("DecodeSlaveFooter reported failure")
	}
	if pos != len(bits) {
		t.Errorf("pos = %d, want %d (consumed the whole footer)", pos, len(bits))
	}
	if got != f {
		t.Errorf("DecodeSlaveFooter = %+v, want %+v", got, f)
	}
}

func TestSlaveFooterRoundTripsWhenEverythingMatchesHost(t *testing.T) {
	f := SlaveFooter{SameVersion: true, SameECC: true}
	bits := f.Encode()
	if len(bits) != 2 {
		t.Fatalf("short footer length = %d, want 2", len(bits))
	}
	got, pos, ok := DecodeSlaveFooter(bits, 0)
	if !ok {
		t.Fatal("DecodeSlaveFooter reported failure")
	}
	if pos != 2 {
		t.Errorf("pos = %d, want 2", pos)
	}
	if got != f {
		t.Errorf("DecodeSlaveFooter = %+v, want %+v", got, f)
	}
}

func TestSlaveFooterTruncatedIsRejected(t *testing.T) {
	f := SlaveFooter{SameVersion: false, SameECC: false, Version: 5, Wc: 1, Wr: 2}
	bits := f.Encode()
	if _, _, ok := DecodeSlaveFooter(bits[:len(bits)-1], 0); ok {
		t.Fatal("expected truncated footer to be rejected")
	}
}

func TestDecodeSlaveFooterStartsAtGivenOffset(t *testing.T) {
	prefix := []byte{1, 0, 1}
	f := SlaveFooter{SameVersion: true, SameECC: true}
	bits := append(append([]byte(nil), prefix...), f.Encode()...)
	got, pos, ok := DecodeSlaveFooter(bits, len(prefix))
	if !ok {
		t.Fatal("DecodeSlaveFooter reported failure")
	}
	if pos != len(bits) {
		t.Errorf("pos = %d, want %d", pos, len(bits))
	}
	if got != f {
		t.Errorf("DecodeSlaveFooter = %+v, want %+v", got, f)
	}
}
