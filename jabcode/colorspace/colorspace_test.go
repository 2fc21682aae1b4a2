package colorspace

import "testing"

func TestBitmapSetAtRoundTrips(t *testing.T) {
	b := NewBitmap(4, 3)
	b.Set(2, 1, 10, 20, 30, 40)
	r, g, bl, a := b.At(2, 1)
	if r != 10 || g != 20 || bl != 30 || a != 40 {
		t.Fatalf("At(2,1) = (%d,%d,%d,%d), want (10,20,30,40)", r, g, bl, a)
	}
}

func TestNewBitmapDefaultsToOpaque(t *testing.T) {
	b := NewBitmap(2, 2)
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if _, _, _, a := b.At(x, y); a != 255 {
				t.Fatalf("At(%d,%d) alpha = %d, want 255", x, y, a)
			}
		}
	}
}

func TestBitmapValidateRejectsMismatchedBuffer(t *testing.T) {
	b := &Bitmap{Width: 4, Height: 4, Pixel: make([]byte, 10)}
	if err := b.Validate(); err == nil {
		t.Fatal("expected Validate to reject a pixel buffer of the wrong length")
	}
}

func TestSplitChannelsDoesNotAliasSource(t *testing.T) {
	b := NewBitmap(2, 2)
	b.Set(0, 0, 11, 22, 33, 255)

	channels := SplitChannels(b)
	if got := channels[ChannelRed].At(0, 0); got != 11 {
		t.Fatalf("red channel at (0,0) = %d, want 11", got)
	}

	channels[ChannelRed].Set(0, 0, 99)
	if r, _, _, _ := b.At(0, 0); r != 11 {
		t.Fatalf("mutating the split channel changed the source bitmap: red = %d, want 11", r)
	}
}

func TestNewPaletteSizes(t *testing.T) {
	for _, n := range []int{4, 8, 16, 32, 64, 128, 256} {
		p := NewPalette(n)
		if len(p.Colors) != n {
			t.Errorf("NewPalette(%d) has %d colors, want %d", n, len(p.Colors), n)
		}
	}
}

func TestNewPalette8MatchesDefaultPalette(t *testing.T) {
	p := NewPalette(8)
	for i, c := range DefaultPalette8 {
		if p.Colors[i] != c {
			t.Errorf("NewPalette(8).Colors[%d] = %v, want %v", i, p.Colors[i], c)
		}
	}
}
