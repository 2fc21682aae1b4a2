package mode

import "testing"

func roundTrip(t *testing.T, s string) {
	t.Helper()
	data := PreprocessText(s)
	steps := Plan(data)
	bits := Encode(steps)
	got := Decode(bits)
	if string(got) != string(data) {
		t.Fatalf("round trip for %q: got %q", s, got)
	}
}

func TestRoundTripSimpleStrings(t *testing.T) {
	cases := []string{
		"HELLO",
		"hello",
		"Hello",
		"JAB",
		"Hello, World!",
		"12345",
		"Room 101, Floor 2.",
		"MiXeD CaSe 123!",
	}
	for _, c := range cases {
		roundTrip(t, c)
	}
}

func TestRoundTripLatin1Characters(t *testing.T) {
	roundTrip(t, "Straße")
	roundTrip(t, "Müller")
}

func TestRoundTripFallsBackToByteModeForUnrepresentableRunes(t *testing.T) {
	roundTrip(t, "price: 5€")
	roundTrip(t, "日本語")
}

func TestPlanPrefersSingleModeForUniformText(t *testing.T) {
	steps := Plan([]byte("HELLO"))
	for _, s := range steps {
		if s.Mode != Upper {
			t.Fatalf("expected every step to stay in Upper mode, got %v", s.Mode)
		}
	}
}
