package ldpc

import (
	"math/rand"
	"testing"
)

func randomMessage(n int, seed int64) []byte {
	r := rand.New(rand.NewSource(seed))
	msg := make([]byte, n)
	for i := range msg {
		msg[i] = byte(r.Intn(2))
	}
	return msg
}

func TestEncodeDecodeHardRoundTrip(t *testing.T) {
	const wc, wr = 4, 9
	msg := randomMessage(100, 1)

	codeword, err := Encode(msg, wc, wr, MessageSeed)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(codeword) != 180 {
		t.Fatalf("codeword length = %d, want 180", len(codeword))
	}

	got, err := DecodeHard(append([]byte(nil), codeword...), wc, wr, MessageSeed)
	if err != nil {
		t.Fatalf("DecodeHard (no errors): %v", err)
	}
	if !bytesEqual(got, msg) {
		t.Fatalf("round trip mismatch with no bit errors")
	}
}

func TestDecodeHardCorrectsBitFlips(t *testing.T) {
	const wc, wr = 4, 9
	msg := randomMessage(100, 2)

	codeword, err := Encode(msg, wc, wr, MessageSeed)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	corrupted := append([]byte(nil), codeword...)
	corrupted[3] ^= 1
	corrupted[50] ^= 1

	got, err := DecodeHard(corrupted, wc, wr, MessageSeed)
	if err != nil {
		t.Fatalf("DecodeHard with 2 bit errors: %v", err)
	}
	if !bytesEqual(got, msg) {
		t.Fatalf("decoder failed to correct 2-bit error pattern")
	}
}

func TestDecodeSoftCorrectsNoise(t *testing.T) {
	const wc, wr = 4, 9
	msg := randomMessage(100, 3)

	codeword, err := Encode(msg, wc, wr, MessageSeed)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	enc := make([]float64, len(codeword))
	for i, bit := range codeword {
		if bit == 1 {
			enc[i] = -1.0
		} else {
			enc[i] = 1.0
		}
	}
	// flip the reliability sign at one position, simulating a demodulation error.
	enc[7] = -enc[7]

	got, err := DecodeSoft(enc, wc, wr, MessageSeed)
	if err != nil {
		t.Fatalf("DecodeSoft: %v", err)
	}
	if !bytesEqual(got, msg) {
		t.Fatalf("soft decoder failed to correct single-sign error")
	}
}

func TestGaussJordanRankMatchesMatrixDesign(t *testing.T) {
	a := createMatrixA(4, 9, 180, MessageSeed)
	rank := gaussJordan(a, true)
	if rank != 77 {
		t.Fatalf("rank = %d, want 77 (80 parity rows less 3 dependent ones)", rank)
	}
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
