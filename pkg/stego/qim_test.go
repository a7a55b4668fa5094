package stego

import "testing"

func TestQIMEmbedExtractRoundTrip(t *testing.T) {
	coefficients := []float64{-40.3, -12.0, -0.4, 0, 0.4, 5.9, 12.0, 99.9}
	for _, c := range coefficients {
		for _, bit := range []int{0, 1} {
			embedded := qimEmbed(c, bit, dctDelta)
			got := qimExtract(embedded, dctDelta)
			if got != bit {
				t.Errorf("qim round trip failed for c=%v bit=%d: got %d after embedding %v", c, bit, got, embedded)
			}
		}
	}
}

func TestQIMExtractZeroIsZeroBit(t *testing.T) {
	if got := qimExtract(0, dctDelta); got != 0 {
		t.Errorf("expected bit 0 for a zero coefficient, got %d", got)
	}
}

func TestSignConvention(t *testing.T) {
	if sign(0) != 1 {
		t.Errorf("sign(0) must be +1, got %d", sign(0))
	}
	if sign(-0.001) != -1 {
		t.Errorf("sign of negative value must be -1, got %d", sign(-0.001))
	}
	if sign(0.001) != 1 {
		t.Errorf("sign of positive value must be +1, got %d", sign(0.001))
	}
}

func TestClip255(t *testing.T) {
	cases := map[float64]float64{-10: 0, 0: 0, 127.5: 127.5, 255: 255, 300: 255}
	for in, want := range cases {
		if got := clip255(in); got != want {
			t.Errorf("clip255(%v) = %v, want %v", in, got, want)
		}
	}
}
