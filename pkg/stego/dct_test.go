package stego

import (
	"path/filepath"
	"testing"
)

func TestDCTRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cover := newRandomCover(t, dir, "cover.png", 64, 64)
	out := filepath.Join(dir, "stego.png")

	c := dctCarrier{}
	message := "hidden in the frequency domain"
	if err := c.Encode(cover, []byte(message), out); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	got, err := c.Decode(out)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if got != message {
		t.Errorf("message mismatch: got %q want %q", got, message)
	}
}

func TestDCTImageTooSmall(t *testing.T) {
	dir := t.TempDir()
	cover := newRandomCover(t, dir, "cover.png", 4, 4)
	out := filepath.Join(dir, "stego.png")

	c := dctCarrier{}
	if err := c.Encode(cover, []byte("x"), out); err == nil {
		t.Fatal("expected image-too-small error for a sub-block image")
	}
}

func TestDCTCapacityExceeded(t *testing.T) {
	dir := t.TempDir()
	cover := newRandomCover(t, dir, "cover.png", 16, 16)
	out := filepath.Join(dir, "stego.png")

	c := dctCarrier{}
	huge := make([]byte, 1<<16)
	if err := c.Encode(cover, huge, out); err == nil {
		t.Fatal("expected capacity exceeded error")
	}
}

func TestDCTCapacityMatchesBlockCount(t *testing.T) {
	dir := t.TempDir()
	cover := newRandomCover(t, dir, "cover.png", 32, 24)

	c := dctCarrier{}
	capBytes, err := c.Capacity(cover)
	if err != nil {
		t.Fatalf("Capacity failed: %v", err)
	}
	blocks := (32 / 8) * (24 / 8)
	wantBits := blocks*len(dctPositions) - frameHeaderBits
	want := wantBits / 8
	if capBytes != want {
		t.Errorf("capacity mismatch: got %d want %d", capBytes, want)
	}
}

func TestDCTRejectsLSBPayload(t *testing.T) {
	dir := t.TempDir()
	cover := newRandomCover(t, dir, "cover.png", 64, 64)
	out := filepath.Join(dir, "stego.png")

	lsb := lsbCarrier{}
	if err := lsb.Encode(cover, []byte("only for lsb"), out); err != nil {
		t.Fatalf("lsb Encode failed: %v", err)
	}

	dct := dctCarrier{}
	if _, err := dct.Decode(out); err == nil {
		t.Fatal("expected DCT decode of an LSB-embedded image to fail on magic mismatch")
	}
}
