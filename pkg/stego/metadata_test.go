package stego

import (
	"path/filepath"
	"testing"
)

func TestInfoDetectsCarrier(t *testing.T) {
	dir := t.TempDir()
	cover := newRandomCover(t, dir, "cover.png", 64, 64)
	out := filepath.Join(dir, "stego.png")

	c := dctCarrier{}
	message := "metadata probe"
	if err := c.Encode(cover, []byte(message), out); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	info, err := Info(out)
	if err != nil {
		t.Fatalf("Info failed: %v", err)
	}
	if info.Width != 64 || info.Height != 64 {
		t.Errorf("dimensions mismatch: got %dx%d", info.Width, info.Height)
	}
	if info.Format != "png" {
		t.Errorf("format mismatch: got %q want png", info.Format)
	}
	if info.DetectedCarrier != "dct" {
		t.Errorf("detected carrier mismatch: got %q want dct", info.DetectedCarrier)
	}
	if info.DeclaredPayloadBytes != len(message) {
		t.Errorf("declared payload size mismatch: got %d want %d", info.DeclaredPayloadBytes, len(message))
	}
}

func TestInfoPlainImageHasNoCarrier(t *testing.T) {
	dir := t.TempDir()
	cover := newRandomCover(t, dir, "cover.png", 64, 64)

	info, err := Info(cover)
	if err != nil {
		t.Fatalf("Info failed: %v", err)
	}
	if info.DetectedCarrier != "" {
		t.Errorf("expected no detected carrier for a plain image, got %q", info.DetectedCarrier)
	}
}
