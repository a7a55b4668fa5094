package stego

import (
	"crypto/rand"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// newRandomCover writes a random w x h PNG to tmpDir/name and returns its
// path. Random pixel data avoids accidentally-degenerate all-zero inputs
// that could mask off-by-one errors in the QIM sign convention.
func newRandomCover(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	if _, err := rand.Read(img.Pix); err != nil {
		t.Fatalf("failed to randomize cover pixels: %v", err)
	}
	// Force full opacity; NRGBA alpha does not round-trip through BGR.
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 255
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create cover file: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode cover image: %v", err)
	}
	return path
}
