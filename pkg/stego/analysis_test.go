package stego

import (
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestAnalyzeMetrics(t *testing.T) {
	tmpDir := t.TempDir()
	origPath := filepath.Join(tmpDir, "orig.png")
	stegoPath := filepath.Join(tmpDir, "stego.png")
	heatmapPath := filepath.Join(tmpDir, "heatmap.png")

	img1 := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	writePNG(t, origPath, img1)
	writePNG(t, stegoPath, img1)

	result, err := Analyze(origPath, stegoPath, heatmapPath)
	if err != nil {
		t.Fatalf("Analyze failed for identical images: %v", err)
	}
	if result.MSE != 0 {
		t.Errorf("expected MSE 0 for identical images, got %f", result.MSE)
	}
	if !math.IsInf(result.PSNR, 1) {
		t.Errorf("expected PSNR +Inf for identical images, got %f", result.PSNR)
	}

	// Change one pixel's red channel by 10 out of 100 pixels * 3 channels.
	img2 := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	img2.Set(0, 0, color.NRGBA{R: 10, G: 0, B: 0, A: 255})
	writePNG(t, stegoPath, img2)

	result, err = Analyze(origPath, stegoPath, heatmapPath)
	if err != nil {
		t.Fatalf("Analyze failed for modified image: %v", err)
	}

	expectedMSE := 100.0 / 300.0
	if math.Abs(result.MSE-expectedMSE) > 0.0001 {
		t.Errorf("MSE calculation incorrect, got %f want %f", result.MSE, expectedMSE)
	}
	expectedPSNR := 10 * math.Log10((255*255)/expectedMSE)
	if math.Abs(result.PSNR-expectedPSNR) > 0.0001 {
		t.Errorf("PSNR calculation incorrect, got %f want %f", result.PSNR, expectedPSNR)
	}

	if _, err := os.Stat(heatmapPath); os.IsNotExist(err) {
		t.Error("heatmap file was not created")
	}
}

func TestAnalyzeDimensionMismatch(t *testing.T) {
	tmpDir := t.TempDir()
	origPath := filepath.Join(tmpDir, "orig.png")
	stegoPath := filepath.Join(tmpDir, "stego.png")
	heatmapPath := filepath.Join(tmpDir, "heatmap.png")

	writePNG(t, origPath, image.NewNRGBA(image.Rect(0, 0, 10, 10)))
	writePNG(t, stegoPath, image.NewNRGBA(image.Rect(0, 0, 12, 10)))

	if _, err := Analyze(origPath, stegoPath, heatmapPath); err == nil {
		t.Fatal("expected an error for mismatched dimensions")
	}
}

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode png to %s: %v", path, err)
	}
}
