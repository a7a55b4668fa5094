package stego

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
)

// AnalysisResult holds metrics about the comparison between a cover image
// and its stego counterpart.
type AnalysisResult struct {
	MSE  float64 // Mean Squared Error over the B/G/R channels
	PSNR float64 // Peak Signal-to-Noise Ratio (dB)
}

// Analyze compares a cover image with a stego image produced from it,
// returning MSE/PSNR and writing a per-pixel difference heatmap to
// heatmapPath. It is a supplemental diagnostic, not part of the carrier
// round-trip contract: a well-formed embed typically produces PSNR above
// 30dB on natural images, but Analyze does not enforce that threshold.
func Analyze(coverPath, stegoPath, heatmapPath string) (*AnalysisResult, error) {
	const op = "Analyze"
	cover, err := decodeBGR(coverPath)
	if err != nil {
		return nil, err
	}
	stego, err := decodeBGR(stegoPath)
	if err != nil {
		return nil, err
	}
	if cover.width != stego.width || cover.height != stego.height {
		return nil, newErr(KindBadHeader, op, fmt.Sprintf("dimensions do not match: %dx%d vs %dx%d",
			cover.width, cover.height, stego.width, stego.height))
	}

	width, height := cover.width, cover.height
	heatmap := image.NewNRGBA(image.Rect(0, 0, width, height))

	bar := progressbar.NewOptions(
		width*height,
		progressbar.OptionSetDescription("analyzing"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetWidth(15),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowCount(),
		progressbar.OptionOnCompletion(func() { fmt.Fprint(os.Stderr, "\n") }),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionFullWidth(),
		progressbar.OptionSetRenderBlankState(true),
	)

	var sumSquaredError float64
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			bar.Add(1)
			i := (y*width + x) * 3

			var diffSum float64
			modified := false
			for c := 0; c < 3; c++ {
				v1 := float64(cover.pix[i+c])
				v2 := float64(stego.pix[i+c])
				diff := v1 - v2
				sumSquaredError += diff * diff
				diffSum += math.Abs(diff)
				if cover.pix[i+c] != stego.pix[i+c] {
					modified = true
				}
			}

			if modified {
				intensity := uint8(math.Min(255, diffSum*50))
				heatmap.Set(x, y, color.NRGBA{R: intensity, G: 255 - intensity, B: 0, A: 255})
			} else {
				heatmap.Set(x, y, color.NRGBA{R: 0, G: 0, B: 0, A: 255})
			}
		}
	}

	totalPixels := float64(width * height)
	mse := sumSquaredError / (totalPixels * 3.0)
	psnr := 10 * math.Log10((255*255)/mse)

	f, err := os.Create(heatmapPath)
	if err != nil {
		return nil, wrapErr(KindIOWrite, op, heatmapPath, err)
	}
	defer f.Close()
	if err := png.Encode(f, heatmap); err != nil {
		return nil, wrapErr(KindIOWrite, op, heatmapPath, err)
	}

	return &AnalysisResult{MSE: mse, PSNR: psnr}, nil
}
