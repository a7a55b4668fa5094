// Package stego hides and recovers short byte payloads inside raster images
// using LSB substitution, block-DCT QIM, and single-level Haar DWT QIM.
package stego

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

func init() {
	// Register additional decoders so image.Decode recognizes them alongside
	// the standard library's PNG/GIF/JPEG, matching the reference tool's
	// reliance on image.Decode format sniffing but widening cover support.
	image.RegisterFormat("bmp", "BM", bmp.Decode, bmp.DecodeConfig)
	image.RegisterFormat("tiff", "II*\x00", tiff.Decode, tiff.DecodeConfig)
	image.RegisterFormat("tiff", "MM\x00*", tiff.Decode, tiff.DecodeConfig)
	image.RegisterFormat("webp", "RIFF????WEBP", webp.Decode, webp.DecodeConfig)
}

// planarImage is a normalised (H,W,C) byte view of a decoded image, raster
// order (row, column, channel). LSB and DCT operate on BGR (C=3); DWT
// operates on single-channel luma (C=1).
type planarImage struct {
	pix           []byte
	width, height int
	channels      int
}

func (p *planarImage) size() int { return p.width * p.height * p.channels }

// decodeBGR loads path and returns it as an (H,W,3) BGR byte buffer.
func decodeBGR(path string) (*planarImage, error) {
	img, err := decodeFile(path)
	if err != nil {
		return nil, err
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	nrgba := toNRGBA(img)

	pix := make([]byte, w*h*3)
	i := 0
	minX, minY := nrgba.Rect.Min.X, nrgba.Rect.Min.Y
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			off := nrgba.PixOffset(minX+x, minY+y)
			r, g, b := nrgba.Pix[off], nrgba.Pix[off+1], nrgba.Pix[off+2]
			pix[i], pix[i+1], pix[i+2] = b, g, r
			i += 3
		}
	}
	return &planarImage{pix: pix, width: w, height: h, channels: 3}, nil
}

// decodeGray loads path and returns it as an (H,W,1) luma byte buffer, the
// dedicated grayscale decode path used by the DWT carrier (unlike DCT, which
// derives luma from a full YCbCr split of a color decode, DWT's contract
// decodes straight to single-channel luma).
func decodeGray(path string) (*planarImage, error) {
	img, err := decodeFile(path)
	if err != nil {
		return nil, err
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	gray := image.NewGray(image.Rect(0, 0, w, h))
	draw.Draw(gray, gray.Bounds(), img, bounds.Min, draw.Src)

	pix := make([]byte, w*h)
	copy(pix, gray.Pix)
	return &planarImage{pix: pix, width: w, height: h, channels: 1}, nil
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, wrapErr(KindIORead, "decodeFile", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, wrapErr(KindIORead, "decodeFile", path, err)
	}
	return img, nil
}

func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok {
		return n
	}
	bounds := img.Bounds()
	out := image.NewNRGBA(bounds)
	draw.Draw(out, bounds, img, bounds.Min, draw.Src)
	return out
}

// bgrToColorImage converts a BGR planar buffer back into an *image.NRGBA for
// encoding.
func bgrToColorImage(p *planarImage) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, p.width, p.height))
	i := 0
	for y := 0; y < p.height; y++ {
		for x := 0; x < p.width; x++ {
			b, g, r := p.pix[i], p.pix[i+1], p.pix[i+2]
			out.SetNRGBA(x, y, color.NRGBA{R: r, G: g, B: b, A: 255})
			i += 3
		}
	}
	return out
}

// grayToColorImage converts a single-channel luma planar buffer into an
// *image.Gray for encoding.
func grayToColorImage(p *planarImage) *image.Gray {
	out := image.NewGray(image.Rect(0, 0, p.width, p.height))
	copy(out.Pix, p.pix)
	return out
}

// saveImage writes img to outPath, creating parent directories and appending
// .png when the path has no extension. PNG, BMP, GIF and JPEG outputs are
// supported; any other extension is rejected with an io_write_failed error.
// JPEG and GIF output is allowed but flagged: neither is guaranteed to
// round-trip a stego payload. The image is encoded in memory first, so an
// encoding failure leaves outPath untouched.
func saveImage(img image.Image, outPath string) error {
	if filepath.Ext(outPath) == "" {
		outPath += ".png"
	}
	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return wrapErr(KindIOWrite, "saveImage", outPath, err)
		}
	}

	ext := strings.ToLower(filepath.Ext(outPath))
	if ext == ".jpg" || ext == ".jpeg" || ext == ".gif" {
		log.Warn().Str("output", outPath).Msg("writing stego payload to a lossy container; round-trip is not guaranteed")
	}

	var buf bytes.Buffer
	if err := encodeImage(&buf, ext, img); err != nil {
		return wrapErr(KindIOWrite, "saveImage", outPath, err)
	}
	if err := os.WriteFile(outPath, buf.Bytes(), 0o666); err != nil {
		return wrapErr(KindIOWrite, "saveImage", outPath, err)
	}
	return nil
}

func encodeImage(w io.Writer, ext string, img image.Image) error {
	switch ext {
	case ".bmp":
		return bmp.Encode(w, img)
	case ".gif":
		return gif.Encode(w, img, nil)
	case ".jpg", ".jpeg":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 95})
	case ".png", "":
		return png.Encode(w, img)
	default:
		return fmt.Errorf("unsupported output extension %q", ext)
	}
}
