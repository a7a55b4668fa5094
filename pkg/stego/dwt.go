package stego

import (
	"github.com/rs/zerolog/log"
)

const dwtMagic = "DWT1"
const dwtQ = 14.0

// waveletBackend performs a single-level 2-D Haar decomposition and its
// inverse. It is a registry-swappable seam: tests can replace
// waveletBackendInUse with nil to exercise the "feature unavailable" path
// without deleting the only implementation.
type waveletBackend interface {
	forward(plane [][]float64, h, w int) (cA, cH, cV, cD [][]float64, h1, w1 int)
	inverse(cA, cH, cV, cD [][]float64, h1, w1, h, w int) [][]float64
}

// waveletBackendInUse is the active backend. Defaults to the always-available
// pure-Go Haar implementation.
var waveletBackendInUse waveletBackend = haarBackend{}

// haarBackend implements waveletBackend using the single-level Haar wavelet
// with symmetric boundary extension.
type haarBackend struct{}

func (haarBackend) forward(plane [][]float64, h, w int) (cA, cH, cV, cD [][]float64, h1, w1 int) {
	h1 = (h + 1) / 2
	w1 = (w + 1) / 2

	// Row pass: low-pass (L) and high-pass (H) filtering along columns,
	// downsampled by 2, using symmetric (mirror, edge-repeating) extension
	// at the right boundary for odd dimensions.
	lo := make([][]float64, h)
	hi := make([][]float64, h)
	for y := 0; y < h; y++ {
		lo[y] = make([]float64, w1)
		hi[y] = make([]float64, w1)
		for x := 0; x < w1; x++ {
			a := plane[y][reflect(2*x, w)]
			b := plane[y][reflect(2*x+1, w)]
			lo[y][x] = (a + b) / sqrt2
			hi[y][x] = (a - b) / sqrt2
		}
	}

	// Column pass on each of the row-pass outputs.
	cA = make([][]float64, h1)
	cH = make([][]float64, h1)
	cV = make([][]float64, h1)
	cD = make([][]float64, h1)
	for y := 0; y < h1; y++ {
		cA[y] = make([]float64, w1)
		cH[y] = make([]float64, w1)
		cV[y] = make([]float64, w1)
		cD[y] = make([]float64, w1)
		for x := 0; x < w1; x++ {
			loA := lo[reflect(2*y, h)][x]
			loB := lo[reflect(2*y+1, h)][x]
			hiA := hi[reflect(2*y, h)][x]
			hiB := hi[reflect(2*y+1, h)][x]
			cA[y][x] = (loA + loB) / sqrt2
			cV[y][x] = (loA - loB) / sqrt2
			cH[y][x] = (hiA + hiB) / sqrt2
			cD[y][x] = (hiA - hiB) / sqrt2
		}
	}
	return cA, cH, cV, cD, h1, w1
}

func (haarBackend) inverse(cA, cH, cV, cD [][]float64, h1, w1, h, w int) [][]float64 {
	lo := make([][]float64, h)
	hi := make([][]float64, h)
	for y := range lo {
		lo[y] = make([]float64, w1)
		hi[y] = make([]float64, w1)
	}
	for y := 0; y < h1; y++ {
		for x := 0; x < w1; x++ {
			loA := (cA[y][x] + cV[y][x]) / sqrt2
			loB := (cA[y][x] - cV[y][x]) / sqrt2
			hiA := (cH[y][x] + cD[y][x]) / sqrt2
			hiB := (cH[y][x] - cD[y][x]) / sqrt2
			if 2*y < h {
				lo[2*y][x] = loA
				hi[2*y][x] = hiA
			}
			if 2*y+1 < h {
				lo[2*y+1][x] = loB
				hi[2*y+1][x] = hiB
			}
		}
	}

	out := make([][]float64, h)
	for y := 0; y < h; y++ {
		out[y] = make([]float64, w)
		for x := 0; x < w1; x++ {
			a := (lo[y][x] + hi[y][x]) / sqrt2
			b := (lo[y][x] - hi[y][x]) / sqrt2
			if 2*x < w {
				out[y][2*x] = a
			}
			if 2*x+1 < w {
				out[y][2*x+1] = b
			}
		}
	}
	return out
}

// reflect maps an index in [0, n] back into [0, n) by mirroring the single
// index past the right edge onto n-1, the symmetric extension used when n is
// odd. Every index >= n maps to n-1.
func reflect(i, n int) int {
	if i < n {
		return i
	}
	return n - 1
}

const sqrt2 = 1.4142135623730951

// dwtCarrier implements Carrier using single-level Haar DWT quantization-
// index modulation on the luma plane's horizontal and vertical detail
// sub-bands.
type dwtCarrier struct{}

func (dwtCarrier) Name() string  { return "dwt" }
func (dwtCarrier) Magic() string { return dwtMagic }

func (dwtCarrier) Encode(coverPath string, message []byte, outPath string) error {
	const op = "dwt.Encode"
	if waveletBackendInUse == nil {
		return newErr(KindFeatureUnavailable, op, "no wavelet backend registered")
	}
	log.Info().Str("cover", coverPath).Msg("loading cover image")

	img, err := decodeGray(coverPath)
	if err != nil {
		return err
	}
	if img.height < 2 || img.width < 2 {
		return newErr(KindImageTooSmall, op, "image too small for one DWT level")
	}

	plane := grayPlane(img)
	cA, cH, cV, cD, h1, w1 := waveletBackendInUse.forward(plane, img.height, img.width)

	frame := buildFrame(dwtMagic, message)
	bits := bytesToBits(frame)
	capBits := h1*w1 + h1*w1
	if len(bits) > capBits {
		return newErr(KindCapacityExceeded, op, "message exceeds DWT capacity of cover image")
	}

	sink := newDWTBitSink(cH, cV, h1, w1)
	bar := newProgressBar(int64(len(bits)), " 🔒 Encoding (dwt)")
	for _, b := range bits {
		sink.writeBit(b)
		bar.Add(1)
	}

	restored := waveletBackendInUse.inverse(cA, cH, cV, cD, h1, w1, img.height, img.width)
	out := &planarImage{pix: make([]byte, img.height*img.width), width: img.width, height: img.height, channels: 1}
	for y := 0; y < img.height; y++ {
		for x := 0; x < img.width; x++ {
			out.pix[y*img.width+x] = uint8(clip255(restored[y][x]) + 0.5)
		}
	}

	log.Debug().Int("bitsWritten", len(bits)).Int("capacityBits", capBits).Msg("embedded DWT payload")
	log.Info().Str("output", outPath).Msg("saving stego image")
	return saveImage(grayToColorImage(out), outPath)
}

func (dwtCarrier) Decode(stegoPath string) (string, error) {
	const op = "dwt.Decode"
	if waveletBackendInUse == nil {
		return "", newErr(KindFeatureUnavailable, op, "no wavelet backend registered")
	}
	img, err := decodeGray(stegoPath)
	if err != nil {
		return "", err
	}
	if img.height < 2 || img.width < 2 {
		return "", newErr(KindImageTooSmall, op, "image too small for one DWT level")
	}

	plane := grayPlane(img)
	_, cH, cV, _, h1, w1 := waveletBackendInUse.forward(plane, img.height, img.width)

	src := newDWTBitSource(cH, cV, h1, w1)
	bar := newProgressBar(0, " 🔓 Decoding (dwt)")
	body, err := parseFrameProgress(src, dwtMagic, op, bar)
	if err != nil {
		return "", err
	}
	return decodeText(body), nil
}

func (dwtCarrier) Capacity(coverPath string) (int, error) {
	// Capacity advertises 0 rather than erroring when no backend is
	// registered: a host UI calling Capacity to size a progress bar should
	// not have to special-case this carrier.
	if waveletBackendInUse == nil {
		return 0, nil
	}
	img, err := decodeGray(coverPath)
	if err != nil {
		return 0, err
	}
	if img.height < 2 || img.width < 2 {
		return 0, nil
	}
	h1 := (img.height + 1) / 2
	w1 := (img.width + 1) / 2
	capBits := h1*w1 + h1*w1
	avail := capBits - frameHeaderBits
	if avail < 0 {
		return 0, nil
	}
	return avail / 8, nil
}

// grayPlane converts a single-channel planarImage's byte buffer into a
// [y][x]float64 plane for the wavelet transform.
func grayPlane(img *planarImage) [][]float64 {
	plane := make([][]float64, img.height)
	for y := 0; y < img.height; y++ {
		plane[y] = make([]float64, img.width)
		for x := 0; x < img.width; x++ {
			plane[y][x] = float64(img.pix[y*img.width+x])
		}
	}
	return plane
}

// dwtBitSink writes bits into cH (row-major) then cV (row-major).
type dwtBitSink struct {
	cH, cV [][]float64
	h1, w1 int
	n      int // bits written so far
}

func newDWTBitSink(cH, cV [][]float64, h1, w1 int) *dwtBitSink {
	return &dwtBitSink{cH: cH, cV: cV, h1: h1, w1: w1}
}

func (s *dwtBitSink) writeBit(bit int) bool {
	total := s.h1 * s.w1
	if s.n < total {
		y, x := s.n/s.w1, s.n%s.w1
		s.cH[y][x] = qimEmbed(s.cH[y][x], bit, dwtQ)
	} else if s.n < 2*total {
		idx := s.n - total
		y, x := idx/s.w1, idx%s.w1
		s.cV[y][x] = qimEmbed(s.cV[y][x], bit, dwtQ)
	} else {
		return false
	}
	s.n++
	return true
}

// dwtBitSource mirrors dwtBitSink for extraction.
type dwtBitSource struct {
	cH, cV [][]float64
	h1, w1 int
	n      int
}

func newDWTBitSource(cH, cV [][]float64, h1, w1 int) *dwtBitSource {
	return &dwtBitSource{cH: cH, cV: cV, h1: h1, w1: w1}
}

func (s *dwtBitSource) nextBit() (int, bool) {
	total := s.h1 * s.w1
	var bit int
	if s.n < total {
		y, x := s.n/s.w1, s.n%s.w1
		bit = qimExtract(s.cH[y][x], dwtQ)
	} else if s.n < 2*total {
		idx := s.n - total
		y, x := idx/s.w1, idx%s.w1
		bit = qimExtract(s.cV[y][x], dwtQ)
	} else {
		return 0, false
	}
	s.n++
	return bit, true
}
