package stego

import (
	"image/color"
	"math"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/mat"
)

const dctMagic = "DCT1"
const dctDelta = 12.0

// dctPositions is the fixed, in-order set of mid-frequency coefficients used
// for embedding in each 8x8 block. Low frequencies carry too much visual
// energy to perturb; high frequencies are the first casualties of any
// re-encoding, so the payload lives in between.
var dctPositions = [6][2]int{
	{3, 3}, {4, 3}, {3, 4}, {2, 3}, {3, 2}, {4, 4},
}

// dctBasis is the orthonormal type-II DCT basis matrix, built once. Row u
// holds the u-th basis vector sampled at 8 points.
var dctBasis = buildDCTBasis()

func buildDCTBasis() *mat.Dense {
	m := mat.NewDense(8, 8, nil)
	for u := 0; u < 8; u++ {
		alpha := math.Sqrt(1.0 / 8.0)
		if u != 0 {
			alpha = math.Sqrt(2.0 / 8.0)
		}
		for x := 0; x < 8; x++ {
			m.Set(u, x, alpha*math.Cos(math.Pi/8*(float64(x)+0.5)*float64(u)))
		}
	}
	return m
}

// dct2d returns the forward 2-D DCT of an 8x8 block: D = M * block * Mt.
func dct2d(block *mat.Dense) *mat.Dense {
	var tmp, out mat.Dense
	tmp.Mul(dctBasis, block)
	out.Mul(&tmp, dctBasis.T())
	return &out
}

// idct2d returns the inverse 2-D DCT of an 8x8 coefficient block:
// block = Mt * D * M.
func idct2d(d *mat.Dense) *mat.Dense {
	var tmp, out mat.Dense
	tmp.Mul(dctBasis.T(), d)
	out.Mul(&tmp, dctBasis)
	return &out
}

// dctCarrier implements Carrier using block-DCT quantization-index
// modulation on the luma plane of 8x8 blocks.
type dctCarrier struct{}

func (dctCarrier) Name() string  { return "dct" }
func (dctCarrier) Magic() string { return dctMagic }

func (dctCarrier) Encode(coverPath string, message []byte, outPath string) error {
	const op = "dct.Encode"
	log.Info().Str("cover", coverPath).Msg("loading cover image")

	img, err := decodeBGR(coverPath)
	if err != nil {
		return err
	}

	yPlane, cb, cr := splitYCbCr(img)
	h8, w8 := blockExtent(img.height), blockExtent(img.width)
	if h8 < 8 || w8 < 8 {
		return newErr(KindImageTooSmall, op, "image smaller than one 8x8 block")
	}

	frame := buildFrame(dctMagic, message)
	bits := bytesToBits(frame)
	capBits := blockCount(h8, w8) * len(dctPositions)
	if len(bits) > capBits {
		return newErr(KindCapacityExceeded, op, "message exceeds DCT capacity of cover image")
	}

	sink := newDCTBitSink(yPlane, h8, w8)
	bar := newProgressBar(int64(len(bits)), " 🔒 Encoding (dct)")
	for _, b := range bits {
		sink.writeBit(b)
		bar.Add(1)
	}
	sink.finalFlush()

	out := joinYCbCr(img.width, img.height, yPlane, cb, cr)
	log.Debug().Int("bitsWritten", len(bits)).Int("capacityBits", capBits).Msg("embedded DCT payload")
	log.Info().Str("output", outPath).Msg("saving stego image")
	return saveImage(bgrToColorImage(out), outPath)
}

func (dctCarrier) Decode(stegoPath string) (string, error) {
	const op = "dct.Decode"
	img, err := decodeBGR(stegoPath)
	if err != nil {
		return "", err
	}
	yPlane, _, _ := splitYCbCr(img)
	h8, w8 := blockExtent(img.height), blockExtent(img.width)
	if h8 < 8 || w8 < 8 {
		return "", newErr(KindImageTooSmall, op, "image smaller than one 8x8 block")
	}

	src := newDCTBitSource(yPlane, h8, w8)
	bar := newProgressBar(0, " 🔓 Decoding (dct)")
	body, err := parseFrameProgress(src, dctMagic, op, bar)
	if err != nil {
		return "", err
	}
	return decodeText(body), nil
}

func (dctCarrier) Capacity(coverPath string) (int, error) {
	img, err := decodeBGR(coverPath)
	if err != nil {
		return 0, err
	}
	h8, w8 := blockExtent(img.height), blockExtent(img.width)
	if h8 < 8 || w8 < 8 {
		return 0, nil
	}
	capBits := blockCount(h8, w8) * len(dctPositions)
	avail := capBits - frameHeaderBits
	if avail < 0 {
		return 0, nil
	}
	return avail / 8, nil
}

func blockExtent(n int) int { return (n / 8) * 8 }

func blockCount(h8, w8 int) int { return (h8 / 8) * (w8 / 8) }

// splitYCbCr converts a BGR planar buffer into a float64 luma plane plus
// byte Cb/Cr planes, all indexed [y][x].
func splitYCbCr(img *planarImage) (y [][]float64, cb, cr [][]uint8) {
	h, w := img.height, img.width
	y = make([][]float64, h)
	cb = make([][]uint8, h)
	cr = make([][]uint8, h)
	for row := 0; row < h; row++ {
		y[row] = make([]float64, w)
		cb[row] = make([]uint8, w)
		cr[row] = make([]uint8, w)
		for col := 0; col < w; col++ {
			i := (row*w + col) * 3
			b, g, r := img.pix[i], img.pix[i+1], img.pix[i+2]
			yy, ccb, ccr := color.RGBToYCbCr(r, g, b)
			y[row][col] = float64(yy)
			cb[row][col] = ccb
			cr[row][col] = ccr
		}
	}
	return y, cb, cr
}

// joinYCbCr reassembles a luma plane and chroma planes into a BGR planar
// buffer, clipping luma back into byte range.
func joinYCbCr(w, h int, y [][]float64, cb, cr [][]uint8) *planarImage {
	p := &planarImage{pix: make([]byte, w*h*3), width: w, height: h, channels: 3}
	i := 0
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			yy := uint8(clip255(y[row][col]) + 0.5)
			r, g, b := color.YCbCrToRGB(yy, cb[row][col], cr[row][col])
			p.pix[i], p.pix[i+1], p.pix[i+2] = b, g, r
			i += 3
		}
	}
	return p
}

// dctBitSink writes bits into an 8x8-block-tiled luma plane in block-row,
// block-column, then fixed-position order, lazily forward/inverse
// transforming one block at a time.
type dctBitSink struct {
	yPlane    [][]float64
	h8, w8    int
	by, bx    int
	posIdx    int
	d         *mat.Dense
	dirty     bool
	exhausted bool
}

func newDCTBitSink(yPlane [][]float64, h8, w8 int) *dctBitSink {
	s := &dctBitSink{yPlane: yPlane, h8: h8, w8: w8}
	s.loadBlock()
	return s
}

func (s *dctBitSink) loadBlock() {
	if s.by >= s.h8 {
		s.exhausted = true
		return
	}
	block := mat.NewDense(8, 8, nil)
	for i := 0; i < 8; i++ {
		for j := 0; j < 8; j++ {
			block.Set(i, j, s.yPlane[s.by+i][s.bx+j]-128)
		}
	}
	s.d = dct2d(block)
	s.dirty = false
}

func (s *dctBitSink) writeBit(bit int) bool {
	if s.exhausted {
		return false
	}
	pos := dctPositions[s.posIdx]
	cur := s.d.At(pos[0], pos[1])
	s.d.Set(pos[0], pos[1], qimEmbed(cur, bit, dctDelta))
	s.dirty = true
	s.posIdx++
	if s.posIdx == len(dctPositions) {
		s.flush()
		s.posIdx = 0
		s.advanceBlock()
	}
	return true
}

func (s *dctBitSink) advanceBlock() {
	s.bx += 8
	if s.bx >= s.w8 {
		s.bx = 0
		s.by += 8
	}
	s.loadBlock()
}

func (s *dctBitSink) flush() {
	if !s.dirty {
		return
	}
	inv := idct2d(s.d)
	for i := 0; i < 8; i++ {
		for j := 0; j < 8; j++ {
			s.yPlane[s.by+i][s.bx+j] = clip255(inv.At(i, j) + 128)
		}
	}
	s.dirty = false
}

func (s *dctBitSink) finalFlush() { s.flush() }

// dctBitSource mirrors dctBitSink for extraction: it caches the current
// block's forward DCT and reads coefficients without mutating anything.
type dctBitSource struct {
	yPlane    [][]float64
	h8, w8    int
	by, bx    int
	posIdx    int
	d         *mat.Dense
	exhausted bool
}

func newDCTBitSource(yPlane [][]float64, h8, w8 int) *dctBitSource {
	s := &dctBitSource{yPlane: yPlane, h8: h8, w8: w8}
	s.loadBlock()
	return s
}

func (s *dctBitSource) loadBlock() {
	if s.by >= s.h8 {
		s.exhausted = true
		return
	}
	block := mat.NewDense(8, 8, nil)
	for i := 0; i < 8; i++ {
		for j := 0; j < 8; j++ {
			block.Set(i, j, s.yPlane[s.by+i][s.bx+j]-128)
		}
	}
	s.d = dct2d(block)
}

func (s *dctBitSource) nextBit() (int, bool) {
	if s.exhausted {
		return 0, false
	}
	pos := dctPositions[s.posIdx]
	bit := qimExtract(s.d.At(pos[0], pos[1]), dctDelta)
	s.posIdx++
	if s.posIdx == len(dctPositions) {
		s.posIdx = 0
		s.bx += 8
		if s.bx >= s.w8 {
			s.bx = 0
			s.by += 8
		}
		s.loadBlock()
	}
	return bit, true
}
