package stego

import (
	"github.com/rs/zerolog/log"
)

const lsbMagic = "LSB1"

// rasterCursor walks a planarImage's byte buffer in C-contiguous raster
// order (row, column, channel), one byte per step. It is the LSB codec's
// generalization of the reference tool's ImageStepper, simplified because
// LSB here always uses exactly one bit per byte and every channel.
type rasterCursor struct {
	buf *planarImage
	pos int
}

func (c *rasterCursor) nextBit() (int, bool) {
	if c.pos >= len(c.buf.pix) {
		return 0, false
	}
	bit := int(c.buf.pix[c.pos] & 1)
	c.pos++
	return bit, true
}

// lsbCarrier implements Carrier for least-significant-bit substitution.
type lsbCarrier struct{}

func (lsbCarrier) Name() string  { return "lsb" }
func (lsbCarrier) Magic() string { return lsbMagic }

func (lsbCarrier) Encode(coverPath string, message []byte, outPath string) error {
	const op = "lsb.Encode"
	log.Info().Str("cover", coverPath).Msg("loading cover image")

	img, err := decodeBGR(coverPath)
	if err != nil {
		return err
	}

	frame := buildFrame(lsbMagic, message)
	bits := bytesToBits(frame)

	if len(bits) > img.size() {
		return newErr(KindCapacityExceeded, op, "message exceeds LSB capacity of cover image")
	}

	// Only the prefix bytes needed for header+payload are touched; the
	// remainder of the raster buffer is left byte-for-byte identical to the
	// cover (the clean variant chosen in place of the reference tool's
	// over-write-everything behavior).
	out := make([]byte, len(img.pix))
	copy(out, img.pix)
	bar := newProgressBar(int64(len(bits)), " 🔒 Encoding (lsb)")
	for i, bit := range bits {
		out[i] = (out[i] &^ 1) | byte(bit)
		bar.Add(1)
	}
	img.pix = out

	log.Debug().Int("bitsWritten", len(bits)).Int("capacityBits", img.size()).Msg("embedded LSB payload")
	log.Info().Str("output", outPath).Msg("saving stego image")
	return saveImage(bgrToColorImage(img), outPath)
}

func (lsbCarrier) Decode(stegoPath string) (string, error) {
	const op = "lsb.Decode"
	img, err := decodeBGR(stegoPath)
	if err != nil {
		return "", err
	}
	cur := &rasterCursor{buf: img}
	bar := newProgressBar(0, " 🔓 Decoding (lsb)")
	body, err := parseFrameProgress(cur, lsbMagic, op, bar)
	if err != nil {
		return "", err
	}
	return decodeText(body), nil
}

func (lsbCarrier) Capacity(coverPath string) (int, error) {
	img, err := decodeBGR(coverPath)
	if err != nil {
		return 0, err
	}
	return lsbCapacityBits(img.size()), nil
}

// lsbCapacityBits converts a total-bits-available count into a payload byte
// capacity, saturating at 0 when the image cannot even hold the header.
func lsbCapacityBits(totalBits int) int {
	avail := totalBits - frameHeaderBits
	if avail < 0 {
		return 0
	}
	return avail / 8
}
