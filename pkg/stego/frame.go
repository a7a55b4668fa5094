package stego

import (
	"encoding/binary"
	"strings"
	"unicode/utf8"

	"github.com/schollz/progressbar/v3"
)

const frameHeaderBytes = 8 // 4-byte magic + 4-byte big-endian length
const frameHeaderBits = frameHeaderBytes * 8

// buildFrame prepends the magic and a big-endian u32 length to msg, producing
// the wire-exact framed payload described in the spec's framed payload wire
// format: magic(4) || length_be32(4) || bytes(length).
func buildFrame(magic string, msg []byte) []byte {
	out := make([]byte, frameHeaderBytes+len(msg))
	copy(out[0:4], magic)
	binary.BigEndian.PutUint32(out[4:8], uint32(len(msg)))
	copy(out[8:], msg)
	return out
}

// parseFrame reads a framed payload off src: 64 header bits, magic check,
// then length*8 more bits for the body. op is used to label any error.
func parseFrame(src bitSource, magic string, op string) ([]byte, error) {
	return parseFrameProgress(src, magic, op, nil)
}

// parseFrameProgress is parseFrame with an optional progress bar. The header
// is read unbarred (its length is fixed and negligible); once the declared
// body length is known the bar's max is updated and the body read advances
// it one bit at a time, mirroring the reference tool's pattern of sizing its
// decode bar from the just-decoded message length.
func parseFrameProgress(src bitSource, magic string, op string, bar *progressbar.ProgressBar) ([]byte, error) {
	headerBits, ok := readBits(src, frameHeaderBits)
	if !ok {
		return nil, newErr(KindImageTooSmall, op, "image too small for header")
	}
	header := bitsToBytes(headerBits)

	if string(header[0:4]) != magic {
		return nil, newErr(KindBadHeader, op, "magic mismatch")
	}
	length := binary.BigEndian.Uint32(header[4:8])

	bodySrc := src
	if bar != nil {
		bar.ChangeMax64(int64(length) * 8)
		bar.RenderBlank()
		bodySrc = &progressBitSource{src: src, bar: bar}
	}

	bodyBits, ok := readBits(bodySrc, int(length)*8)
	if !ok {
		return nil, newErr(KindTruncatedPayload, op, "payload exhausted before declared length")
	}
	return bitsToBytes(bodyBits), nil
}

// decodeText converts extracted payload bytes to a string, substituting the
// Unicode replacement character for any invalid UTF-8 sequence rather than
// failing the whole decode.
func decodeText(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	return strings.ToValidUTF8(string(b), string(utf8.RuneError))
}
