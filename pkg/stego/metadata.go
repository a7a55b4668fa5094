package stego

import (
	"encoding/binary"
	"image"
	"os"
)

// ImageInfo is the metadata report produced by Info: dimensions, detected
// file format, and (best-effort) the carrier whose header matched.
type ImageInfo struct {
	Width, Height        int
	Format               string
	DetectedCarrier      string
	DeclaredPayloadBytes int
}

// Info opens path, records its dimensions and file format, then probes each
// registered carrier's 8-byte header in the fixed LSB->DCT->DWT order
// without reading the payload body. The first carrier whose magic validates
// populates DetectedCarrier and DeclaredPayloadBytes; if none validate, the
// report still carries width/height/format with an empty DetectedCarrier.
func Info(path string) (*ImageInfo, error) {
	const op = "Info"
	f, err := os.Open(path)
	if err != nil {
		return nil, wrapErr(KindIORead, op, path, err)
	}
	cfg, format, err := image.DecodeConfig(f)
	f.Close()
	if err != nil {
		return nil, wrapErr(KindIORead, op, path, err)
	}

	info := &ImageInfo{Width: cfg.Width, Height: cfg.Height, Format: format}

	img, err := decodeBGR(path)
	if err != nil {
		return info, nil
	}

	for _, name := range carrierOrder {
		c, lookupErr := Lookup(name)
		if lookupErr != nil {
			continue
		}
		var (
			declared int
			detected bool
		)
		switch name {
		case "lsb":
			declared, detected = probeRasterHeader(c, img)
		case "dwt":
			// DWT decodes its own single-channel grayscale plane rather than
			// reusing the BGR decode the other carriers share.
			grayImg, grayErr := decodeGray(path)
			if grayErr != nil {
				continue
			}
			declared, detected = probeTransformHeader(c, grayImg)
		default:
			declared, detected = probeTransformHeader(c, img)
		}
		if detected {
			info.DetectedCarrier = name
			info.DeclaredPayloadBytes = declared
			return info, nil
		}
	}
	return info, nil
}

// probeRasterHeader reads only the 64-bit header for the LSB carrier via a
// fresh rasterCursor.
func probeRasterHeader(c Carrier, img *planarImage) (declaredBytes int, ok bool) {
	cur := &rasterCursor{buf: img}
	return readHeaderFrom(cur, c.Magic())
}

// probeTransformHeader reads only the 64-bit header for transform-domain
// carriers (DCT, DWT), which need a forward transform of at least the first
// block/sub-band before any bit is readable, so they cannot share
// rasterCursor with LSB. For dwtCarrier, img must already be a single-channel
// grayscale decode (see the "dwt" case in Info); for dctCarrier it is the
// shared BGR decode.
func probeTransformHeader(c Carrier, img *planarImage) (declaredBytes int, ok bool) {
	var src bitSource
	switch c.(type) {
	case dctCarrier:
		h8, w8 := blockExtent(img.height), blockExtent(img.width)
		if h8 < 8 || w8 < 8 {
			return 0, false
		}
		yPlane, _, _ := splitYCbCr(img)
		src = newDCTBitSource(yPlane, h8, w8)
	case dwtCarrier:
		if img.height < 2 || img.width < 2 || waveletBackendInUse == nil {
			return 0, false
		}
		plane := grayPlane(img)
		_, cH, cV, _, h1, w1 := waveletBackendInUse.forward(plane, img.height, img.width)
		src = newDWTBitSource(cH, cV, h1, w1)
	default:
		return 0, false
	}
	return readHeaderFrom(src, c.Magic())
}

func readHeaderFrom(src bitSource, magic string) (declaredBytes int, ok bool) {
	header, ok := readBits(src, frameHeaderBits)
	if !ok {
		return 0, false
	}
	b := bitsToBytes(header)
	if string(b[0:4]) != magic {
		return 0, false
	}
	return int(binary.BigEndian.Uint32(b[4:8])), true
}
