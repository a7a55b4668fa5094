package stego

import "testing"

func TestBuildParseFrameRoundTrip(t *testing.T) {
	msg := []byte("round trip me")
	frame := buildFrame("LSB1", msg)

	src := &sliceBitSource{bits: bytesToBits(frame)}
	body, err := parseFrame(src, "LSB1", "test")
	if err != nil {
		t.Fatalf("parseFrame failed: %v", err)
	}
	if string(body) != string(msg) {
		t.Errorf("body mismatch: got %q want %q", body, msg)
	}
}

func TestParseFrameBadMagic(t *testing.T) {
	frame := buildFrame("DCT1", []byte("x"))
	src := &sliceBitSource{bits: bytesToBits(frame)}
	if _, err := parseFrame(src, "LSB1", "test"); err == nil {
		t.Fatal("expected a magic mismatch error")
	}
}

func TestParseFrameTruncated(t *testing.T) {
	frame := buildFrame("LSB1", []byte("longer message than survives truncation"))
	truncated := frame[:frameHeaderBytes+2]
	src := &sliceBitSource{bits: bytesToBits(truncated)}
	if _, err := parseFrame(src, "LSB1", "test"); err == nil {
		t.Fatal("expected a truncated payload error")
	}
}

func TestDecodeTextInvalidUTF8(t *testing.T) {
	invalid := []byte{0xff, 0xfe, 'h', 'i'}
	out := decodeText(invalid)
	if len(out) == 0 {
		t.Fatal("expected a non-empty lossy decode")
	}
}
