package stego

import "math"

// qimEmbed embeds bit b into coefficient c at quantization step, returning
// the new coefficient value. Ties round half-to-even (math.RoundToEven);
// the zero-coefficient guard avoids the ambiguity where extraction treats
// q==0 as bit 0 regardless of which side of zero the original coefficient
// sat on.
func qimEmbed(c float64, b int, step float64) float64 {
	q := int64(math.RoundToEven(c / step))
	if mod2(q) != b {
		q += sign(c)
	}
	if q == 0 && b == 1 {
		q = sign(c)
	}
	return float64(q) * step
}

// qimExtract reads the bit embedded at coefficient c for quantization step.
func qimExtract(c float64, step float64) int {
	q := int64(math.RoundToEven(c / step))
	if q == 0 {
		return 0
	}
	return mod2(q)
}

func mod2(q int64) int {
	return int(((q % 2) + 2) % 2)
}

// sign returns -1 for negative v, +1 otherwise (sign(0) is treated as +1).
func sign(v float64) int64 {
	if v < 0 {
		return -1
	}
	return 1
}

// clip255 clamps v to [0,255] and returns it as a float64 still, so callers
// can keep working in floating point until the final byte write.
func clip255(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
