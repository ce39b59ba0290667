package parsefloat

import "math/bits"

// BinaryModerate converts for a power-of-two mantissa radix:
// value = mantissa * 2**binExp exactly (the caller has already
// folded the digit-position and exponent-field contributions, each
// scaled by its own bits-per-digit, into one binary exponent), so the
// candidate (normalised mantissa, binary exponent) pair is obtained by a
// single left-normalising shift with no rounding and no possibility of
// ambiguity — the slow path is never reached for these radices.
func BinaryModerate(mantissa uint64, binExp int64) (normMantissa uint64, trueExp int32) {
	if mantissa == 0 {
		return 0, 0
	}
	clz := bits.LeadingZeros64(mantissa)
	normMantissa = mantissa << uint(clz)
	trueExp = int32(binExp) - int32(clz)
	return normMantissa, trueExp
}
