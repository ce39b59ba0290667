package writefloat

import (
	"github.com/db47h/radixfloat/internal/digit"
	"github.com/db47h/radixfloat/internal/expmath"
	"github.com/db47h/radixfloat/internal/numtrait"
)

// emitBinaryDigits renders mantissa<<shl as a base-2**bitsPerDigit digit
// run, MSB first, trailing zero digits trimmed. This is exact: the radix
// is a power of two, so the shift aligns the bit stream to digit
// boundaries and the emission performs no rounding at all — the emitted
// string always reads back to the same bits.
func emitBinaryDigits(mantissa uint64, shl, bitsPerDigit uint) []byte {
	shifted := mantissa << shl
	totalBits := numtrait.BitLen64(shifted)
	nDigits := (totalBits + int(bitsPerDigit) - 1) / int(bitsPerDigit)

	mask := uint64(1)<<bitsPerDigit - 1
	digits := make([]byte, nDigits)
	v := shifted
	for i := nDigits - 1; i >= 0; i-- {
		digits[i] = digit.Char(v & mask)
		v >>= bitsPerDigit
	}
	return trimTrailingZeroDigits(digits)
}

// WriteBinary assembles the complete textual form — sign, layout,
// padding, trimming, exponent — for a power-of-two mantissa radix.
// mantissa/exp/neg come straight from fp.Decompose{32,64}; callers
// handle NaN and Infinity themselves, so only finite values reach
// here.
//
// The two layouts align the digit grid differently. Positional anchors
// digits to the radix point (calculate_shl on the binary exponent), so
// the emitted digits read back at face value. Scientific floors the
// displayed exponent to the exponent base's bit grid and lets the
// leading digit absorb the remainder bits; for exponentBase == radix the
// two alignments coincide, and for a smaller power-of-two exponent base
// (the hex-float family) this keeps d.ddd^e reading back exactly, which
// anchoring to the mantissa-radix grid alone would not.
func WriteBinary(dst []byte, mantissa uint64, exp int32, neg bool, radix uint64, cfg Config) []byte {
	if neg {
		dst = append(dst, '-')
	}
	if mantissa == 0 {
		return appendZero(dst, cfg)
	}
	exponentBase := cfg.ExponentBase
	if exponentBase == 0 {
		exponentBase = radix
	}

	bitsPerDigit := expmath.Log2(radix)
	mantissaBits := numtrait.BitLen64(mantissa)
	sciExpBits := exp + int32(mantissaBits) - 1
	sciExp := expmath.ScaleSciExp(sciExpBits, uint(radix))

	if cfg.UseScientific(sciExp) {
		lgB := expmath.Log2(exponentBase)
		displayExp := expmath.ScaleSciExp(sciExpBits, uint(exponentBase))
		rem := int(sciExpBits - displayExp*int32(lgB))
		shl := uint(((rem+1-mantissaBits)%int(bitsPerDigit) + int(bitsPerDigit)) % int(bitsPerDigit))
		digits := emitBinaryDigits(mantissa, shl, bitsPerDigit)
		return appendScientific(dst, digits, displayExp, cfg)
	}

	shl := expmath.CalculateShl(exp, bitsPerDigit)
	digits := emitBinaryDigits(mantissa, shl, bitsPerDigit)
	return appendPositional(dst, digits, sciExp, cfg)
}
