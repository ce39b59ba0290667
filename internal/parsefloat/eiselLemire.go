package parsefloat

import "math/bits"

// eiselLemire is the moderate path's primary algorithm: multiply the
// left-normalised significand by a precomputed 128-bit approximation of
// 10**exp10, derive a candidate (mantissa, exp) from the high bits of the
// 192-bit product, and signal ambiguity when the discarded low bits are
// too close to a rounding boundary for the table's approximation error to
// guarantee the correct answer.
//
// The literal algorithm checks, bit-for-bit, whether the specific rounding
// bit of the eventual 53/24-bit mantissa sits inside the table's ±1-ULP
// error band; this implementation uses the coarser, still-conservative
// test of treating mid — the 64-bit word of the 192-bit product
// immediately below hi1, i.e. the bits Reconstruct would otherwise round
// away blind — as the error band (ambiguous whenever it is within 2 of
// either 0 or 2**64-1). That trades a small amount of moderate-path hit
// rate for a much simpler implementation. The candidate (mantissa, exp) is
// always returned, ambiguous or not, along with a sticky flag reporting
// whether mid or lo2 held a nonzero bit Reconstruct must not silently
// treat as a tie: escalation, when it happens, hands the slow path this
// same candidate rather than a synthesized zero.
func eiselLemire(mantissa uint64, exp10 int32) extFloat {
	if mantissa == 0 {
		return extFloat{mantissa: 0, exp: 0}
	}
	p, ok := lookupPow10(exp10)
	if !ok {
		return extFloat{ambig: true}
	}

	clz := bits.LeadingZeros64(mantissa)
	manNorm := mantissa << uint(clz)

	hi1, lo1 := bits.Mul64(manNorm, p.hi)
	hi2, lo2 := bits.Mul64(manNorm, p.lo)
	mid, carry := bits.Add64(lo1, hi2, 0)
	hi1 += carry
	// 192-bit product is (hi1:mid):lo2. hi1 may or may not have its top
	// bit set since both operands were individually normalised to 63/127
	// significant bits (0-indexed top bit).
	shift := uint(0)
	if hi1>>63 == 0 {
		hi1 = hi1<<1 | mid>>63
		mid = mid<<1 | lo2>>63
		lo2 <<= 1
		shift = 1
	}

	sticky := mid != 0 || lo2 != 0

	// mantissa * 10**exp10 = (hi1:mid:lo2) * 2**(binExp - 128 - clz -
	// shift); collapsing the product to its top 64 bits leaves
	// value ≈ hi1 * 2**trueExp with hi1 read as an integer.
	trueExp := p.binExp - int32(clz) - int32(shift)

	// The table entry is truncated to 128 bits, so the product
	// underestimates by strictly less than one unit of mid after the
	// normalisation shift doubled it; a mid within two units of either
	// wraparound boundary can therefore not prove which side of a
	// rounding halfway point the true value sits on.
	if mid <= 2 || mid >= ^uint64(0)-2 {
		return extFloat{mantissa: hi1, exp: trueExp, ambig: true, sticky: sticky}
	}

	return extFloat{mantissa: hi1, exp: trueExp, sticky: sticky}
}
