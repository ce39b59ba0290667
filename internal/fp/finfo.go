// Package fp holds the per-native-type IEEE-754 layout constants and the
// bit-exact decompose/reconstruct primitives built on top of them.
package fp

import (
	"math"
	"math/bits"
)

// Info describes one native IEEE-754 binary float type's bit layout.
type Info struct {
	Bits             int    // total bit width
	MantissaSize     int    // stored mantissa bits (excludes hidden bit)
	ExponentBias     int32  // bias including mantissa size, i.e. bias for an unbiased exponent at mantissa's LSB
	DenormalExponent int32  // unbiased exponent of the smallest subnormal
	MaxExponent      int32  // unbiased exponent of the infinity encoding; finite values lie below it
	HiddenBitMask    uint64 // bit just above the stored mantissa
	MantissaMask     uint64 // mask of the stored mantissa bits
	SignMask         uint64 // sign bit mask
	CarryMask        uint64 // bit one above the hidden bit (post round-up carry detection)
}

// Binary32 describes float32.
var Binary32 = Info{
	Bits:             32,
	MantissaSize:     23,
	ExponentBias:     127 + 23,
	DenormalExponent: -(127 + 23) + 1,
	MaxExponent:      0xFF - (127 + 23),
	HiddenBitMask:    1 << 23,
	MantissaMask:     (1 << 23) - 1,
	SignMask:         1 << 31,
	CarryMask:        1 << 24,
}

// Binary64 describes float64.
var Binary64 = Info{
	Bits:             64,
	MantissaSize:     52,
	ExponentBias:     1023 + 52,
	DenormalExponent: -(1023 + 52) + 1,
	MaxExponent:      0x7FF - (1023 + 52),
	HiddenBitMask:    1 << 52,
	MantissaMask:     (1 << 52) - 1,
	SignMask:         1 << 63,
	CarryMask:        1 << 53,
}

// DefaultShift is the right shift that reduces a 64-bit left-normalised
// working mantissa to MantissaSize+1 bits (hidden bit included). The
// working word is always 64 bits regardless of the target type's own
// width — the parse pipeline's extended mantissa is a uint64 for binary32
// and binary64 alike — so this is 64 - (MantissaSize+1), not
// Bits - (MantissaSize+1).
func (fi Info) DefaultShift() int32 { return 63 - int32(fi.MantissaSize) }

// RoundNearestEven shifts mantissa right by s bits, rounding ties to
// even.
func RoundNearestEven(mantissa uint64, s uint32) uint64 {
	return RoundNearestEvenSticky(mantissa, s, false)
}

// RoundNearestEvenSticky is RoundNearestEven but additionally takes
// stickyBelow, true when the caller already knows a nonzero bit was
// discarded below mantissa before this shift even ran (e.g. the moderate
// path's 192-bit product): an otherwise-exact halfway
// truncation must then be treated as strictly above halfway rather than a
// tie, since the discarded bit means the true value was never actually
// equidistant between the two candidates.
func RoundNearestEvenSticky(mantissa uint64, s uint32, stickyBelow bool) uint64 {
	if s > 64 {
		// every bit, including the would-be halfway bit, sits below the
		// truncation point: the result is strictly below halfway.
		return 0
	}
	if s == 0 {
		return mantissa
	}
	var truncated, halfway uint64
	if s == 64 {
		truncated = mantissa
		halfway = 1 << 63
		mantissa = 0
	} else {
		halfway = uint64(1) << (s - 1)
		truncated = mantissa & (uint64(1)<<s - 1)
		mantissa >>= s
	}
	above := truncated > halfway || (truncated == halfway && stickyBelow)
	tie := truncated == halfway && !stickyBelow
	if above || (tie && mantissa&1 == 1) {
		mantissa++
	}
	return mantissa
}

// Reconstruct turns a (mantissa, exp) pair — value = mantissa * 2^exp
// with mantissa read as a 64-bit integer — into the bits of the native
// float described by fi, left-normalising first and then applying
// round-nearest-even with the denormal and overflow carve-outs.
func (fi Info) Reconstruct(mantissa uint64, exp int32, neg bool) uint64 {
	return fi.ReconstructSticky(mantissa, exp, false, neg)
}

// ReconstructSticky is Reconstruct for a candidate whose low, already-
// discarded bits (stickyBelow) are known to hold at least one set bit —
// the moderate path's Eisel-Lemire/Bellerophon candidates carry this from
// the 192-bit product's mid/lo2 words, which Reconstruct's own shift can
// never see once the caller has collapsed them into a bare 64-bit
// mantissa.
func (fi Info) ReconstructSticky(mantissa uint64, exp int32, stickyBelow, neg bool) uint64 {
	if mantissa == 0 {
		return fi.signBits(neg)
	}

	// Normalise so the MSB of the working word carries the value's most
	// significant bit; all shift amounts below are relative to that.
	if clz := bits.LeadingZeros64(mantissa); clz > 0 {
		mantissa <<= uint(clz)
		exp -= int32(clz)
	}

	if exp+fi.DefaultShift() < fi.DenormalExponent {
		diff := fi.DenormalExponent - exp
		if diff > 64 {
			return fi.signBits(neg)
		}
		mantissa = RoundNearestEvenSticky(mantissa, uint32(diff), stickyBelow)
		exp = fi.DenormalExponent
	} else {
		mantissa = RoundNearestEvenSticky(mantissa, uint32(fi.DefaultShift()), stickyBelow)
		exp += fi.DefaultShift()
	}

	// carry from rounding: mantissa now occupies MantissaSize+1 bits; if
	// the extra bit above the hidden bit is set, renormalise. The entry
	// normalisation makes exp exact before rounding, so the only way past
	// MaxExponent from here is this carry, whose mantissa is a bare
	// power of two — shifting it back down would merely undo the carry,
	// and the value truly rounds to infinity.
	if mantissa&fi.CarryMask != 0 {
		mantissa >>= 1
		exp++
	}

	if mantissa == 0 || exp < fi.DenormalExponent {
		return fi.signBits(neg)
	}
	if exp >= fi.MaxExponent {
		return fi.infBits(neg)
	}

	biased := uint64(exp) + uint64(fi.ExponentBias)
	if exp == fi.DenormalExponent && mantissa&fi.HiddenBitMask == 0 {
		biased = 0
	}
	bits := (biased << fi.MantissaSize) | (mantissa & fi.MantissaMask)
	return bits | fi.signBits(neg)
}

// Pack assembles the IEEE-754 bits of an already fully-decided
// (mantissa, exp) pair — mantissa occupying exactly MantissaSize+1 bits
// including the hidden bit, exp the true unbiased exponent such that
// value = mantissa * 2^exp — without any further rounding shift. This is
// the re-encoding tail of Reconstruct, split out for the slow path,
// which has already picked the final candidate via an integer ±1
// adjustment: re-entering Reconstruct's
// round-nearest-even-by-shift machinery (which assumes a left-normalised
// 64-bit mantissa still needing to be reduced to size) would shift real
// precision bits away instead of repacking them.
func (fi Info) Pack(mantissa uint64, exp int32, neg bool) uint64 {
	if mantissa == 0 || exp < fi.DenormalExponent {
		return fi.signBits(neg)
	}
	if exp >= fi.MaxExponent {
		return fi.infBits(neg)
	}
	biased := uint64(exp) + uint64(fi.ExponentBias)
	if exp == fi.DenormalExponent && mantissa&fi.HiddenBitMask == 0 {
		biased = 0
	}
	bits := (biased << fi.MantissaSize) | (mantissa & fi.MantissaMask)
	return bits | fi.signBits(neg)
}

func (fi Info) signBits(neg bool) uint64 {
	if neg {
		return fi.SignMask
	}
	return 0
}

func (fi Info) infBits(neg bool) uint64 {
	var allOnesExp uint64
	switch fi.Bits {
	case 32:
		allOnesExp = 0xFF
	case 64:
		allOnesExp = 0x7FF
	}
	return (allOnesExp << fi.MantissaSize) | fi.signBits(neg)
}

// Decompose32 splits the bits of a float32 into (mantissa-with-hidden-bit,
// unbiased exponent, sign), normalising subnormals so the caller always
// receives a consistently-shaped mantissa/exponent pair.
func Decompose32(f float32) (mantissa uint64, exp int32, neg bool) {
	bits := uint64(math.Float32bits(f))
	return decompose(bits, Binary32)
}

// Decompose64 is Decompose32 for float64.
func Decompose64(f float64) (mantissa uint64, exp int32, neg bool) {
	bits := math.Float64bits(f)
	return decompose(bits, Binary64)
}

func decompose(bits uint64, fi Info) (mantissa uint64, exp int32, neg bool) {
	neg = bits&fi.SignMask != 0
	biasedExp := int32((bits &^ fi.SignMask) >> fi.MantissaSize)
	mantissa = bits & fi.MantissaMask
	if biasedExp == 0 {
		// subnormal: no hidden bit, exponent is the denormal exponent
		exp = fi.DenormalExponent
	} else {
		mantissa |= fi.HiddenBitMask
		exp = biasedExp - fi.ExponentBias
	}
	return
}

// Boundaries reports the distances from a float's exact value to its
// lower and upper neighbour midpoints, in half-ULP units of (mantissa,
// exp) — quarter-ULP units when sameExp is false — so both stay integers. The slow path compares the parsed value
// against the midpoints scaled by these.
func (fi Info) Boundaries(mantissa uint64, exp int32) (loExtra, hiExtra uint64, sameExp bool) {
	// Upper boundary is always a half-ULP away. Lower boundary is a
	// half-ULP away unless mantissa is the smallest normal mantissa
	// (power-of-two boundary), in which case the lower neighbour is a
	// quarter-ULP closer because the exponent just below has half the
	// ULP size.
	if mantissa == fi.HiddenBitMask && exp > fi.DenormalExponent {
		return 1, 2, false
	}
	return 1, 1, true
}
