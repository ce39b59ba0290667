package parsefloat

import (
	"github.com/db47h/radixfloat/internal/bigint"
	"github.com/db47h/radixfloat/internal/fp"
)

// SlowPath is the definitive tiebreak, invoked when the moderate path
// signals ambiguity or the accumulator truncated digits. digits is the
// concatenation of the significant integer and fraction digit bytes
// (ASCII, leading zeros allowed), and exponent is the power of radix
// already applied to that digit run read as an integer: the parsed
// value is digits * radix**exponent.
// candidateMantissa and candidateExp are the native-precision (mantissa
// including hidden bit, true binary exponent) rounding of the moderate
// path's best guess, used only to pick the three candidates b-, b, b+ to
// disambiguate between — always sufficient because the moderate path's
// error bound guarantees the true answer is one of those three.
func SlowPath(fi fp.Info, digits []byte, radix uint64, exponent int64, candidateMantissa uint64, candidateExp int32) (mantissa uint64, exp int32) {
	num, ok := bigint.FromBytes(radix, digits)
	if !ok {
		// capacity is sized so this cannot happen for native-float-bounded
		// inputs; fall back to the candidate rather than panicking.
		return candidateMantissa, candidateExp
	}

	if exponent > 0 {
		p, ok := bigint.Pow(radix, uint32(exponent))
		if !ok {
			return candidateMantissa, candidateExp
		}
		if num, ok = num.Mul(&p); !ok {
			return candidateMantissa, candidateExp
		}
	}

	denPow := bigint.FromUint64(1)
	if exponent < 0 {
		p, ok := bigint.Pow(radix, uint32(-exponent))
		if !ok {
			return candidateMantissa, candidateExp
		}
		denPow = p
	}

	// loExtra/hiExtra/sameExp give the b-/b+ midpoints' true half-ULP
	// distances, accounting for the asymmetric
	// power-of-two-boundary case where the lower neighbour sits only a
	// quarter-ULP away: !sameExp means the common scale needs one more bit
	// of precision (mantissaScale 4 instead of 2) so both midpoints stay
	// integers at that finer scale.
	loExtra, hiExtra, sameExp := fi.Boundaries(candidateMantissa, candidateExp)
	k := int32(1)
	mantissaScale := uint64(2)
	if !sameExp {
		k = 2
		mantissaScale = 4
	}

	shift := k - candidateExp
	lhs := num
	rhsShift := uint(0)
	if shift >= 0 {
		if !lhs.Shl(uint(shift)) {
			return candidateMantissa, candidateExp
		}
	} else {
		rhsShift = uint(-shift)
	}

	mkRHS := func(units uint64) (bigint.Uint, bool) {
		r := bigint.FromUint64(units)
		r, ok := r.Mul(&denPow)
		if !ok {
			return bigint.Uint{}, false
		}
		if rhsShift > 0 {
			if !r.Shl(rhsShift) {
				return bigint.Uint{}, false
			}
		}
		return r, true
	}

	// A zero candidate has no lower neighbour: its low midpoint collapses
	// to zero itself, and the high midpoint is half the smallest
	// subnormal.
	loUnits := uint64(0)
	if candidateMantissa > 0 {
		loUnits = mantissaScale*candidateMantissa - loExtra
	}
	rhsLow, ok := mkRHS(loUnits)
	if !ok {
		return candidateMantissa, candidateExp
	}
	rhsHigh, ok := mkRHS(mantissaScale*candidateMantissa + hiExtra)
	if !ok {
		return candidateMantissa, candidateExp
	}

	cmpLow := lhs.Cmp(&rhsLow)
	cmpHigh := lhs.Cmp(&rhsHigh)

	var delta int64
	switch {
	case cmpLow < 0:
		delta = -1
	case cmpLow == 0:
		if candidateMantissa&1 == 0 {
			delta = 0
		} else {
			delta = -1
		}
	case cmpHigh > 0:
		delta = 1
	case cmpHigh == 0:
		if candidateMantissa&1 == 0 {
			delta = 0
		} else {
			delta = 1
		}
	default:
		delta = 0
	}

	return adjustMantissa(fi, candidateMantissa, candidateExp, delta)
}

// adjustMantissa applies delta (-1, 0, or +1) to a native-precision
// mantissa (hidden bit included) and renormalises across the
// power-of-two boundaries where the hidden bit's weight changes: an
// increment that carries out of MantissaSize+1 bits halves back with
// exp+1, and a decrement off the smallest normal mantissa widens to the
// all-ones mantissa at exp-1.
func adjustMantissa(fi fp.Info, mantissa uint64, exp int32, delta int64) (uint64, int32) {
	switch {
	case delta > 0:
		mantissa++
		if mantissa&fi.CarryMask != 0 {
			mantissa >>= 1
			exp++
		}
	case delta < 0:
		if mantissa == fi.HiddenBitMask && exp > fi.DenormalExponent {
			mantissa = mantissa<<1 - 1
			exp--
		} else if mantissa > 0 {
			mantissa--
		}
	}
	return mantissa, exp
}
