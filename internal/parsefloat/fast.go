package parsefloat

import (
	"math"
	"math/bits"

	"github.com/db47h/radixfloat/internal/numtrait"
)

// exactPow reports whether radix**exp fits a 64-bit integer without
// overflow, returning that value. The fast paths call it on the odd part
// of the radix and then bound the result by the target mantissa width,
// which is what makes the scaling power convert to the target float
// without rounding.
func exactPow(radix uint64, exp uint32) (value uint64, ok bool) {
	value = 1
	for i := uint32(0); i < exp; i++ {
		var overflow bool
		value, overflow = numtrait.CheckedMulU64(value, radix)
		if overflow {
			return 0, false
		}
	}
	return value, true
}

// FastPath64 is the constant-time conversion for float64, applicable
// only when the significand fit a 64-bit accumulator without overflow,
// that accumulator
// fits within the 53-bit binary64 mantissa precision, and radix**|exponent|
// is exactly representable in a double (at most one multiply or divide).
func FastPath64(n Number, radix uint64) (f float64, ok bool) {
	if n.ManyDigits || n.Mantissa == 0 {
		if n.Mantissa == 0 {
			return 0, true
		}
		return 0, false
	}
	if n.Mantissa >= 1<<53 {
		return 0, false
	}
	if n.Exponent < -750 || n.Exponent > 750 {
		return 0, false
	}

	exp := n.Exponent
	neg := exp < 0
	absExp := uint64(exp)
	if neg {
		absExp = uint64(-exp)
	}
	// radix**|exp| is exact in a double when its odd part fits the 53-bit
	// mantissa; the power-of-two part only moves the exponent.
	tz := uint(bits.TrailingZeros64(radix))
	pow, ok := exactPow(radix>>tz, uint32(absExp))
	if !ok || pow >= 1<<53 {
		return 0, false
	}

	mant := float64(n.Mantissa)
	powF := math.Ldexp(float64(pow), int(tz)*int(absExp))
	if neg {
		f = mant / powF
	} else {
		f = mant * powF
	}
	if n.IsNegative {
		f = -f
	}
	return f, true
}

// FastPath32 is FastPath64 for float32, using the tighter binary32
// mantissa-precision and exactly-representable-power bounds (|exp| <= 10
// for decimal; in general the odd part of radix**|exp| must stay below
// 2**24).
func FastPath32(n Number, radix uint64) (f float32, ok bool) {
	if n.ManyDigits || n.Mantissa == 0 {
		if n.Mantissa == 0 {
			return 0, true
		}
		return 0, false
	}
	if n.Mantissa >= 1<<24 {
		return 0, false
	}
	if n.Exponent < -60 || n.Exponent > 60 {
		return 0, false
	}

	exp := n.Exponent
	neg := exp < 0
	absExp := uint64(exp)
	if neg {
		absExp = uint64(-exp)
	}
	tz := uint(bits.TrailingZeros64(radix))
	pow, ok := exactPow(radix>>tz, uint32(absExp))
	if !ok || pow >= 1<<24 {
		return 0, false
	}

	mant := float32(n.Mantissa)
	powF := float32(math.Ldexp(float64(pow), int(tz)*int(absExp)))
	if neg {
		f = mant / powF
	} else {
		f = mant * powF
	}
	if n.IsNegative {
		f = -f
	}
	return f, true
}
