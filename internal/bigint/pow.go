package bigint

import (
	"math/bits"

	"github.com/db47h/radixfloat/internal/expmath"
)

// Pow computes base**exp as a Uint via binary exponentiation, after
// factoring out the power-of-two part of base so the multiply-heavy work
// happens on the odd residue and the power-of-two part becomes a single
// final shift.
func Pow(base uint64, exp uint32) (z Uint, ok bool) {
	z = FromUint64(1)
	if exp == 0 || base == 0 {
		if base == 0 && exp > 0 {
			return Uint{}, true
		}
		return z, true
	}

	shift := uint(bits.TrailingZeros64(base))
	odd := base >> shift

	if odd > 1 {
		b := FromUint64(odd)
		e := exp
		for e > 0 {
			if e&1 == 1 {
				if z, ok = z.Mul(&b); !ok {
					return Uint{}, false
				}
			}
			e >>= 1
			if e > 0 {
				if b, ok = b.Mul(&b); !ok {
					return Uint{}, false
				}
			}
		}
	}

	if shift > 0 {
		if ok = z.Shl(shift * uint(exp)); !ok {
			return Uint{}, false
		}
	}
	return z, true
}

// QuoRemSmall divides b by the single word y, returning the quotient (a
// new Uint) and remainder. Multi-limb-divisor long division is
// intentionally absent: the slow path only ever scales by radix powers
// via MulSmall/Pow and compares magnitudes via Cmp, so nothing needs
// quotient digits from a large divisor.
func (b *Uint) QuoRemSmall(y uint64) (q Uint, r uint64) {
	if b.n == 0 {
		return Uint{}, 0
	}
	for i := b.n - 1; i >= 0; i-- {
		hi, lo := r, b.limbs[i]
		qq, rr := bits.Div64(hi, lo, y)
		q.limbs[i] = qq
		r = rr
	}
	q.n = b.n
	q.norm()
	return q, r
}

// FromBytes loads a Uint from a run of ASCII digit bytes (0-9, then
// A-Z/a-z for radices past ten), one MulSmall/AddSmall pass per chunk of
// digits that fits a 64-bit word. The bytes must already be validated
// against radix by the caller's scanner.
func FromBytes(radix uint64, digits []byte) (z Uint, ok bool) {
	step := expmath.U64Step(radix)
	i := 0
	for i < len(digits) {
		end := i + step
		if end > len(digits) {
			end = len(digits)
		}
		var acc uint64
		for _, d := range digits[i:end] {
			acc = acc*radix + asciiDigit(d)
		}
		mul := uint64(1)
		for j := 0; j < end-i; j++ {
			mul *= radix
		}
		if ok = z.MulSmall(mul); !ok {
			return Uint{}, false
		}
		if ok = z.AddSmall(acc); !ok {
			return Uint{}, false
		}
		i = end
	}
	return z, true
}

func asciiDigit(d byte) uint64 {
	switch {
	case d >= 'a':
		return uint64(d-'a') + 10
	case d >= 'A':
		return uint64(d-'A') + 10
	default:
		return uint64(d - '0')
	}
}
