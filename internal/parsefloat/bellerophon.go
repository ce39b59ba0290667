package parsefloat

import (
	"math/big"
	"math/bits"
)

// bellerophon is the moderate path's fallback for mantissa radices with
// no precomputed power table (3, 5, 6, 7, 9, 11, ..., and decimal
// exponents outside the table range): it computes the needed 128-bit
// approximation of radix**exp on demand via math/big — the same
// technique power10.go uses to bootstrap the decimal table, just without
// caching, these radices being rare enough that per-call cost is
// acceptable — then runs the same multiply-and-check-ambiguity procedure
// as eiselLemire. Classic Bellerophon instead multiplies by a coarse
// table power and a small residual power while tracking accumulated
// error across the two steps; the single exact 128-bit approximation
// sidesteps needing a second error term, at the cost of a per-call
// big.Float computation.
func bellerophon(mantissa uint64, exp int32, radix uint64) extFloat {
	if mantissa == 0 {
		return extFloat{mantissa: 0, exp: 0}
	}

	bf := new(big.Float).SetPrec(200)
	if exp >= 0 {
		bf.SetInt(new(big.Int).Exp(big.NewInt(int64(radix)), big.NewInt(int64(exp)), nil))
	} else {
		denom := new(big.Float).SetPrec(200).SetInt(new(big.Int).Exp(big.NewInt(int64(radix)), big.NewInt(int64(-exp)), nil))
		bf.Quo(big.NewFloat(1).SetPrec(200), denom)
	}

	mant := new(big.Float).SetPrec(200)
	exp2 := bf.MantExp(mant)
	shifted := new(big.Float).SetPrec(200).SetMantExp(mant, 128)
	mantInt, _ := shifted.Int(nil)

	var hi, lo uint64
	bytes := mantInt.Bytes()
	var buf [16]byte
	copy(buf[16-len(bytes):], bytes)
	for i := 0; i < 8; i++ {
		hi = hi<<8 | uint64(buf[i])
	}
	for i := 8; i < 16; i++ {
		lo = lo<<8 | uint64(buf[i])
	}

	clz := bits.LeadingZeros64(mantissa)
	manNorm := mantissa << uint(clz)

	hi1, lo1 := bits.Mul64(manNorm, hi)
	hi2, lo2 := bits.Mul64(manNorm, lo)
	mid, carry := bits.Add64(lo1, hi2, 0)
	hi1 += carry
	shift := uint(0)
	if hi1>>63 == 0 {
		hi1 = hi1<<1 | mid>>63
		mid = mid<<1 | lo2>>63
		lo2 <<= 1
		shift = 1
	}

	sticky := mid != 0 || lo2 != 0
	trueExp := int32(exp2) - int32(clz) - int32(shift)

	// As in eiselLemire, mid (not lo2) is the word adjacent to hi1 and
	// therefore the one that decides ambiguity; the candidate and sticky
	// flag are always returned so an ambiguous result still seeds the slow
	// path with something real instead of a zero.
	if mid <= 2 || mid >= ^uint64(0)-2 {
		return extFloat{mantissa: hi1, exp: trueExp, ambig: true, sticky: sticky}
	}
	return extFloat{mantissa: hi1, exp: trueExp, sticky: sticky}
}
