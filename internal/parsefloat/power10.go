package parsefloat

import (
	"math/big"
	"sync"
)

// pow10 is one entry of the moderate-path decimal power table: a 128-bit
// normalised approximation of 10^exp10 (hi holds the top 64
// bits, lo the next 64; bit 63 of hi is always 1) together with binExp,
// the true base-2 exponent such that 10^exp10 ≈ (hi:lo, read as a 128-bit
// integer) * 2^(binExp-128).
type pow10 struct {
	hi, lo uint64
	binExp int32
}

// Decimal exponents this table covers; outside this range Moderate hands
// decimal inputs to bellerophon, which computes its power on demand.
const (
	pow10MinExp = -342
	pow10MaxExp = 308
)

var (
	pow10TableOnce sync.Once
	pow10Table     [pow10MaxExp - pow10MinExp + 1]pow10
)

// buildPow10Table computes the 128-bit approximation table once, lazily,
// using math/big at a comfortably wide precision. Generating the ~650
// entries at runtime from an arbitrary-precision float avoids
// transcribing a large, error-prone literal table, at the one-time cost
// of a few hundred high-precision divisions during the first
// moderate-path decimal parse.
func buildPow10Table() {
	for exp10 := pow10MinExp; exp10 <= pow10MaxExp; exp10++ {
		bf := new(big.Float).SetPrec(200)
		if exp10 >= 0 {
			bf.SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(exp10)), nil))
		} else {
			denom := new(big.Float).SetPrec(200).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(-exp10)), nil))
			bf.Quo(big.NewFloat(1).SetPrec(200), denom)
		}

		mant := new(big.Float).SetPrec(200)
		exp2 := bf.MantExp(mant) // bf == mant * 2**exp2, mant in [0.5, 1)

		shifted := new(big.Float).SetPrec(200).SetMantExp(mant, 128) // in [2**127, 2**128)
		mantInt, _ := shifted.Int(nil)

		var hi, lo uint64
		// Read the 128-bit integer through a fixed-size big-endian byte
		// buffer rather than big.Int.Bits(), whose big.Word width is
		// platform-dependent.
		bytes := mantInt.Bytes() // big-endian, len <= 16 for a 128-bit value
		var buf [16]byte
		copy(buf[16-len(bytes):], bytes)
		for i := 0; i < 8; i++ {
			hi = hi<<8 | uint64(buf[i])
		}
		for i := 8; i < 16; i++ {
			lo = lo<<8 | uint64(buf[i])
		}

		pow10Table[exp10-pow10MinExp] = pow10{hi: hi, lo: lo, binExp: int32(exp2)}
	}
}

// lookupPow10 returns the table entry for 10**exp10, if in range.
func lookupPow10(exp10 int32) (pow10, bool) {
	if exp10 < pow10MinExp || exp10 > pow10MaxExp {
		return pow10{}, false
	}
	pow10TableOnce.Do(buildPow10Table)
	return pow10Table[exp10-pow10MinExp], true
}
