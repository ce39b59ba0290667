package parsefloat

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"testing"

	"github.com/db47h/radixfloat/internal/fp"
)

func TestEiselLemireExactPower(t *testing.T) {
	r := eiselLemire(1, 0)
	if r.mantissa != 1<<63 || r.exp != -63 {
		t.Fatalf("eiselLemire(1,0) candidate = (%#x,%d), want (%#x,-63)", r.mantissa, r.exp, uint64(1)<<63)
	}
}

func TestModerateDecimalAgainstStrconv(t *testing.T) {
	cases := []struct {
		mant uint64
		exp  int32
	}{
		{123456789012345678, -10},
		{999999999999999999, 300},
		{1, -300},
		{17976931348623157, 292},
		{22250738585072014, -324},
		{123456789, 30},
		{987654321987654321, -250},
		{31415926535897932, -16},
		{27182818284590452, -16},
		{662607015, -42},
	}
	hits := 0
	for _, c := range cases {
		norm, trueExp, sticky, ok := Moderate(c.mant, c.exp, 10)
		if !ok {
			continue
		}
		hits++
		bits := fp.Binary64.ReconstructSticky(norm, trueExp, sticky, false)
		// strconv reports overflow as a range error alongside the correctly
		// rounded ±Inf, which is still the value to compare against.
		want, err := strconv.ParseFloat(fmt.Sprintf("%de%d", c.mant, c.exp), 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			t.Fatal(err)
		}
		if bits != math.Float64bits(want) {
			t.Errorf("Moderate(%d,%d) reconstructs to %#x (%v), want %#x (%v)",
				c.mant, c.exp, bits, math.Float64frombits(bits), math.Float64bits(want), want)
		}
	}
	if hits == 0 {
		t.Fatal("every moderate-path case came back ambiguous; the path is never exercised")
	}
}

// ratFloat64 builds the correctly rounded float64 of mant * radix**exp
// via math/big's rational arithmetic, the module's standing oracle.
func ratFloat64(mant uint64, exp int32, radix int64) float64 {
	r := new(big.Rat).SetInt(new(big.Int).SetUint64(mant))
	pow := new(big.Int).Exp(big.NewInt(radix), big.NewInt(int64(abs32(exp))), nil)
	if exp >= 0 {
		r.Mul(r, new(big.Rat).SetInt(pow))
	} else {
		r.Quo(r, new(big.Rat).SetInt(pow))
	}
	f, _ := r.Float64()
	return f
}

func abs32(x int32) int32 {
	if x < 0 {
		return -x
	}
	return x
}

func TestBellerophonOddRadixAgainstBigRat(t *testing.T) {
	for _, radix := range []uint64{3, 7, 11, 19, 23, 36} {
		for _, c := range []struct {
			mant uint64
			exp  int32
		}{
			{1, 10}, {12345678901, -7}, {987654321, 40}, {31337, -60}, {2, 100},
		} {
			norm, trueExp, sticky, ok := Moderate(c.mant, c.exp, radix)
			if !ok {
				continue
			}
			bits := fp.Binary64.ReconstructSticky(norm, trueExp, sticky, false)
			want := ratFloat64(c.mant, c.exp, int64(radix))
			if bits != math.Float64bits(want) {
				t.Errorf("Moderate(%d,%d, radix %d) reconstructs to %v, want %v",
					c.mant, c.exp, radix, math.Float64frombits(bits), want)
			}
		}
	}
}
