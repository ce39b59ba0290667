package radixfloat

import (
	"math"
	"math/big"
	"math/rand"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFloat64WorkedExamples(t *testing.T) {
	cases := []struct {
		name string
		v    float64
		f    Format
		want string
	}{
		{"binary two", 2.0, Binary, "10.0"},
		{"binary half", 0.5, Binary, "0.1"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := WriteFloat64(nil, c.v, c.f, DefaultOptions)
			require.NoError(t, err)
			assert.Equal(t, c.want, string(got))
		})
	}
}

func TestWriteFloat64Radix32(t *testing.T) {
	f := NewFormatBuilder().MantissaRadix(32).MustBuild()
	got, err := WriteFloat64(nil, 1024.0, f, DefaultOptions)
	require.NoError(t, err)
	assert.Equal(t, "100.0", string(got))
}

func TestWriteFloat32BinaryPositional(t *testing.T) {
	got, err := WriteFloat32(nil, 1.2345678901234567890, Binary, DefaultOptions)
	require.NoError(t, err)
	assert.Equal(t, "1.0011110000001100101001", string(got))
}

func TestWriteFloat32ScientificBinary(t *testing.T) {
	got, err := WriteFloat32(nil, math.MaxFloat32, Binary, DefaultOptions)
	require.NoError(t, err)
	assert.Equal(t, "1.11111111111111111111111e1111111", string(got))
}

func TestWriteFloat64MixedBases(t *testing.T) {
	// Radix-32 digits, base-2 exponent rendered in octal, with the
	// backup exponent character since radix 32 aliases 'e' as a digit.
	f := NewFormatBuilder().MantissaRadix(32).ExponentBase(2).ExponentRadix(8).MustBuild()
	got, err := WriteFloat64(nil, 0.2345678901234567890e40, f, DefaultOptions)
	require.NoError(t, err)
	assert.Equal(t, "1.N4M59DCAVIO^202", string(got))

	// ...and the text reads back to the same value.
	v, err := ParseFloat64(got, f, DefaultOptions)
	require.NoError(t, err)
	assert.Equal(t, 0.2345678901234567890e40, v)
}

func TestWriteFloatSpecialValues(t *testing.T) {
	got, err := WriteFloat64(nil, math.NaN(), Decimal, DefaultOptions)
	require.NoError(t, err)
	assert.Equal(t, "NaN", string(got))

	got, err = WriteFloat64(nil, math.Inf(1), Decimal, DefaultOptions)
	require.NoError(t, err)
	assert.Equal(t, "Infinity", string(got))

	got, err = WriteFloat64(nil, math.Inf(-1), Decimal, DefaultOptions)
	require.NoError(t, err)
	assert.Equal(t, "-Infinity", string(got))
}

func TestWriteFloatUnsupportedRadix(t *testing.T) {
	f := NewFormatBuilder().MantissaRadix(7).MustBuild()
	_, err := WriteFloat64(nil, 1.0, f, DefaultOptions)
	assert.ErrorIs(t, err, ErrUnsupportedWriteRadix)
}

func TestParseWriteRoundTripDecimal64(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	for i := 0; i < 20000; i++ {
		bits := rnd.Uint64()
		f := math.Float64frombits(bits)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			continue
		}
		text, err := WriteFloat64(nil, f, Decimal, DefaultOptions)
		require.NoError(t, err)
		got, err := ParseFloat64(text, Decimal, DefaultOptions)
		require.NoError(t, err, "parsing %q (from %v)", text, f)
		if got != f && !(f == 0 && got == 0) {
			t.Fatalf("round trip mismatch: %v -> %q -> %v", f, text, got)
		}
	}
}

func TestParseWriteRoundTripDecimal32(t *testing.T) {
	rnd := rand.New(rand.NewSource(8))
	for i := 0; i < 20000; i++ {
		bits := rnd.Uint32()
		f := math.Float32frombits(bits)
		if math.IsNaN(float64(f)) || math.IsInf(float64(f), 0) {
			continue
		}
		text, err := WriteFloat32(nil, f, Decimal, DefaultOptions)
		require.NoError(t, err)
		got, err := ParseFloat32(text, Decimal, DefaultOptions)
		require.NoError(t, err, "parsing %q (from %v)", text, f)
		if got != f && !(f == 0 && got == 0) {
			t.Fatalf("round trip mismatch: %v -> %q -> %v", f, text, got)
		}
	}
}

func TestParseWriteRoundTripPowerOfTwoRadices(t *testing.T) {
	rnd := rand.New(rand.NewSource(9))
	for _, radix := range []uint8{2, 4, 8, 16, 32} {
		f := NewFormatBuilder().MantissaRadix(radix).MustBuild()
		for i := 0; i < 4000; i++ {
			bits := rnd.Uint64()
			v := math.Float64frombits(bits)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			text, err := WriteFloat64(nil, v, f, DefaultOptions)
			require.NoError(t, err)
			got, err := ParseFloat64(text, f, DefaultOptions)
			require.NoError(t, err, "parsing %q (from %v, radix %d)", text, v, radix)
			if got != v && !(v == 0 && got == 0) {
				t.Fatalf("radix %d round trip mismatch: %v -> %q -> %v", radix, v, text, got)
			}
		}
	}
}

func TestParseWriteRoundTripHexMixedExponent(t *testing.T) {
	rnd := rand.New(rand.NewSource(10))
	for i := 0; i < 4000; i++ {
		bits := rnd.Uint64()
		v := math.Float64frombits(bits)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		text, err := WriteFloat64(nil, v, Hex, DefaultOptions)
		require.NoError(t, err)
		got, err := ParseFloat64(text, Hex, DefaultOptions)
		require.NoError(t, err, "parsing %q (from %v)", text, v)
		if got != v && !(v == 0 && got == 0) {
			t.Fatalf("hex round trip mismatch: %v -> %q -> %v", v, text, got)
		}
	}
}

func TestParseFloat64AgainstStrconv(t *testing.T) {
	samples := []string{
		"0", "-0", "1", "3.14159", "1e10", "1e-10", "1.5e300",
		"4.9406564584124654e-324", "123456789012345678901234567890",
		"2.2250738585072011e-308", // the infamous PHP hang value
		"1.2345678901234567890",
		"0.000000000000000000000000000001", "9007199254740993",
		"1e309", "-1e309", "1e-400", "1e999999999999", "-1e-999999999999",
	}
	for _, s := range samples {
		want, _ := strconv.ParseFloat(s, 64)
		got, err := ParseFloat64([]byte(s), Decimal, DefaultOptions)
		require.NoError(t, err, "parsing %q", s)
		if got != want && !(math.IsNaN(want) && math.IsNaN(got)) {
			t.Errorf("parse %q = %v (%#x), strconv says %v (%#x)", s, got, math.Float64bits(got), want, math.Float64bits(want))
		}
	}
}

func TestParseFloat32AgainstStrconv(t *testing.T) {
	samples := []string{
		"0", "1", "3.14159", "16777217", "1e39", "1e-46", "3.4028235e38",
		"1.1754944e-38", "1.4e-45", "0.1",
	}
	for _, s := range samples {
		want64, _ := strconv.ParseFloat(s, 32)
		want := float32(want64)
		got, err := ParseFloat32([]byte(s), Decimal, DefaultOptions)
		require.NoError(t, err, "parsing %q", s)
		if got != want && !(want == 0 && got == 0) {
			t.Errorf("parse32 %q = %v, strconv says %v", s, got, want)
		}
	}
}

// exactText renders m * 2**exp as an exact decimal scientific literal via
// math/big, long enough to be digit-for-digit exact for any binary64
// midpoint.
func exactText(m uint64, exp int) string {
	f := new(big.Float).SetPrec(1200).SetMantExp(new(big.Float).SetUint64(m), exp)
	return f.Text('e', 1100)
}

func TestParseFloat64ExactMidpointsAgainstStrconv(t *testing.T) {
	rnd := rand.New(rand.NewSource(11))
	check := func(text string) {
		t.Helper()
		want, err := strconv.ParseFloat(text, 64)
		require.NoError(t, err)
		got, perr := ParseFloat64([]byte(text), Decimal, DefaultOptions)
		require.NoError(t, perr, "parsing %q", text)
		if got != want {
			t.Fatalf("parse %q = %v (%#x), strconv says %v (%#x)",
				text[:30]+"...", got, math.Float64bits(got), want, math.Float64bits(want))
		}
	}

	// Halfway between consecutive floats at assorted magnitudes: ties
	// must go to even.
	for i := 0; i < 60; i++ {
		bits := rnd.Uint64() & ^uint64(1<<63)
		v := math.Float64frombits(bits)
		if math.IsNaN(v) || math.IsInf(v, 0) || v == 0 {
			continue
		}
		m, e, _ := decomposeForTest(v)
		check(exactText(2*m+1, e-1))
	}

	// The halfway point below the smallest subnormal ties to even zero.
	check(exactText(1, -1075))
	// Three quarters of the smallest subnormal rounds up to it.
	check(exactText(3, -1076))
	// The full-length expansion of the smallest subnormal itself.
	check(exactText(1, -1074))
	// Halfway at the top of the mantissa range.
	check(exactText(1<<53|1, -53))
	check(exactText(1<<53|1, 100))
}

func decomposeForTest(v float64) (m uint64, e int, neg bool) {
	bits := math.Float64bits(v)
	neg = bits>>63 != 0
	exp := int(bits>>52) & 0x7FF
	m = bits & (1<<52 - 1)
	if exp == 0 {
		return m, -1074, neg
	}
	return m | 1<<52, exp - 1075, neg
}

func TestParseFloat64SmallestSubnormalLongLiteral(t *testing.T) {
	// The worked long-literal case: the exact decimal expansion of
	// 2^-1074 has over 750 significant digits and must come back as the
	// smallest subnormal via the slow path.
	text := exactText(1, -1074)
	got, err := ParseFloat64([]byte(text), Decimal, DefaultOptions)
	require.NoError(t, err)
	assert.Equal(t, math.SmallestNonzeroFloat64, got)
}

func TestParseFloat64ManyDigits(t *testing.T) {
	got, err := ParseFloat64([]byte("1.2345678901234567890"), Decimal, DefaultOptions)
	require.NoError(t, err)
	assert.Equal(t, 1.2345678901234567, got)
}

func TestParseFloat64Radix7AgainstBigRat(t *testing.T) {
	// Exponent digits are spelled in decimal; the exponent base itself
	// still follows the mantissa radix.
	f := NewFormatBuilder().MantissaRadix(7).ExponentRadix(10).MustBuild()
	rnd := rand.New(rand.NewSource(12))
	digits := []byte("0123456")
	for i := 0; i < 300; i++ {
		n := rnd.Intn(25) + 1
		var sb strings.Builder
		sb.WriteByte(digits[rnd.Intn(6)+1])
		for j := 1; j < n; j++ {
			sb.WriteByte(digits[rnd.Intn(7)])
		}
		exp := rnd.Intn(80) - 40
		text := sb.String() + "e" + strconv.Itoa(exp)

		mant, ok := new(big.Int).SetString(sb.String(), 7)
		require.True(t, ok)
		r := new(big.Rat).SetInt(mant)
		pow := new(big.Int).Exp(big.NewInt(7), big.NewInt(int64(abs(exp))), nil)
		if exp >= 0 {
			r.Mul(r, new(big.Rat).SetInt(pow))
		} else {
			r.Quo(r, new(big.Rat).SetInt(pow))
		}
		want, _ := r.Float64()

		got, err := ParseFloat64([]byte(text), f, DefaultOptions)
		require.NoError(t, err, "parsing %q", text)
		if got != want {
			t.Fatalf("radix 7 parse %q = %v (%#x), want %v (%#x)", text, got, math.Float64bits(got), want, math.Float64bits(want))
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func TestParseFloat64Partial(t *testing.T) {
	v, n, err := ParseFloat64Partial([]byte("3.14rest"), Decimal, DefaultOptions)
	require.NoError(t, err)
	assert.Equal(t, 3.14, v)
	assert.Equal(t, 4, n)
}

func TestParseFloat64RejectsTrailingGarbage(t *testing.T) {
	_, err := ParseFloat64([]byte("3.14rest"), Decimal, DefaultOptions)
	require.Error(t, err)
}

func TestParseFloat64SpecialLiterals(t *testing.T) {
	v, err := ParseFloat64([]byte("NaN"), Decimal, DefaultOptions)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(v))

	v, err = ParseFloat64([]byte("inf"), Decimal, DefaultOptions)
	require.NoError(t, err)
	assert.True(t, math.IsInf(v, 1))

	v, err = ParseFloat64([]byte("-inf"), Decimal, DefaultOptions)
	require.NoError(t, err)
	assert.True(t, math.IsInf(v, -1))

	v, err = ParseFloat64([]byte("infinity"), Decimal, DefaultOptions)
	require.NoError(t, err)
	assert.True(t, math.IsInf(v, 1))
}

func TestParseFloat64NoSpecial(t *testing.T) {
	f := NewFormatBuilder().NoSpecial(true).MustBuild()
	_, err := ParseFloat64([]byte("NaN"), f, DefaultOptions)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, ErrInvalidSpecial, perr.Kind)
}

func TestParseFloat64CustomSpecialLiterals(t *testing.T) {
	o := DefaultOptions
	o.NaN = "nil"
	o.Infinity = "huge"
	v, err := ParseFloat64([]byte("nil"), Decimal, o)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(v))

	got, err := WriteFloat64(nil, math.Inf(1), Decimal, o)
	require.NoError(t, err)
	assert.Equal(t, "huge", string(got))
}

func TestParseFloat64NegativeZero(t *testing.T) {
	v, err := ParseFloat64([]byte("-0.0"), Decimal, DefaultOptions)
	require.NoError(t, err)
	assert.True(t, math.Signbit(v))
	assert.Equal(t, 0.0, math.Abs(v))

	v, err = ParseFloat64([]byte("-0.0"), Binary, DefaultOptions)
	require.NoError(t, err)
	assert.True(t, math.Signbit(v))
}

func TestParseFloat64DigitSeparators(t *testing.T) {
	f := NewFormatBuilder().DigitSeparator('_').
		SeparatorIntegerInternal(true).SeparatorFractionInternal(true).MustBuild()

	v, err := ParseFloat64([]byte("1_234.5"), f, DefaultOptions)
	require.NoError(t, err)
	assert.Equal(t, 1234.5, v)

	v, err = ParseFloat64([]byte("1_2_3.4_5"), f, DefaultOptions)
	require.NoError(t, err)
	assert.Equal(t, 123.45, v)

	// Trailing separators are not enabled: the number ends before them.
	v, n, err := ParseFloat64Partial([]byte("12_"), f, DefaultOptions)
	require.NoError(t, err)
	assert.Equal(t, 12.0, v)
	assert.Equal(t, 2, n)

	// Consecutive separators are not enabled either.
	_, n, err = ParseFloat64Partial([]byte("1__2"), f, DefaultOptions)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	// Leading separators are rejected outright: no digits were found.
	_, err = ParseFloat64([]byte("_12"), f, DefaultOptions)
	require.Error(t, err)
}

func TestParseFloat64SignPolicies(t *testing.T) {
	f := NewFormatBuilder().NoPositiveMantissaSign(true).MustBuild()
	_, err := ParseFloat64([]byte("+5"), f, DefaultOptions)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, ErrInvalidPositiveSign, perr.Kind)

	f = NewFormatBuilder().RequiredMantissaSign(true).MustBuild()
	_, err = ParseFloat64([]byte("5"), f, DefaultOptions)
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, ErrMissingSign, perr.Kind)

	f = NewFormatBuilder().RequiredExponentSign(true).MustBuild()
	_, err = ParseFloat64([]byte("5e10"), f, DefaultOptions)
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, ErrMissingExponentSign, perr.Kind)
	v, err := ParseFloat64([]byte("5e+10"), f, DefaultOptions)
	require.NoError(t, err)
	assert.Equal(t, 5e10, v)
}

func TestParseFloat64LeadingZeroPolicies(t *testing.T) {
	f := NewFormatBuilder().NoIntegerLeadingZeros(true).MustBuild()
	_, err := ParseFloat64([]byte("0123"), f, DefaultOptions)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, ErrInvalidLeadingZeros, perr.Kind)

	v, err := ParseFloat64([]byte("0.5"), f, DefaultOptions)
	require.NoError(t, err)
	assert.Equal(t, 0.5, v)
}

func TestParseFloat64EmptyInputs(t *testing.T) {
	var perr *ParseError

	_, err := ParseFloat64(nil, Decimal, DefaultOptions)
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, ErrEmpty, perr.Kind)

	_, err = ParseFloat64([]byte("."), Decimal, DefaultOptions)
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, ErrEmptyMantissa, perr.Kind)

	_, err = ParseFloat64([]byte("1e"), Decimal, DefaultOptions)
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, ErrEmptyExponent, perr.Kind)
}

func TestParseFloat64ErrorCursor(t *testing.T) {
	_, err := ParseFloat64([]byte("12x4"), Decimal, DefaultOptions)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, ErrInvalidDigit, perr.Kind)
	assert.Equal(t, 2, perr.Cursor)
}

func TestParseIntAgainstStrconv(t *testing.T) {
	rnd := rand.New(rand.NewSource(13))
	for i := 0; i < 2000; i++ {
		v := rnd.Int63() - rnd.Int63()
		for _, radix := range []uint64{2, 8, 10, 16, 36} {
			s := strconv.FormatInt(v, int(radix))
			got, consumed, err := ParseInt([]byte(s), radix)
			require.NoError(t, err)
			assert.Equal(t, len(s), consumed)
			assert.Equal(t, v, got)
		}
	}
}

func TestWriteIntAgainstStrconv(t *testing.T) {
	rnd := rand.New(rand.NewSource(14))
	for i := 0; i < 2000; i++ {
		v := rnd.Int63() - rnd.Int63()
		for _, radix := range []uint64{2, 8, 10, 16, 36} {
			want := strings.ToUpper(strconv.FormatInt(v, int(radix)))
			got := string(WriteInt(nil, v, radix))
			assert.Equal(t, want, got)
		}
	}
}

func TestWriteIntMinInt64(t *testing.T) {
	want := strconv.FormatInt(math.MinInt64, 10)
	got := string(WriteInt(nil, math.MinInt64, 10))
	assert.Equal(t, want, got)
}

func TestWriteFloatOptionsTrimAndPad(t *testing.T) {
	o := DefaultOptions
	o.TrimFloats = true
	got, err := WriteFloat64(nil, 2.0, Decimal, o)
	require.NoError(t, err)
	assert.Equal(t, "2", string(got))

	o = DefaultOptions
	o.MinDigits = 4
	got, err = WriteFloat64(nil, 2.0, Decimal, o)
	require.NoError(t, err)
	assert.Equal(t, "2.0000", string(got))
}
