package radixfloat

import (
	"errors"
	"math"

	"github.com/db47h/radixfloat/internal/digit"
	"github.com/db47h/radixfloat/internal/expmath"
	"github.com/db47h/radixfloat/internal/fp"
	"github.com/db47h/radixfloat/internal/writefloat"
)

// ErrUnsupportedWriteRadix is returned by WriteFloat32/64 when f's
// mantissa radix is neither a power of two nor decimal. Power-of-two
// radices format exactly via shifts, and decimal has a proven
// shortest-digit formatter; there is no comparable algorithm wired for,
// say, radix 7, so rather than emit digits of unproven round-trip
// fidelity the writer declines.
var ErrUnsupportedWriteRadix = errors.New("radixfloat: WriteFloat only supports power-of-two mantissa radices and decimal (radix 10)")

// writeConfig translates f and o into the writefloat package's shared
// layout knobs.
func (f Format) writeConfig(o Options) writefloat.Config {
	o = o.withDefaults()
	return writefloat.Config{
		DecimalPoint:       f.decimalPoint,
		ExponentChar:       f.exponentChar,
		ExponentCharBackup: f.exponentCharBackup,
		MantissaRadix:      uint64(f.mantissaRadix),
		ExponentBase:       uint64(f.exponentBase),
		ExponentRadix:      uint64(f.exponentRadix),
		MinPositionalExp:   o.MinPositionalExp,
		MaxPositionalExp:   o.MaxPositionalExp,
		MinDigits:          o.MinDigits,
		TrimFloats:         o.TrimFloats,
	}
}

// WriteFloat64 appends the shortest round-trip representation of v to
// dst according to format f and options o, returning the extended
// buffer. Special values print the configured literal from o; finite
// values dispatch to the exact power-of-two formatter or the decimal
// driver (via writefloat.DefaultFormatter) depending on f's mantissa
// radix.
func WriteFloat64(dst []byte, v float64, f Format, o Options) ([]byte, error) {
	o = o.withDefaults()
	if math.IsNaN(v) {
		return append(dst, o.NaN...), nil
	}
	if math.IsInf(v, 0) {
		if v < 0 {
			dst = append(dst, '-')
		}
		return append(dst, o.Infinity...), nil
	}

	cfg := f.writeConfig(o)
	radix := uint64(f.mantissaRadix)
	switch {
	case expmath.IsPowerOfTwo(radix):
		mantissa, exp, neg := fp.Decompose64(v)
		return writefloat.WriteBinary(dst, mantissa, exp, neg, radix, cfg), nil
	case radix == 10:
		return writefloat.WriteDecimal64(dst, math.Abs(v), math.Signbit(v), cfg, writefloat.DefaultFormatter), nil
	default:
		return dst, ErrUnsupportedWriteRadix
	}
}

// WriteFloat32 is WriteFloat64 for float32.
func WriteFloat32(dst []byte, v float32, f Format, o Options) ([]byte, error) {
	o = o.withDefaults()
	v64 := float64(v)
	if math.IsNaN(v64) {
		return append(dst, o.NaN...), nil
	}
	if math.IsInf(v64, 0) {
		if v < 0 {
			dst = append(dst, '-')
		}
		return append(dst, o.Infinity...), nil
	}

	cfg := f.writeConfig(o)
	radix := uint64(f.mantissaRadix)
	switch {
	case expmath.IsPowerOfTwo(radix):
		mantissa, exp, neg := fp.Decompose32(v)
		return writefloat.WriteBinary(dst, mantissa, exp, neg, radix, cfg), nil
	case radix == 10:
		var abs float32 = v
		if v < 0 {
			abs = -v
		}
		return writefloat.WriteDecimal32(dst, abs, math.Signbit(v64), cfg, writefloat.DefaultFormatter), nil
	default:
		return dst, ErrUnsupportedWriteRadix
	}
}

// WriteInt appends the base-radix text of v to dst, handling the sign
// the same way the float mantissa scanner does.
func WriteInt(dst []byte, v int64, radix uint64) []byte {
	if v < 0 {
		dst = append(dst, '-')
		// v == math.MinInt64 would overflow a bare negation; widen via
		// uint64 two's-complement instead of special-casing it.
		return digit.AppendUint64(dst, uint64(-(v + 1))+1, radix)
	}
	return digit.AppendUint64(dst, uint64(v), radix)
}
