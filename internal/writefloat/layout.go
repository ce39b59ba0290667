// Package writefloat implements the float-to-string side of the engine:
// the exact power-of-two-radix formatter and the decimal driver that
// wraps a pluggable minimum-digit collaborator. Both share the
// post-digit-generation layout logic in this file — scientific-vs-
// positional selection, padding, trimming and exponent rendering — so
// the assembly logic is not duplicated per radix family.
package writefloat

import "github.com/db47h/radixfloat/internal/digit"

// Config bundles the formatting knobs both writers consult: the format
// descriptor's exponent/point characters and radices, and the
// per-call scientific-threshold/padding/trim options. Both writers hand
// the layout helpers an MSB-first digit run plus scientific exponents
// already scaled to the right digit grids, so the code here never needs
// to know about bits-per-digit itself.
type Config struct {
	DecimalPoint       byte
	ExponentChar       byte
	ExponentCharBackup byte
	MantissaRadix      uint64
	ExponentBase       uint64
	ExponentRadix      uint64

	MinPositionalExp int32
	MaxPositionalExp int32
	MinDigits        int
	TrimFloats       bool
}

// UseScientific reports whether sciExp crosses the configured threshold.
// The comparison runs against the scientific exponent already expressed
// in digits of the mantissa radix, so the default -5/9 decimal-flavoured
// bounds scale sensibly for any radix.
func (c Config) UseScientific(sciExp int32) bool {
	return sciExp < c.MinPositionalExp || sciExp > c.MaxPositionalExp
}

// exponentChar picks the backup character whenever the primary could
// alias a mantissa digit, which is possible from radix 15 up.
func (c Config) exponentChar() byte {
	if c.MantissaRadix >= 15 {
		return c.ExponentCharBackup
	}
	return c.ExponentChar
}

// appendExponent renders a signed exponent using the exponent radix, e.g.
// "e10" or "e-5" (no sign for a non-negative exponent, matching the
// shortest-form output contract). displayExp is already expressed in the
// format's exponent base: for most formats (where exponentBase ==
// mantissaRadix, e.g. Decimal and Binary) this is the same value as the
// layout-threshold sciExp, but for formats like Hex (mantissa radix 16,
// exponent base 2) it is not, so callers must keep the two separate
// rather than reusing one exponent for both roles.
func (c Config) appendExponent(dst []byte, displayExp int32) []byte {
	dst = append(dst, c.exponentChar())
	v := displayExp
	if v < 0 {
		dst = append(dst, '-')
		v = -v
	}
	return digit.AppendUint64(dst, uint64(v), c.ExponentRadix)
}

// assemble is the post-digit-generation driver for writers whose digit
// run is layout-independent (the decimal side): it takes a trimmed,
// MSB-first digit run, its scientific exponent scaled in digits of the
// mantissa radix (used for the scientific/positional threshold and for
// positional point placement), and its scientific exponent scaled in
// the format's exponent base (used only for the text rendered after the
// exponent character). The binary writer picks its layout before
// generating digits instead, and calls appendScientific and
// appendPositional directly.
func assemble(dst []byte, digits []byte, sciExp, displayExp int32, cfg Config) []byte {
	if len(digits) == 1 && digits[0] == '0' {
		return appendZero(dst, cfg)
	}
	if cfg.UseScientific(sciExp) {
		return appendScientific(dst, digits, displayExp, cfg)
	}
	return appendPositional(dst, digits, sciExp, cfg)
}

// appendZero renders the zero case: "0.0", or bare "0" when TrimFloats
// is set and no minimum digit count was requested.
func appendZero(dst []byte, cfg Config) []byte {
	dst = append(dst, '0')
	return appendFractionTail(dst, 0, cfg)
}

// appendFractionTail appends the decimal point and zero-padding for a
// value with zero fractional digits so far (the all-integer case, used
// by both the zero literal and a whole-number positional result),
// honouring TrimFloats (elide ".0" when no padding was requested).
func appendFractionTail(dst []byte, have int, cfg Config) []byte {
	if cfg.TrimFloats && cfg.MinDigits <= have {
		return dst
	}
	dst = append(dst, cfg.DecimalPoint)
	n := cfg.MinDigits
	if n < have+1 {
		n = have + 1
	}
	for i := have; i < n; i++ {
		dst = append(dst, '0')
	}
	return dst
}

// padFraction appends zeros so the fractional part already holding `have`
// digits reaches at least cfg.MinDigits, used when a decimal point and
// at least one fraction digit are already present.
func padFraction(dst []byte, have int, cfg Config) []byte {
	for have < cfg.MinDigits {
		dst = append(dst, '0')
		have++
	}
	return dst
}

func appendScientific(dst []byte, digits []byte, displayExp int32, cfg Config) []byte {
	dst = append(dst, digits[0])
	dst = append(dst, cfg.DecimalPoint)
	have := len(digits) - 1
	if have > 0 {
		dst = append(dst, digits[1:]...)
	} else {
		dst = append(dst, '0')
		have = 1 // the synthesised '0' counts as a fraction digit already
	}
	dst = padFraction(dst, have, cfg)
	return cfg.appendExponent(dst, displayExp)
}

// appendPositional lays digits out around the radix point, using
// pointPos = sciExp+1 (the count of digits that belong before the point)
// uniformly for the leading-zeros (pointPos <= 0), trailing-zeros
// (pointPos >= len(digits)) and split cases.
func appendPositional(dst []byte, digits []byte, sciExp int32, cfg Config) []byte {
	pointPos := int(sciExp) + 1
	l := len(digits)
	switch {
	case pointPos <= 0:
		dst = append(dst, '0', cfg.DecimalPoint)
		for i := 0; i < -pointPos; i++ {
			dst = append(dst, '0')
		}
		dst = append(dst, digits...)
		dst = padFraction(dst, l-pointPos, cfg)
	case pointPos >= l:
		dst = append(dst, digits...)
		for i := 0; i < pointPos-l; i++ {
			dst = append(dst, '0')
		}
		dst = appendFractionTail(dst, 0, cfg)
	default:
		dst = append(dst, digits[:pointPos]...)
		dst = append(dst, cfg.DecimalPoint)
		dst = append(dst, digits[pointPos:]...)
		dst = padFraction(dst, l-pointPos, cfg)
	}
	return dst
}

// trimTrailingZeroDigits trims trailing '0' digit bytes from an
// MSB-first digit run, always keeping at least one digit.
func trimTrailingZeroDigits(digits []byte) []byte {
	for len(digits) > 1 && digits[len(digits)-1] == '0' {
		digits = digits[:len(digits)-1]
	}
	return digits
}
