package writefloat

import (
	"strconv"
)

// DecimalFormatter is the decimal digit-generation collaborator: a
// minimum-digit formatter producing the shortest round-trip digit string
// for a native float. It returns the MSB-first significant-digit
// run (no sign, no point) of a finite, positive, non-zero value together
// with its scientific exponent (the exponent of digits[0] in base 10),
// the same convention the binary writer uses so layout.go's assemble can
// stay radix-agnostic. Implementations are pluggable: the default wraps
// strconv's Ryu-derived shortest formatter, but any Grisu/Ryu/Dragon4
// package satisfying this interface may be substituted.
type DecimalFormatter interface {
	FormatDecimal64(f float64, buf []byte) (digits []byte, sciExp int32)
	FormatDecimal32(f float32, buf []byte) (digits []byte, sciExp int32)
}

// strconvFormatter is the default DecimalFormatter:
// strconv.AppendFloat's 'e' verb with prec -1 already is Go's built-in
// shortest-round-trip Ryu-derived decimal formatter, so this wraps it
// rather than reimplementing Ryu from scratch.
type strconvFormatter struct{}

// DefaultFormatter is the formatter WriteDecimal64/32 use unless the
// caller substitutes one.
var DefaultFormatter DecimalFormatter = strconvFormatter{}

func (strconvFormatter) FormatDecimal64(f float64, buf []byte) ([]byte, int32) {
	return parseStrconvE(strconv.AppendFloat(buf[:0], f, 'e', -1, 64))
}

func (strconvFormatter) FormatDecimal32(f float32, buf []byte) ([]byte, int32) {
	return parseStrconvE(strconv.AppendFloat(buf[:0], float64(f), 'e', -1, 32))
}

// parseStrconvE splits strconv's canonical "d.ddde±dd" output (always
// exactly one digit before the point) into a bare digit run and the
// already-scientific exponent it carries — strconv's own 'e' exponent
// convention is precisely the "exponent of the leading digit" this
// package's DecimalFormatter contract requires, so no rescaling is
// needed here the way the binary writer needs ScaleSciExp.
func parseStrconvE(buf []byte) (digits []byte, sciExp int32) {
	ePos := -1
	for i, c := range buf {
		if c == 'e' {
			ePos = i
			break
		}
	}
	mant := buf[:ePos]
	digits = make([]byte, 0, len(mant)-1)
	for _, c := range mant {
		if c != '.' {
			digits = append(digits, c)
		}
	}
	exp, _ := strconv.ParseInt(string(buf[ePos+1:]), 10, 32)
	return digits, int32(exp)
}

// WriteDecimal64 assembles the complete textual form for a finite,
// non-special float64 using formatter as the digit-generation
// collaborator: sign, layout, padding, trimming, exponent. Callers
// handle NaN/Infinity themselves.
func WriteDecimal64(dst []byte, f float64, neg bool, cfg Config, formatter DecimalFormatter) []byte {
	if neg {
		dst = append(dst, '-')
	}
	if f == 0 {
		return appendZero(dst, cfg)
	}
	var scratch [32]byte
	digits, sciExp := formatter.FormatDecimal64(f, scratch[:0])
	// Decimal formats always render the exponent in the same base the
	// digits themselves are in (there is no decimal analogue of Hex's
	// mantissa-radix/exponent-base split), so sciExp serves as both the
	// layout-threshold value and the displayed exponent.
	return assemble(dst, digits, sciExp, sciExp, cfg)
}

// WriteDecimal32 is WriteDecimal64 for float32.
func WriteDecimal32(dst []byte, f float32, neg bool, cfg Config, formatter DecimalFormatter) []byte {
	if neg {
		dst = append(dst, '-')
	}
	if f == 0 {
		return appendZero(dst, cfg)
	}
	var scratch [32]byte
	digits, sciExp := formatter.FormatDecimal32(f, scratch[:0])
	return assemble(dst, digits, sciExp, sciExp, cfg)
}
