// Package digit implements radix-aware small-integer <-> text
// conversion: a byte->digit-value lookup valid for radices up to 36, and
// text emitters table-accelerated for base 10 via a two-digits-per-pass
// pair table. The float engine uses it for significand and exponent
// digit runs; it also backs the standalone integer parse/write entry
// points.
package digit

import "github.com/db47h/radixfloat/internal/expmath"

// alphabet is the emission digit table: 0-9 then uppercase A-Z for
// radices up to 36. Parsing accepts either case; emission always picks
// uppercase.
const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Value returns the digit value of ch in the given radix, and whether ch is
// a valid digit for that radix (case-insensitive for letters).
func Value(ch byte, radix uint64) (v uint64, ok bool) {
	switch {
	case '0' <= ch && ch <= '9':
		v = uint64(ch - '0')
	case 'a' <= ch && ch <= 'z':
		v = uint64(ch-'a') + 10
	case 'A' <= ch && ch <= 'Z':
		v = uint64(ch-'A') + 10
	default:
		return 0, false
	}
	return v, v < radix
}

// Char returns the ASCII digit character for v (0-9, then uppercase
// A-Z), the shared alphabet every emitter (binary formatter included)
// draws from.
func Char(v uint64) byte { return alphabet[v] }

// digitPairs10 is a 200-byte base-10 "digit pair" table:
// digitPairs10[2*n:2*n+2] holds the two ASCII digits of n, for n in 0..99.
var digitPairs10 = buildDigitPairs10()

func buildDigitPairs10() [200]byte {
	var t [200]byte
	for n := 0; n < 100; n++ {
		t[2*n] = byte('0' + n/10)
		t[2*n+1] = byte('0' + n%10)
	}
	return t
}

// AppendUint64 appends the base-radix text of v to dst, without sign or
// padding, returning the extended slice. Radix 10 emits two digits per
// iteration via the pair table; other radices emit one digit per
// iteration.
func AppendUint64(dst []byte, v uint64, radix uint64) []byte {
	if v == 0 {
		return append(dst, '0')
	}
	var buf [64]byte // enough for radix 2
	i := len(buf)
	if radix == 10 {
		for v >= 100 {
			q := v / 100
			r := v - q*100
			i -= 2
			buf[i], buf[i+1] = digitPairs10[2*r], digitPairs10[2*r+1]
			v = q
		}
		if v >= 10 {
			i -= 2
			buf[i], buf[i+1] = digitPairs10[2*v], digitPairs10[2*v+1]
		} else {
			i--
			buf[i] = alphabet[v]
		}
	} else {
		for v > 0 {
			i--
			buf[i] = alphabet[v%radix]
			v /= radix
		}
	}
	return append(dst, buf[i:]...)
}

// ParseUint64 parses the longest valid prefix of s as a base-radix
// unsigned integer, returning the accumulated value (wrapping, per the
// Number record's many_digits contract — overflow detection is the
// caller's job via ManyDigits/U64Step), the count of digit bytes consumed,
// and whether at least one digit was found.
func ParseUint64(s []byte, radix uint64) (v uint64, consumed int, ok bool) {
	for consumed < len(s) {
		d, valid := Value(s[consumed], radix)
		if !valid {
			break
		}
		v = v*radix + d
		consumed++
	}
	return v, consumed, consumed > 0
}

// ManyDigits reports whether n significant digits exceed what a 64-bit
// accumulator holds losslessly at this radix, i.e. whether it may have
// wrapped while consuming them.
func ManyDigits(n int, radix uint64) bool {
	return n > expmath.U64Step(radix)
}
