package parsefloat

// Moderate runs the moderate-precision path: Eisel-Lemire for decimal
// mantissas within the precomputed power-of-ten table's range,
// Bellerophon for every other non-power-of-two radix (decimal exponents
// outside the table included — there is no reason to give up with no
// candidate at all just because exp10 falls outside [-342, 308] when
// Bellerophon's on-demand big.Float approximation handles any radix,
// decimal included).
//
// It returns ok=false when the result is ambiguous and the caller must
// fall back to the arbitrary-precision slow path; sticky reports whether
// bits known-nonzero were discarded below the returned candidate, for
// Reconstruct to treat an exact-halfway truncation as above halfway
// rather than a true tie. Even when ok is false, normMantissa and
// trueExp are still the moderate path's best candidate — the slow path
// needs it to pick among b-, b and b+, not a zero placeholder.
func Moderate(mantissa uint64, exp int32, radix uint64) (normMantissa uint64, trueExp int32, sticky bool, ok bool) {
	var r extFloat
	if radix == 10 {
		if _, tableOK := lookupPow10(exp); tableOK {
			r = eiselLemire(mantissa, exp)
		} else {
			r = bellerophon(mantissa, exp, radix)
		}
	} else {
		r = bellerophon(mantissa, exp, radix)
	}
	return r.mantissa, r.exp, r.sticky, !r.ambig
}
