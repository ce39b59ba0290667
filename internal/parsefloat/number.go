// Package parsefloat implements the string-to-float pipeline: a fast
// path for small exactly-representable inputs, the
// Eisel-Lemire/Bellerophon moderate path, the exact power-of-two
// conversion, and the arbitrary-precision slow path used whenever the
// moderate paths cannot prove the correctly rounded result.
package parsefloat

// Number is the record produced by the byte-grammar scanner and consumed
// by path selection. It is built once per call and never mutated
// afterward.
type Number struct {
	Mantissa   uint64 // accumulated significand, wrapping on overflow
	Exponent   int64  // signed exponent already scaled to exponent_base
	IsNegative bool
	ManyDigits bool // true iff more digits were seen than a uint64 holds losslessly

	Integer  []byte // byte-range view of the integer digit substring
	Fraction []byte // byte-range view of the fraction digit substring (nil if absent)
}

// extFloat is the internal extended-float representation passed between
// the moderate and slow paths. mantissa/exp are always the moderate
// path's best candidate — even when ambig is set, eiselLemire and
// bellerophon have already computed them before deciding the result is
// too close to a rounding boundary to trust outright, and the slow path
// needs that candidate (not a zero value) to pick among b-, b and b+.
type extFloat struct {
	mantissa uint64
	exp      int32
	ambig    bool // true marks "moderate path unsure; escalate to slow path"
	sticky   bool // true iff bits known-nonzero were discarded below mantissa
}
