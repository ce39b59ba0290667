package radixfloat

// Options is the per-call, immutable configuration record:
// special-value literals, the scientific/positional layout thresholds,
// and output formatting knobs. Nothing here is process-global state —
// the special-value literal table lives on Options, not a package
// variable, so per-call customisation needs no locking and leaks into
// no other caller.
type Options struct {
	// NaN, Inf and Infinity are the special-value literals recognised on
	// parse and emitted on write; empty strings fall back to DefaultOptions'
	// values.
	NaN, Inf, Infinity string

	// MinPositionalExp and MaxPositionalExp bound the scientific-exponent
	// window outside of which the float writers switch from positional to
	// scientific layout. They are compared against the scientific
	// exponent expressed in digits of the mantissa radix, so the same
	// field values scale sensibly whether the radix is 2 or 36. Leaving
	// both zero selects DefaultOptions' window.
	MinPositionalExp int32
	MaxPositionalExp int32

	// MinDigits pads the formatted fraction with trailing zeros to at
	// least this many digits.
	MinDigits int

	// TrimFloats elides a trailing ".0" when the formatted value is an
	// integer and the scientific path is not active.
	TrimFloats bool
}

// DefaultOptions is the conventional decimal behaviour (roughly, values
// past 1e-5 or 1e9 switch to scientific notation; "NaN"/"inf"/"Infinity"
// literals; no padding, no trimming) as a starting point callers can
// override field by field.
var DefaultOptions = Options{
	NaN:              "NaN",
	Inf:              "inf",
	Infinity:         "Infinity",
	MinPositionalExp: -5,
	MaxPositionalExp: 9,
	MinDigits:        0,
	TrimFloats:       false,
}

func (o Options) withDefaults() Options {
	if o.NaN == "" {
		o.NaN = DefaultOptions.NaN
	}
	if o.Inf == "" {
		o.Inf = DefaultOptions.Inf
	}
	if o.Infinity == "" {
		o.Infinity = DefaultOptions.Infinity
	}
	if o.MinPositionalExp == 0 && o.MaxPositionalExp == 0 {
		o.MinPositionalExp = DefaultOptions.MinPositionalExp
		o.MaxPositionalExp = DefaultOptions.MaxPositionalExp
	}
	return o
}
