// Package radixfloat implements round-trip-correct conversion between
// IEEE-754 binary32/binary64 values and their textual representation in
// any radix from 2 to 36, along with a standalone signed-integer
// parser/writer sharing the same digit machinery.
//
// A Format (built with NewFormatBuilder or one of the Decimal, Binary, Hex
// presets) packs the syntactic rules a particular textual dialect
// follows: mantissa radix, exponent base and radix, separators, decimal
// point, exponent and sign characters, and a set of boolean policy flags
// governing leading zeros, signs and base prefixes/suffixes. Options
// carries the per-call knobs that aren't part of the dialect itself:
// special-value literals and the scientific/positional notation
// thresholds.
//
// ParseFloat64, ParseFloat64Partial, ParseFloat32 and ParseFloat32Partial
// parse text into the nearest representable float, choosing among a fast
// exact path, an Eisel-Lemire/Bellerophon moderate path and an arbitrary-
// precision slow path depending on how many significant digits the input
// carries. WriteFloat64 and WriteFloat32 perform the inverse conversion,
// producing the shortest digit string that parses back to the same
// value, via an exact formatter for power-of-two mantissa radices and a
// decimal formatter for radix 10.
package radixfloat
