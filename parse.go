package radixfloat

import (
	"math"

	"github.com/db47h/radixfloat/internal/digit"
	"github.com/db47h/radixfloat/internal/expmath"
	"github.com/db47h/radixfloat/internal/fp"
	"github.com/db47h/radixfloat/internal/parsefloat"
)

// maxSlowDigits caps the significant-digit run retained for the slow
// path. In an even radix every binary64 midpoint terminates within ~770
// significant decimal digits (~875 at worst, in radix 34), so a run this
// long always decides the comparison exactly; in an odd radix no midpoint
// terminates, so a run of at most this many digits never equals one.
// Anything past the cap is folded into a single sentinel digit that keeps
// the truncated value strictly between the kept prefix and its successor,
// preserving every comparison against a midpoint outside that interval.
const maxSlowDigits = 1200

// maxExpField caps the magnitude of the raw exponent field. Anything
// larger saturates to the same overflow/underflow result anyway, and the
// cap keeps the downstream int64 exponent arithmetic overflow-free.
const maxExpField = int64(1) << 40

// scanResult holds everything the byte-grammar scanner extracts from one
// number, prior to any path selection.
type scanResult struct {
	neg        bool
	special    string // non-empty iff this was a NaN/inf literal
	nan        bool
	mantissa   uint64
	manyDigits bool
	droppedExp int  // digit positions truncated off mantissa's low end
	droppedNz  bool // true iff a truncated digit position was nonzero
	expAdj     int  // digit positions trimmed off allDigits by the slow cap
	decExp     int64
	intDigits  []byte
	fracDigits []byte
	allDigits  []byte
	fracLen    int
	consumed   int
}

// scan implements the byte-level number grammar:
//
//	number   := sign? special | sign? mantissa exponent?
//	mantissa := base_prefix? (integer ('.' fraction?)? | '.' fraction) base_suffix?
//	integer  := digit (separator? digit)*
//	fraction := digit (separator? digit)*
//	exponent := exp_char sign? digit (separator? digit)*
//
// as a hand-written recursive-descent scanner rather than a generated
// parser.
func scan(s []byte, f Format, o Options) (scanResult, *ParseError) {
	var r scanResult
	i := 0

	if len(s) == 0 {
		return r, &ParseError{Kind: ErrEmpty, Cursor: 0}
	}

	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		if s[i] == '+' && f.NoPositiveMantissaSign() {
			return r, &ParseError{Kind: ErrInvalidPositiveSign, Cursor: i}
		}
		r.neg = s[i] == '-'
		i++
	} else if f.RequiredMantissaSign() {
		return r, &ParseError{Kind: ErrMissingSign, Cursor: i}
	}

	if lit, nan, ok := matchSpecial(s[i:], o, f.CaseSensitiveSpecial()); ok {
		if f.NoSpecial() {
			return r, &ParseError{Kind: ErrInvalidSpecial, Cursor: i}
		}
		r.special = lit
		r.nan = nan
		r.consumed = i + len(lit)
		return r, nil
	}

	if f.basePrefix != 0 && i < len(s) && matchesCase(s[i], f.basePrefix, f.CaseSensitiveBasePrefix()) {
		i++
	}

	intStart := i
	intDigits, end := scanDigitRun(s, i, uint64(f.mantissaRadix), f.digitSeparator,
		f.SeparatorIntegerLeading(), f.SeparatorIntegerInternal(),
		f.SeparatorIntegerTrailing(), f.SeparatorIntegerConsecutive())
	i = end

	if len(intDigits) == 0 && f.RequiredIntegerDigits() {
		return r, &ParseError{Kind: ErrEmptyInteger, Cursor: intStart}
	}
	if f.NoIntegerLeadingZeros() && len(intDigits) > 1 && intDigits[0] == '0' {
		return r, &ParseError{Kind: ErrInvalidLeadingZeros, Cursor: intStart}
	}

	var fracDigits []byte
	hasFraction := false
	if i < len(s) && s[i] == f.decimalPoint {
		i++
		hasFraction = true
		fracStart := i
		fracDigits, end = scanDigitRun(s, i, uint64(f.mantissaRadix), f.digitSeparator,
			f.SeparatorFractionLeading(), f.SeparatorFractionInternal(),
			f.SeparatorFractionTrailing(), f.SeparatorFractionConsecutive())
		i = end
		if len(fracDigits) == 0 && f.RequiredFractionDigits() {
			return r, &ParseError{Kind: ErrEmptyFraction, Cursor: fracStart}
		}
	}

	if len(intDigits) == 0 && len(fracDigits) == 0 {
		return r, &ParseError{Kind: ErrEmptyMantissa, Cursor: intStart}
	}
	if f.NoFloatLeadingZeros() && hasFraction && len(intDigits) > 1 && intDigits[0] == '0' {
		return r, &ParseError{Kind: ErrInvalidLeadingZeros, Cursor: intStart}
	}

	if f.baseSuffix != 0 && i < len(s) && matchesCase(s[i], f.baseSuffix, f.CaseSensitiveBaseSuffix()) {
		i++
	}

	var exp int64
	expCh := f.exponentChar
	if f.mantissaRadix >= 15 {
		expCh = f.exponentCharBackup
	}
	if !f.NoExponentNotation() && i < len(s) && matchesCase(s[i], expCh, f.CaseSensitiveExponent()) {
		if !hasFraction && f.NoExponentWithoutFraction() {
			return r, &ParseError{Kind: ErrExponentWithoutFraction, Cursor: i}
		}
		expStart := i
		i++
		expNeg := false
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			if s[i] == '+' && f.NoPositiveExponentSign() {
				return r, &ParseError{Kind: ErrInvalidPositiveExponentSign, Cursor: i}
			}
			expNeg = s[i] == '-'
			i++
		} else if f.RequiredExponentSign() {
			return r, &ParseError{Kind: ErrMissingExponentSign, Cursor: i}
		}
		expDigits, end := scanDigitRun(s, i, uint64(f.exponentRadix), f.digitSeparator,
			f.SeparatorExponentLeading(), f.SeparatorExponentInternal(),
			f.SeparatorExponentTrailing(), f.SeparatorExponentConsecutive())
		i = end
		if len(expDigits) == 0 {
			return r, &ParseError{Kind: ErrEmptyExponent, Cursor: expStart}
		}
		v, _, _, _ := accumulate(expDigits, uint64(f.exponentRadix))
		exp = int64(v)
		if exp > maxExpField || exp < 0 {
			exp = maxExpField
		}
		if expNeg {
			exp = -exp
		}
	} else if f.RequiredExponentNotation() {
		return r, &ParseError{Kind: ErrMissingExponent, Cursor: i}
	}

	allDigits := append(append([]byte(nil), intDigits...), fracDigits...)

	// Leading zeros carry no precision; dropping them up front keeps the
	// slow-digit cap below counting only significant positions.
	j := 0
	for j < len(allDigits)-1 && allDigits[j] == '0' {
		j++
	}
	allDigits = allDigits[j:]

	if len(allDigits) > maxSlowDigits {
		tail := allDigits[maxSlowDigits:]
		nonzero := false
		for _, c := range tail {
			if c != '0' {
				nonzero = true
				break
			}
		}
		r.expAdj = len(tail)
		allDigits = allDigits[:maxSlowDigits]
		if nonzero {
			allDigits = append(allDigits, '1')
			r.expAdj--
		}
	}

	mantissa, manyDigits, droppedExp, droppedNz := accumulate(allDigits, uint64(f.mantissaRadix))

	r.mantissa = mantissa
	r.manyDigits = manyDigits
	r.droppedExp = droppedExp
	r.droppedNz = droppedNz
	r.decExp = exp
	r.intDigits = intDigits
	r.fracDigits = fracDigits
	r.allDigits = allDigits
	r.fracLen = len(fracDigits)
	r.consumed = i
	return r, nil
}

// scanDigitRun consumes a run of digits possibly interleaved with the
// configured separator byte, honouring the run's four separator-location
// policies. It returns the digit bytes with separators stripped out and
// the index just past the consumed input. A separator whose position the
// policy disallows is not consumed — the run simply ends before it — so
// the decision between "trailing junk" and "hard error" stays with the
// caller's complete/partial contract.
func scanDigitRun(s []byte, start int, radix uint64, sep byte, leading, internal, trailing, consecutive bool) (digits []byte, end int) {
	i := start
	pending := 0
	pendingStart := 0
	seenDigit := false
	for i < len(s) {
		c := s[i]
		if _, ok := digitValue(c, radix); ok {
			if pending > 0 {
				allowed := internal
				if !seenDigit {
					allowed = leading
				}
				if pending > 1 && !consecutive {
					allowed = false
				}
				if !allowed {
					return digits, pendingStart
				}
				pending = 0
			}
			digits = append(digits, c)
			seenDigit = true
			i++
			continue
		}
		if sep != 0 && c == sep {
			if pending == 0 {
				pendingStart = i
			}
			pending++
			i++
			continue
		}
		break
	}
	if pending > 0 {
		if !seenDigit || !trailing || (pending > 1 && !consecutive) {
			return digits, pendingStart
		}
	}
	return digits, i
}

// accumulate folds a digit run into the Number record's bounded 64-bit
// accumulator. Leading zero digits carry no precision and are skipped
// before counting; once more significant digits have been folded in than
// can fit a 64-bit word at this radix, the rest are dropped rather than
// silently wrapping the accumulator (as a naive v*radix+dv loop would
// for, e.g., a 30-digit decimal literal). droppedExp counts how many
// trailing digit positions were dropped, so the caller can bump its
// exponent by that many digit positions to compensate; droppedNz reports
// whether any dropped position held a nonzero digit (the sticky
// information an exact power-of-two reconstruction still needs). many
// reports whether anything was dropped at all: the caller uses it to
// force the slow path rather than trust a fast- or moderate-path result
// computed from a lossy mantissa.
func accumulate(digits []byte, radix uint64) (v uint64, many bool, droppedExp int, droppedNz bool) {
	i := 0
	for i < len(digits) && digits[i] == '0' {
		i++
	}
	step := expmath.U64Step(radix)
	n := 0
	for ; i < len(digits) && n < step; i++ {
		dv, _ := digitValue(digits[i], radix)
		v = v*radix + dv
		n++
	}
	droppedExp = len(digits) - i
	for j := i; j < len(digits); j++ {
		if digits[j] != '0' {
			droppedNz = true
			break
		}
	}
	return v, droppedExp > 0, droppedExp, droppedNz
}

func matchesCase(got, want byte, caseSensitive bool) bool {
	if caseSensitive {
		return got == want
	}
	return lower(got) == lower(want)
}

func lower(b byte) byte {
	if 'A' <= b && b <= 'Z' {
		return b + 'a' - 'A'
	}
	return b
}

func matchSpecial(s []byte, o Options, caseSensitive bool) (lit string, nan bool, ok bool) {
	o = o.withDefaults()
	for _, lit := range [...]string{o.Infinity, o.Inf} {
		if hasPrefixFold(s, lit, caseSensitive) {
			return lit, false, true
		}
	}
	if hasPrefixFold(s, o.NaN, caseSensitive) {
		return o.NaN, true, true
	}
	return "", false, false
}

func hasPrefixFold(s []byte, lit string, caseSensitive bool) bool {
	if len(lit) == 0 || len(s) < len(lit) {
		return false
	}
	for i := 0; i < len(lit); i++ {
		if caseSensitive {
			if s[i] != lit[i] {
				return false
			}
		} else if lower(s[i]) != lower(lit[i]) {
			return false
		}
	}
	return true
}

// classifyExtreme pre-screens exponents the conversion machinery cannot
// usefully refine: with at least one significant digit, any value whose
// scaled exponent lands far past the overflow boundary is ±Infinity and
// any value far below the subnormal range is ±0. Besides settling those
// outright, the bound it enforces keeps the power computations Bellerophon
// and the slow path perform within their fixed working capacity.
func classifyExtreme(fi fp.Info, effExp int64, radix uint64) (inf, zero bool) {
	approx := float64(effExp) * math.Log2(float64(radix))
	if approx > float64(fi.MaxExponent)+float64(fi.MantissaSize)+3 {
		return true, false
	}
	if approx+66 < float64(fi.DenormalExponent) {
		return false, true
	}
	return false, false
}

func signedZero64(neg bool) float64 {
	if neg {
		return math.Copysign(0, -1)
	}
	return 0
}

func signedInf64(neg bool) float64 {
	if neg {
		return math.Inf(-1)
	}
	return math.Inf(1)
}

// ParseFloat64 parses a binary64 value from s using format f and options
// o; the entire input must be consumed. Use ParseFloat64Partial to accept
// the longest valid prefix instead.
func ParseFloat64(s []byte, f Format, o Options) (float64, error) {
	v, n, err := ParseFloat64Partial(s, f, o)
	if err != nil {
		return 0, err
	}
	if n != len(s) {
		return 0, &ParseError{Kind: ErrInvalidDigit, Cursor: n, Message: "trailing bytes after number"}
	}
	return v, nil
}

// ParseFloat64Partial scans a binary64 value from a prefix of s and
// reports how many bytes were consumed, dispatching across the fast,
// moderate and slow paths and reconstructing the final bits via
// fp.ReconstructSticky.
func ParseFloat64Partial(s []byte, f Format, o Options) (float64, int, error) {
	r, perr := scan(s, f, o)
	if perr != nil {
		return 0, 0, perr
	}
	if r.special != "" {
		v := math.NaN()
		if !r.nan {
			v = signedInf64(r.neg)
		} else if r.neg {
			v = -v
		}
		return v, r.consumed, nil
	}

	radix := uint64(f.mantissaRadix)
	if expmath.IsPowerOfTwo(radix) {
		bits := parsePow2(fp.Binary64, r, f)
		return math.Float64frombits(bits), r.consumed, nil
	}

	effExp := r.decExp - int64(r.fracLen) + int64(r.expAdj) + int64(r.droppedExp)

	n := parsefloat.Number{
		Mantissa:   r.mantissa,
		Exponent:   effExp,
		IsNegative: r.neg,
		ManyDigits: r.manyDigits,
		Integer:    r.intDigits,
		Fraction:   r.fracDigits,
	}

	if v, ok := parsefloat.FastPath64(n, radix); ok {
		if r.neg && v == 0 {
			return signedZero64(true), r.consumed, nil
		}
		return v, r.consumed, nil
	}

	if inf, zero := classifyExtreme(fp.Binary64, effExp, radix); inf || zero {
		if inf {
			return signedInf64(r.neg), r.consumed, nil
		}
		return signedZero64(r.neg), r.consumed, nil
	}

	normMantissa, trueExp, sticky, moderateOK := parsefloat.Moderate(r.mantissa, int32(effExp), radix)

	// r.manyDigits means the mantissa fed to the path above was already
	// truncated (accumulate dropped trailing significant digits), so even
	// a moderate path that claims success here isn't trustworthy: force
	// the slow path, which re-derives the exact value from r.allDigits
	// directly rather than from the lossy accumulator.
	if moderateOK && !r.manyDigits {
		bits := fp.Binary64.ReconstructSticky(normMantissa, trueExp, sticky, r.neg)
		return math.Float64frombits(bits), r.consumed, nil
	}

	// Seed the slow path with the moderate path's own best-guess candidate
	// (normMantissa, trueExp), reconstructed into native precision the
	// same way a successful moderate result would have been — never a
	// synthesized zero — since the b-/b+ selection depends on it.
	bits := fp.Binary64.ReconstructSticky(normMantissa, trueExp, sticky, false)
	candMantissa, candExp, _ := fp.Decompose64(math.Float64frombits(bits))

	slowExp := r.decExp - int64(r.fracLen) + int64(r.expAdj)
	fm, fe := parsefloat.SlowPath(fp.Binary64, r.allDigits, radix, slowExp, candMantissa, candExp)
	bits = fp.Binary64.Pack(fm, fe, r.neg)
	return math.Float64frombits(bits), r.consumed, nil
}

// parsePow2 is the exact conversion for power-of-two mantissa radices:
// the digit positions and the exponent field, each scaled by its own
// bits-per-digit, fold into one binary exponent, and the only precision
// the accumulator may have shed is pure stickiness below the kept 64
// bits.
func parsePow2(fi fp.Info, r scanResult, f Format) uint64 {
	if r.mantissa == 0 {
		if r.neg {
			return fi.SignMask
		}
		return 0
	}
	lg := int64(expmath.Log2(uint64(f.mantissaRadix)))
	lgE := int64(expmath.Log2(uint64(f.exponentBase)))
	binExp := r.decExp*lgE + (int64(r.expAdj)+int64(r.droppedExp)-int64(r.fracLen))*lg

	// Past these bounds the reconstruction saturates to ±Infinity or ±0
	// anyway; clamping keeps the int32 exponent cast safe.
	const binExpLimit = int64(1) << 20
	if binExp > binExpLimit {
		binExp = binExpLimit
	} else if binExp < -binExpLimit {
		binExp = -binExpLimit
	}

	normMantissa, trueExp := parsefloat.BinaryModerate(r.mantissa, binExp)
	return fi.ReconstructSticky(normMantissa, trueExp, r.droppedNz, r.neg)
}

// ParseFloat32 and ParseFloat32Partial are ParseFloat64 and
// ParseFloat64Partial specialised to binary32.
func ParseFloat32(s []byte, f Format, o Options) (float32, error) {
	v, n, err := ParseFloat32Partial(s, f, o)
	if err != nil {
		return 0, err
	}
	if n != len(s) {
		return 0, &ParseError{Kind: ErrInvalidDigit, Cursor: n, Message: "trailing bytes after number"}
	}
	return v, nil
}

func ParseFloat32Partial(s []byte, f Format, o Options) (float32, int, error) {
	r, perr := scan(s, f, o)
	if perr != nil {
		return 0, 0, perr
	}
	if r.special != "" {
		v := float32(math.NaN())
		if !r.nan {
			v = float32(signedInf64(r.neg))
		} else if r.neg {
			v = -v
		}
		return v, r.consumed, nil
	}

	radix := uint64(f.mantissaRadix)
	if expmath.IsPowerOfTwo(radix) {
		bits := parsePow2(fp.Binary32, r, f)
		return math.Float32frombits(uint32(bits)), r.consumed, nil
	}

	effExp := r.decExp - int64(r.fracLen) + int64(r.expAdj) + int64(r.droppedExp)

	n := parsefloat.Number{
		Mantissa:   r.mantissa,
		Exponent:   effExp,
		IsNegative: r.neg,
		ManyDigits: r.manyDigits,
		Integer:    r.intDigits,
		Fraction:   r.fracDigits,
	}

	if v, ok := parsefloat.FastPath32(n, radix); ok {
		if r.neg && v == 0 {
			return float32(signedZero64(true)), r.consumed, nil
		}
		return v, r.consumed, nil
	}

	if inf, zero := classifyExtreme(fp.Binary32, effExp, radix); inf || zero {
		if inf {
			return float32(signedInf64(r.neg)), r.consumed, nil
		}
		return float32(signedZero64(r.neg)), r.consumed, nil
	}

	normMantissa, trueExp, sticky, moderateOK := parsefloat.Moderate(r.mantissa, int32(effExp), radix)

	if moderateOK && !r.manyDigits {
		bits := fp.Binary32.ReconstructSticky(normMantissa, trueExp, sticky, r.neg)
		return math.Float32frombits(uint32(bits)), r.consumed, nil
	}

	bits := fp.Binary32.ReconstructSticky(normMantissa, trueExp, sticky, false)
	candMantissa, candExp, _ := fp.Decompose32(math.Float32frombits(uint32(bits)))

	slowExp := r.decExp - int64(r.fracLen) + int64(r.expAdj)
	fm, fe := parsefloat.SlowPath(fp.Binary32, r.allDigits, radix, slowExp, candMantissa, candExp)
	bits = fp.Binary32.Pack(fm, fe, r.neg)
	return math.Float32frombits(uint32(bits)), r.consumed, nil
}

// ParseInt parses a signed base-radix integer from the start of s.
// Unlike ParseFloat64/32, ParseInt does not go through scan — there is
// no fraction, exponent or special-literal grammar to resolve, only an
// optional sign followed by one or more digits — so it is a thin shim
// over internal/digit's own tables.
func ParseInt(s []byte, radix uint64) (int64, int, error) {
	i := 0
	neg := false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}
	v, n, ok := digit.ParseUint64(s[i:], radix)
	if !ok {
		return 0, 0, &ParseError{Kind: ErrEmptyInteger, Cursor: i, Message: "expected at least one digit"}
	}
	consumed := i + n
	if neg {
		return -int64(v), consumed, nil
	}
	return int64(v), consumed, nil
}
