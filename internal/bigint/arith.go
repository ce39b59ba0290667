package bigint

import "math/bits"

// Scalar kernels over little-endian limb slices, in the mulWW/addVV
// naming convention of math/big's low-level arithmetic, built on
// math/bits.

// addVV adds y to x limb-wise, returning the carry out of the top limb.
// z, x and y must have equal length.
func addVV(z, x, y []uint64) (c uint64) {
	for i := range z {
		z[i], c = bits.Add64(x[i], y[i], c)
	}
	return c
}

// subVV subtracts y from x limb-wise, returning the borrow out of the top
// limb.
func subVV(z, x, y []uint64) (c uint64) {
	for i := range z {
		z[i], c = bits.Sub64(x[i], y[i], c)
	}
	return c
}

// addVW adds the single word y to x, propagating carry through z.
func addVW(z, x []uint64, y uint64) (c uint64) {
	c = y
	for i := range z {
		z[i], c = bits.Add64(x[i], c, 0)
	}
	return c
}

// mulAddVWW computes z = x*m + a limb-wise, returning the carry out.
// Both MulSmall and the chunked digit loading in FromBytes reduce to it.
func mulAddVWW(z, x []uint64, m, a uint64) (c uint64) {
	c = a
	for i, xi := range x {
		hi, lo := bits.Mul64(xi, m)
		var cc uint64
		lo, cc = bits.Add64(lo, c, 0)
		hi += cc
		z[i] = lo
		c = hi
	}
	return c
}

// shlVU shifts x left by s bits (0 < s < 64): each limb's vacated low
// bits fill from the limb below it. Returns the bits shifted out of the
// top limb. Iterates high to low so z may overlap x at a higher offset.
func shlVU(z, x []uint64, s uint) (c uint64) {
	if s == 0 {
		copy(z, x)
		return 0
	}
	if len(x) == 0 {
		return 0
	}
	c = x[len(x)-1] >> (64 - s)
	for i := len(x) - 1; i > 0; i-- {
		z[i] = x[i]<<s | x[i-1]>>(64-s)
	}
	z[0] = x[0] << s
	return c
}

// cmpVV compares x and y as equal-length magnitude slices, most significant
// limb first conceptually (both slices little-endian): -1, 0, 1.
func cmpVV(x, y []uint64) int {
	for i := len(x) - 1; i >= 0; i-- {
		if x[i] != y[i] {
			if x[i] < y[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}
