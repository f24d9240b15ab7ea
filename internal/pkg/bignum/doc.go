// Package bignum implements Nat, a non-negative arbitrary-precision integer
// stored as little-endian 16-bit segments.
//
// A Nat is always kept in canonical form: the most significant segment is
// never zero and the value zero has no segments. Value-returning methods
// (Add, Sub, Mul, Div, Mod, Lsh, Rsh, MulMod, ...) allocate a fresh result and
// never alias their operands. Methods ending in Assign, together with
// ShiftRightBy1 and SetBit, update the receiver in place.
//
// Violated preconditions such as subtracting a larger value from a smaller one
// or dividing by zero panic with an *Error that records the operation and the
// source location. Callers at an API boundary convert these panics into
// ordinary errors with
//
//	defer bignum.Recover(&err)
//
// The package also defines the two on-disk encodings built on Nat: the
// length-prefixed segment array used for key material and the framed block
// records used by the file cipher.
package bignum
