// Package numtheory provides the number-theoretic primitives RSA is built
// from: modular exponentiation, the extended Euclidean algorithm, modular
// inverses and Miller-Rabin primality testing over bignum.Nat values.
package numtheory
