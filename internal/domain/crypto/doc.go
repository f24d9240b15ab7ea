// Package crypto defines the RSA key model, the file format version record and
// the interfaces implemented by the key generation, file cipher and key file
// components.
package crypto
