// Package keystore reads and writes RSA key records.
//
// A record is the 12-byte version, a little-endian u32 bit field whose bit 0
// marks a private key, then the exponent and the modulus as length-prefixed
// segment arrays. The exponent and modulus of a private key are XOR-scrambled
// with the password. The scrambling keeps casual readers out; it is not
// encryption and offers no protection against an attacker with the file.
package keystore
