package crypto

// AlgorithmRSA is the only algorithm handled by this module
const AlgorithmRSA = "RSA"

// KeyTypePrivate represents a private key
const KeyTypePrivate = "private"

// KeyTypePublic represents a public key
const KeyTypePublic = "public"

// PublicKeyExtension is the file extension used for public key files
const PublicKeyExtension = ".pub"

// PrivateKeyExtension is the file extension used for private key files
const PrivateKeyExtension = ".prv"

// MinModulusSegments is the smallest modulus, in 16-bit segments, that can
// carry at least one plaintext segment per block
const MinModulusSegments = 2

// MaxChunkSize caps the plaintext bytes per block so the count fits the
// u16 field of the block header
const MaxChunkSize = 65534
