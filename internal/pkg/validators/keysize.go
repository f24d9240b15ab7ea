package validators

import (
	"reflect"

	"github.com/go-playground/validator/v10"
)

// RSABitLengthTag is the struct tag name registered by Register
const RSABitLengthTag = "rsa_bitlength"

// Bounds for the requested RSA modulus size in bits
const (
	MinRSABitLength = 128
	MaxRSABitLength = 1000000
)

// ValidRSABitLength reports whether bits is an even value within the supported range.
func ValidRSABitLength(bits int64) bool {
	return bits >= MinRSABitLength && bits <= MaxRSABitLength && bits%2 == 0
}

// RSABitLengthValidation validates an integer field holding a requested RSA bit length.
func RSABitLengthValidation(fl validator.FieldLevel) bool {
	field := fl.Field()
	switch field.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return ValidRSABitLength(field.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if field.Uint() > MaxRSABitLength {
			return false
		}
		return ValidRSABitLength(int64(field.Uint()))
	default:
		return false
	}
}

// New returns a validator with every custom tag of this package registered.
func New() *validator.Validate {
	v := validator.New()
	// Registration only fails for an empty tag or a nil function.
	_ = v.RegisterValidation(RSABitLengthTag, RSABitLengthValidation)
	return v
}
