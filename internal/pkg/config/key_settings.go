package config

import (
	"fmt"

	"github.com/helix-rsa/helix/internal/pkg/validators"
)

// KeySettings controls where key files are written and the default key size
type KeySettings struct {
	Directory        string `mapstructure:"directory" validate:"required"`
	DefaultBitLength int    `mapstructure:"default_bit_length" validate:"rsa_bitlength"`
}

// Validate checks that all fields in KeySettings are valid
func (s *KeySettings) Validate() error {
	if err := validators.New().Struct(s); err != nil {
		return fmt.Errorf("validation failed for KeySettings: %w", err)
	}
	return nil
}
