package keys

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/helix-rsa/helix/internal/pkg/validators"
)

// ErrKeyNotFound is returned when no key metadata exists for an ID
var ErrKeyNotFound = errors.New("key not found")

// KeyMeta describes one stored key file: either half of a generated pair
type KeyMeta struct {
	ID              string    `validate:"required,uuid4"`
	KeyPairID       string    `validate:"required,uuid4"`
	Type            string    `validate:"required,oneof=public private"`
	BitLength       int       `validate:"rsa_bitlength"`
	Version         string    `validate:"required"`
	FilePath        string    `validate:"required"`
	DateTimeCreated time.Time `validate:"required"`
}

// Validate for validating KeyMeta struct
func (k *KeyMeta) Validate() error {
	return validateStruct(k)
}

// KeyMetaQuery filters, sorts and pages key metadata listings
type KeyMetaQuery struct {
	KeyPairID       string    `validate:"omitempty,uuid4"`
	Type            string    `validate:"omitempty,oneof=public private"`
	BitLength       int       `validate:"omitempty,rsa_bitlength"`
	DateTimeCreated time.Time `validate:"omitempty"`

	Limit  int `validate:"omitempty,gte=0"`
	Offset int `validate:"omitempty,gte=0"`

	SortBy    string `validate:"omitempty,oneof=id type bit_length date_time_created"`
	SortOrder string `validate:"omitempty,oneof=asc desc"`
}

// NewKeyMetaQuery returns a query listing the newest keys first
func NewKeyMetaQuery() *KeyMetaQuery {
	return &KeyMetaQuery{
		SortBy:    "date_time_created",
		SortOrder: "desc",
	}
}

// Validate for validating KeyMetaQuery struct
func (q *KeyMetaQuery) Validate() error {
	return validateStruct(q)
}

func validateStruct(s interface{}) error {
	err := validators.New().Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		var messages []string
		for _, fieldErr := range validationErrors {
			messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
		}
		return fmt.Errorf("validation failed: %v", messages)
	}
	return fmt.Errorf("validation error: %w", err)
}
