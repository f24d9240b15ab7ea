//go:build unit
// +build unit

package keys

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func validKeyMeta() KeyMeta {
	return KeyMeta{
		ID:              uuid.NewString(),
		KeyPairID:       uuid.NewString(),
		Type:            "public",
		BitLength:       2048,
		Version:         "0.1.0",
		FilePath:        "keys/pair.pub",
		DateTimeCreated: time.Now(),
	}
}

func TestKeyMetaValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(k *KeyMeta)
		wantErr bool
	}{
		{"valid", func(k *KeyMeta) {}, false},
		{"invalid id", func(k *KeyMeta) { k.ID = "not-a-uuid" }, true},
		{"unknown type", func(k *KeyMeta) { k.Type = "symmetric" }, true},
		{"bit length out of range", func(k *KeyMeta) { k.BitLength = 64 }, true},
		{"missing file path", func(k *KeyMeta) { k.FilePath = "" }, true},
		{"missing creation time", func(k *KeyMeta) { k.DateTimeCreated = time.Time{} }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k := validKeyMeta()
			tt.mutate(&k)
			err := k.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestKeyMetaQueryValidation(t *testing.T) {
	assert.NoError(t, NewKeyMetaQuery().Validate())
	assert.NoError(t, (&KeyMetaQuery{}).Validate())
	assert.NoError(t, (&KeyMetaQuery{Type: "private", BitLength: 1024, Limit: 10}).Validate())

	assert.Error(t, (&KeyMetaQuery{Type: "other"}).Validate())
	assert.Error(t, (&KeyMetaQuery{BitLength: 100}).Validate())
	assert.Error(t, (&KeyMetaQuery{Limit: -1}).Validate())
	assert.Error(t, (&KeyMetaQuery{SortBy: "password"}).Validate())
	assert.Error(t, (&KeyMetaQuery{SortOrder: "sideways"}).Validate())
}

func TestGenerateRequestValidation(t *testing.T) {
	assert.NoError(t, (&GenerateRequest{BitLength: 512, Password: "secret"}).Validate())
	assert.Error(t, (&GenerateRequest{BitLength: 512}).Validate())
	assert.Error(t, (&GenerateRequest{BitLength: 100, Password: "secret"}).Validate())
}
