//go:build unit
// +build unit

package models

import (
	"testing"
	"time"

	"github.com/helix-rsa/helix/internal/domain/keys"

	"github.com/stretchr/testify/assert"
)

func TestKeyMetaModel_Conversion(t *testing.T) {
	meta := &keys.KeyMeta{
		ID:              "7f9c7d5e-4c3a-4d5e-9a7b-2b1c0d9e8f7a",
		KeyPairID:       "0a1b2c3d-4e5f-4a6b-8c7d-9e0f1a2b3c4d",
		Type:            "private",
		BitLength:       2048,
		Version:         "0.1.0",
		FilePath:        "keys/0a1b2c3d.prv",
		DateTimeCreated: time.Now().UTC(),
	}

	var model KeyMetaModel
	model.FromDomain(meta)
	assert.Equal(t, "rsa_keys", model.TableName())
	assert.Equal(t, meta.FilePath, model.FilePath)
	assert.Equal(t, meta, model.ToDomain())
}
