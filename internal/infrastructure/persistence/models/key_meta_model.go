package models

import (
	"time"

	"github.com/helix-rsa/helix/internal/domain/keys"
)

// KeyMetaModel is the GORM database model for key metadata (infrastructure concern)
type KeyMetaModel struct {
	ID              string    `gorm:"primaryKey;type:varchar(36)"`
	KeyPairID       string    `gorm:"not null;index;type:varchar(36)"`
	Type            string    `gorm:"not null;type:varchar(10)"`
	BitLength       int       `gorm:"not null;index"`
	Version         string    `gorm:"not null;type:varchar(32)"`
	FilePath        string    `gorm:"not null"`
	DateTimeCreated time.Time `gorm:"not null;index"`
}

// TableName specifies the table name for GORM
func (KeyMetaModel) TableName() string {
	return "rsa_keys"
}

// ToDomain converts GORM model to domain entity
func (m *KeyMetaModel) ToDomain() *keys.KeyMeta {
	return &keys.KeyMeta{
		ID:              m.ID,
		KeyPairID:       m.KeyPairID,
		Type:            m.Type,
		BitLength:       m.BitLength,
		Version:         m.Version,
		FilePath:        m.FilePath,
		DateTimeCreated: m.DateTimeCreated,
	}
}

// FromDomain converts domain entity to GORM model
func (m *KeyMetaModel) FromDomain(k *keys.KeyMeta) {
	m.ID = k.ID
	m.KeyPairID = k.KeyPairID
	m.Type = k.Type
	m.BitLength = k.BitLength
	m.Version = k.Version
	m.FilePath = k.FilePath
	m.DateTimeCreated = k.DateTimeCreated
}
