package v1

import (
	"time"

	"github.com/helix-rsa/helix/internal/domain/keys"
)

// GenerateKeysRequest is the body of POST /keys
type GenerateKeysRequest struct {
	BitLength int    `json:"bit_length" binding:"required"`
	Password  string `json:"password" binding:"required"`
}

// ToDomain converts the request into a key generation request
func (r *GenerateKeysRequest) ToDomain() *keys.GenerateRequest {
	return &keys.GenerateRequest{
		BitLength: r.BitLength,
		Password:  r.Password,
	}
}

// Validate checks the request against the key generation rules
func (r *GenerateKeysRequest) Validate() error {
	return r.ToDomain().Validate()
}

// ListKeysQuery carries the query parameters of GET /keys
type ListKeysQuery struct {
	KeyPairID       string    `form:"keyPairId"`
	Type            string    `form:"type"`
	BitLength       int       `form:"bitLength"`
	DateTimeCreated time.Time `form:"dateTimeCreated" time_format:"2006-01-02T15:04:05Z07:00"`
	Limit           int       `form:"limit"`
	Offset          int       `form:"offset"`
	SortBy          string    `form:"sortBy"`
	SortOrder       string    `form:"sortOrder"`
}

// ToDomain converts the parameters into a metadata query, keeping the
// default sort where none was given
func (q *ListKeysQuery) ToDomain() *keys.KeyMetaQuery {
	query := keys.NewKeyMetaQuery()
	query.KeyPairID = q.KeyPairID
	query.Type = q.Type
	query.BitLength = q.BitLength
	query.DateTimeCreated = q.DateTimeCreated
	query.Limit = q.Limit
	query.Offset = q.Offset
	if q.SortBy != "" {
		query.SortBy = q.SortBy
	}
	if q.SortOrder != "" {
		query.SortOrder = q.SortOrder
	}
	return query
}

// KeyMetaResponse is the public view of a stored key. The file path stays server side.
type KeyMetaResponse struct {
	ID              string    `json:"id"`
	KeyPairID       string    `json:"key_pair_id"`
	Type            string    `json:"type"`
	BitLength       int       `json:"bit_length"`
	Version         string    `json:"version"`
	DateTimeCreated time.Time `json:"date_time_created"`
}

// NewKeyMetaResponse maps key metadata to its response
func NewKeyMetaResponse(meta *keys.KeyMeta) KeyMetaResponse {
	return KeyMetaResponse{
		ID:              meta.ID,
		KeyPairID:       meta.KeyPairID,
		Type:            meta.Type,
		BitLength:       meta.BitLength,
		Version:         meta.Version,
		DateTimeCreated: meta.DateTimeCreated,
	}
}

func newKeyMetaResponses(metas []*keys.KeyMeta) []KeyMetaResponse {
	responses := []KeyMetaResponse{}
	for _, meta := range metas {
		responses = append(responses, NewKeyMetaResponse(meta))
	}
	return responses
}

// ErrorResponse carries an error message
type ErrorResponse struct {
	Message string `json:"message"`
}

// InfoResponse carries an informational message
type InfoResponse struct {
	Message string `json:"message"`
}
