//go:build unit
// +build unit

package v1

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/helix-rsa/helix/internal/domain/crypto"
	"github.com/helix-rsa/helix/internal/domain/keys"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const (
	testKeyID     = "0b3c5f56-0f4e-4c7e-9d0a-6d2a1b3c4d5e"
	testKeyPairID = "9a8b7c6d-5e4f-4a3b-8c2d-1e0f9a8b7c6d"
)

type keyHandlerMocks struct {
	generation *MockKeyGenerationService
	download   *MockKeyDownloadService
	metadata   *MockKeyMetadataService
}

func setupKeyHandler() (KeyHandler, *keyHandlerMocks) {
	mocks := &keyHandlerMocks{
		generation: new(MockKeyGenerationService),
		download:   new(MockKeyDownloadService),
		metadata:   new(MockKeyMetadataService),
	}
	return NewKeyHandler(mocks.generation, mocks.download, mocks.metadata), mocks
}

func testKeyMeta(id, keyType string) *keys.KeyMeta {
	return &keys.KeyMeta{
		ID:              id,
		KeyPairID:       testKeyPairID,
		Type:            keyType,
		BitLength:       2048,
		Version:         "0.1.0",
		FilePath:        "/var/lib/helix/keys/" + testKeyPairID,
		DateTimeCreated: time.Now(),
	}
}

func newTestContext(method, url string, body *bytes.Buffer) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	if body == nil {
		body = &bytes.Buffer{}
	}
	req, _ := http.NewRequest(method, url, body)
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	return c, w
}

func TestKeyHandler_GenerateKeys_Success(t *testing.T) {
	handler, mocks := setupKeyHandler()

	mocks.generation.
		On("Generate", mock.Anything, &keys.GenerateRequest{BitLength: 2048, Password: "secret"}).
		Return([]*keys.KeyMeta{testKeyMeta(testKeyID, "public"), testKeyMeta("second", "private")}, nil)

	c, w := newTestContext("POST", "/keys", bytes.NewBufferString(`{"bit_length": 2048, "password": "secret"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.GenerateKeys(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), testKeyID)
	assert.Contains(t, w.Body.String(), `"key_pair_id":"`+testKeyPairID+`"`)
	assert.NotContains(t, w.Body.String(), "/var/lib/helix", "file paths must not leak")
	mocks.generation.AssertExpectations(t)
}

func TestKeyHandler_GenerateKeys_BadRequest(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"bit_length": `},
		{"missing password", `{"bit_length": 2048}`},
		{"odd bit length", `{"bit_length": 2047, "password": "secret"}`},
		{"bit length too small", `{"bit_length": 64, "password": "secret"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, mocks := setupKeyHandler()

			c, w := newTestContext("POST", "/keys", bytes.NewBufferString(tt.body))
			c.Request.Header.Set("Content-Type", "application/json")

			handler.GenerateKeys(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			mocks.generation.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
		})
	}
}

func TestKeyHandler_GenerateKeys_ServiceError(t *testing.T) {
	handler, mocks := setupKeyHandler()

	mocks.generation.On("Generate", mock.Anything, mock.Anything).Return(nil, errors.New("disk full"))

	c, w := newTestContext("POST", "/keys", bytes.NewBufferString(`{"bit_length": 2048, "password": "secret"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.GenerateKeys(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "disk full")
}

func TestKeyHandler_ListMetadata_Success(t *testing.T) {
	handler, mocks := setupKeyHandler()

	mocks.metadata.
		On("List", mock.Anything, mock.MatchedBy(func(q *keys.KeyMetaQuery) bool {
			return q.Type == "public" && q.Limit == 5 && q.SortBy == "date_time_created" && q.SortOrder == "desc"
		})).
		Return([]*keys.KeyMeta{testKeyMeta(testKeyID, "public")}, nil)

	c, w := newTestContext("GET", "/keys?type=public&limit=5", nil)

	handler.ListMetadata(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), testKeyID)
	mocks.metadata.AssertExpectations(t)
}

func TestKeyHandler_ListMetadata_Empty(t *testing.T) {
	handler, mocks := setupKeyHandler()
	mocks.metadata.On("List", mock.Anything, mock.Anything).Return([]*keys.KeyMeta{}, nil)

	c, w := newTestContext("GET", "/keys", nil)
	handler.ListMetadata(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestKeyHandler_ListMetadata_ValidationError(t *testing.T) {
	tests := []string{
		"/keys?sortOrder=invalid",
		"/keys?type=symmetric",
		"/keys?limit=abc",
		"/keys?dateTimeCreated=yesterday",
	}

	for _, url := range tests {
		t.Run(url, func(t *testing.T) {
			handler, mocks := setupKeyHandler()

			c, w := newTestContext("GET", url, nil)
			handler.ListMetadata(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			mocks.metadata.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
		})
	}
}

func TestKeyHandler_GetMetadataByID(t *testing.T) {
	tests := []struct {
		name     string
		meta     *keys.KeyMeta
		err      error
		expected int
	}{
		{"found", testKeyMeta(testKeyID, "private"), nil, http.StatusOK},
		{"not found", nil, fmt.Errorf("lookup: %w", keys.ErrKeyNotFound), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, mocks := setupKeyHandler()
			mocks.metadata.On("GetByID", mock.Anything, testKeyID).Return(tt.meta, tt.err)

			c, w := newTestContext("GET", "/keys/"+testKeyID, nil)
			c.Params = gin.Params{gin.Param{Key: "id", Value: testKeyID}}

			handler.GetMetadataByID(c)

			assert.Equal(t, tt.expected, w.Code)
			assert.Contains(t, w.Body.String(), testKeyID)
			mocks.metadata.AssertExpectations(t)
		})
	}
}

func TestKeyHandler_DownloadByID_Success(t *testing.T) {
	handler, mocks := setupKeyHandler()

	keyContent := []byte{0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0}
	mocks.download.On("DownloadByID", mock.Anything, testKeyID).Return(keyContent, nil)

	c, w := newTestContext("GET", "/keys/"+testKeyID+"/file", nil)
	c.Params = gin.Params{gin.Param{Key: "id", Value: testKeyID}}

	handler.DownloadByID(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/octet-stream", w.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename="+testKeyID+crypto.PublicKeyExtension, w.Header().Get("Content-Disposition"))
	assert.Equal(t, keyContent, w.Body.Bytes())
	mocks.download.AssertExpectations(t)
}

func TestKeyHandler_DownloadByID_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"private key", fmt.Errorf("%w: key is private", crypto.ErrKeyTypeMismatch), http.StatusForbidden},
		{"not found", keys.ErrKeyNotFound, http.StatusNotFound},
		{"io failure", errors.New("read failed"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, mocks := setupKeyHandler()
			mocks.download.On("DownloadByID", mock.Anything, testKeyID).Return(nil, tt.err)

			c, w := newTestContext("GET", "/keys/"+testKeyID+"/file", nil)
			c.Params = gin.Params{gin.Param{Key: "id", Value: testKeyID}}

			handler.DownloadByID(c)

			assert.Equal(t, tt.expected, w.Code)
			mocks.download.AssertExpectations(t)
		})
	}
}

func TestKeyHandler_DeleteByID(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"deleted", nil, http.StatusNoContent},
		{"not found", keys.ErrKeyNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, mocks := setupKeyHandler()
			mocks.metadata.On("DeleteByID", mock.Anything, testKeyID).Return(tt.err)

			c, w := newTestContext("DELETE", "/keys/"+testKeyID, nil)
			c.Params = gin.Params{gin.Param{Key: "id", Value: testKeyID}}

			handler.DeleteByID(c)

			assert.Equal(t, tt.expected, w.Code)
			mocks.metadata.AssertExpectations(t)
		})
	}
}
