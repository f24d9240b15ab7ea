package testutil

import (
	"bytes"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/require"
)

// MultipartFile is one file part of a multipart test request
type MultipartFile struct {
	Field    string
	FileName string
	Content  []byte
}

// CreateMultipartBody encodes form fields and files as a multipart body and
// returns it together with its Content-Type header value
func CreateMultipartBody(t *testing.T, fields map[string]string, files ...MultipartFile) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for name, value := range fields {
		require.NoError(t, writer.WriteField(name, value))
	}

	for _, f := range files {
		part, err := writer.CreateFormFile(f.Field, f.FileName)
		require.NoError(t, err)

		_, err = part.Write(f.Content)
		require.NoError(t, err)
	}

	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}
