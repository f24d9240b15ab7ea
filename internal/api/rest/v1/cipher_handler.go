package v1

import (
	"bytes"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/helix-rsa/helix/internal/domain/keys"

	"github.com/gin-gonic/gin"
)

// EncryptedFileExtension is appended to the names of encrypted uploads
const EncryptedFileExtension = ".enc"

// VersionHeader reports the format version read from a decrypted stream
const VersionHeader = "X-Helix-Version"

// CipherHandler defines the interface for encrypting and decrypting uploads
type CipherHandler interface {
	Encrypt(ctx *gin.Context)
	Decrypt(ctx *gin.Context)
}

type cipherHandler struct {
	fileCipherService keys.FileCipherService
}

// NewCipherHandler creates a new CipherHandler
func NewCipherHandler(fileCipherService keys.FileCipherService) CipherHandler {
	return &cipherHandler{fileCipherService: fileCipherService}
}

type cipherForm struct {
	keyID    string
	password string
	fileName string
	content  *bytes.Reader
}

func readCipherForm(ctx *gin.Context) (*cipherForm, error) {
	keyID := ctx.PostForm("key_id")
	if keyID == "" {
		return nil, fmt.Errorf("key_id is required")
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return nil, fmt.Errorf("file is required: %w", err)
	}
	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer file.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(file); err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}

	return &cipherForm{
		keyID:    keyID,
		password: ctx.PostForm("password"),
		fileName: filepath.Base(fileHeader.Filename),
		content:  bytes.NewReader(buf.Bytes()),
	}, nil
}

// Encrypt handles the POST request to encrypt an uploaded file
// @Summary Encrypt a file
// @Description Encrypt the uploaded file with the key registered under key_id.
// @Tags Cipher
// @Accept multipart/form-data
// @Produce application/octet-stream
// @Param file formData file true "File to encrypt"
// @Param key_id formData string true "Key ID"
// @Param password formData string false "Password, required for private keys"
// @Success 200 {file} file "Encrypted file"
// @Failure 400 {object} ErrorResponse
// @Router /encrypt [post]
func (handler *cipherHandler) Encrypt(ctx *gin.Context) {
	form, err := readCipherForm(ctx)
	if err != nil {
		abortWithError(ctx, http.StatusBadRequest, fmt.Sprintf("invalid form data: %v", err))
		return
	}

	var out bytes.Buffer
	if err := handler.fileCipherService.EncryptByID(ctx, form.keyID, form.password, form.content, &out); err != nil {
		abortWithError(ctx, statusFor(err), fmt.Sprintf("error encrypting %s: %v", form.fileName, err))
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s%s", form.fileName, EncryptedFileExtension))
	ctx.Data(http.StatusOK, "application/octet-stream", out.Bytes())
}

// Decrypt handles the POST request to decrypt an uploaded file
// @Summary Decrypt a file
// @Description Decrypt the uploaded file with the key registered under key_id.
// @Tags Cipher
// @Accept multipart/form-data
// @Produce application/octet-stream
// @Param file formData file true "File to decrypt"
// @Param key_id formData string true "Key ID"
// @Param password formData string false "Password, required for private keys"
// @Success 200 {file} file "Decrypted file"
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /decrypt [post]
func (handler *cipherHandler) Decrypt(ctx *gin.Context) {
	form, err := readCipherForm(ctx)
	if err != nil {
		abortWithError(ctx, http.StatusBadRequest, fmt.Sprintf("invalid form data: %v", err))
		return
	}

	var out bytes.Buffer
	version, err := handler.fileCipherService.DecryptByID(ctx, form.keyID, form.password, form.content, &out)
	if err != nil {
		abortWithError(ctx, statusFor(err), fmt.Sprintf("error decrypting %s: %v", form.fileName, err))
		return
	}

	ctx.Header(VersionHeader, version.String())
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", strings.TrimSuffix(form.fileName, EncryptedFileExtension)))
	ctx.Data(http.StatusOK, "application/octet-stream", out.Bytes())
}
