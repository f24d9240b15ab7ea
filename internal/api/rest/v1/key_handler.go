package v1

import (
	"fmt"
	"net/http"

	"github.com/helix-rsa/helix/internal/domain/crypto"
	"github.com/helix-rsa/helix/internal/domain/keys"

	"github.com/gin-gonic/gin"
)

// KeyHandler defines the interface for handling key-related operations
type KeyHandler interface {
	GenerateKeys(ctx *gin.Context)
	ListMetadata(ctx *gin.Context)
	GetMetadataByID(ctx *gin.Context)
	DownloadByID(ctx *gin.Context)
	DeleteByID(ctx *gin.Context)
}

// keyHandler struct holds the services
type keyHandler struct {
	keyGenerationService keys.KeyGenerationService
	keyDownloadService   keys.KeyDownloadService
	keyMetadataService   keys.KeyMetadataService
}

// NewKeyHandler creates a new KeyHandler
func NewKeyHandler(keyGenerationService keys.KeyGenerationService, keyDownloadService keys.KeyDownloadService, keyMetadataService keys.KeyMetadataService) KeyHandler {
	return &keyHandler{
		keyGenerationService: keyGenerationService,
		keyDownloadService:   keyDownloadService,
		keyMetadataService:   keyMetadataService,
	}
}

// GenerateKeys handles the POST request to generate an RSA key pair
// @Summary Generate an RSA key pair
// @Description Generate a key pair of the given bit length. The private key file is scrambled with the password.
// @Tags Key
// @Accept json
// @Produce json
// @Param requestBody body GenerateKeysRequest true "Key pair parameters"
// @Success 201 {array} KeyMetaResponse
// @Failure 400 {object} ErrorResponse
// @Router /keys [post]
func (handler *keyHandler) GenerateKeys(ctx *gin.Context) {
	var request GenerateKeysRequest

	if err := ctx.ShouldBindJSON(&request); err != nil {
		abortWithError(ctx, http.StatusBadRequest, fmt.Sprintf("invalid key data: %v", err))
		return
	}

	if err := request.Validate(); err != nil {
		abortWithError(ctx, http.StatusBadRequest, fmt.Sprintf("validation failed: %v", err))
		return
	}

	keyMetas, err := handler.keyGenerationService.Generate(ctx, request.ToDomain())
	if err != nil {
		abortWithError(ctx, statusFor(err), fmt.Sprintf("error generating keys: %v", err))
		return
	}

	ctx.JSON(http.StatusCreated, newKeyMetaResponses(keyMetas))
}

// ListMetadata handles the GET request to list key metadata with optional query parameters
// @Summary List key metadata based on query parameters
// @Description Fetch key metadata filtered by key pair, type, bit length and creation date, with pagination and sorting options.
// @Tags Key
// @Produce json
// @Param keyPairId query string false "Key Pair ID"
// @Param type query string false "Key Type (public/private)"
// @Param bitLength query int false "Modulus bit length"
// @Param dateTimeCreated query string false "Created after (RFC3339)"
// @Param limit query int false "Limit the number of results"
// @Param offset query int false "Offset the results"
// @Param sortBy query string false "Sort by a specific field"
// @Param sortOrder query string false "Sort order (asc/desc)"
// @Success 200 {array} KeyMetaResponse
// @Failure 400 {object} ErrorResponse
// @Router /keys [get]
func (handler *keyHandler) ListMetadata(ctx *gin.Context) {
	var params ListKeysQuery
	if err := ctx.ShouldBindQuery(&params); err != nil {
		abortWithError(ctx, http.StatusBadRequest, fmt.Sprintf("invalid query: %v", err))
		return
	}

	query := params.ToDomain()
	if err := query.Validate(); err != nil {
		abortWithError(ctx, http.StatusBadRequest, fmt.Sprintf("validation failed: %v", err))
		return
	}

	keyMetas, err := handler.keyMetadataService.List(ctx, query)
	if err != nil {
		abortWithError(ctx, statusFor(err), fmt.Sprintf("list query failed: %v", err))
		return
	}

	ctx.JSON(http.StatusOK, newKeyMetaResponses(keyMetas))
}

// GetMetadataByID handles the GET request to retrieve key metadata by ID
// @Summary Retrieve key metadata by ID
// @Tags Key
// @Produce json
// @Param id path string true "Key ID"
// @Success 200 {object} KeyMetaResponse
// @Failure 404 {object} ErrorResponse
// @Router /keys/{id} [get]
func (handler *keyHandler) GetMetadataByID(ctx *gin.Context) {
	keyID := ctx.Param("id")

	keyMeta, err := handler.keyMetadataService.GetByID(ctx, keyID)
	if err != nil {
		abortWithError(ctx, statusFor(err), fmt.Sprintf("key with id %s not found", keyID))
		return
	}

	ctx.JSON(http.StatusOK, NewKeyMetaResponse(keyMeta))
}

// DownloadByID handles the GET request to download a public key file by ID
// @Summary Download a public key file by ID
// @Description Download the binary key record of a public key. Private keys cannot be downloaded.
// @Tags Key
// @Produce application/octet-stream
// @Param id path string true "Key ID"
// @Success 200 {file} file "Key record"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /keys/{id}/file [get]
func (handler *keyHandler) DownloadByID(ctx *gin.Context) {
	keyID := ctx.Param("id")

	keyBytes, err := handler.keyDownloadService.DownloadByID(ctx, keyID)
	if err != nil {
		abortWithError(ctx, statusFor(err), fmt.Sprintf("could not download key with id %s: %v", keyID, err))
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s%s", keyID, crypto.PublicKeyExtension))
	ctx.Data(http.StatusOK, "application/octet-stream", keyBytes)
}

// DeleteByID handles the DELETE request to delete a key by ID
// @Summary Delete a key by ID
// @Description Delete a key file and its metadata by ID.
// @Tags Key
// @Produce json
// @Param id path string true "Key ID"
// @Success 204 {object} InfoResponse
// @Failure 404 {object} ErrorResponse
// @Router /keys/{id} [delete]
func (handler *keyHandler) DeleteByID(ctx *gin.Context) {
	keyID := ctx.Param("id")

	if err := handler.keyMetadataService.DeleteByID(ctx, keyID); err != nil {
		abortWithError(ctx, statusFor(err), fmt.Sprintf("error deleting key with id %s: %v", keyID, err))
		return
	}

	ctx.JSON(http.StatusNoContent, InfoResponse{Message: fmt.Sprintf("deleted key with id %s", keyID)})
}
