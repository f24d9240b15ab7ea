package v1

import (
	"errors"
	"net/http"

	"github.com/helix-rsa/helix/internal/domain/crypto"
	"github.com/helix-rsa/helix/internal/domain/keys"
	"github.com/helix-rsa/helix/internal/pkg/bignum"

	"github.com/gin-gonic/gin"
)

// statusFor maps service errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, keys.ErrKeyNotFound):
		return http.StatusNotFound
	case errors.Is(err, crypto.ErrKeyTypeMismatch):
		return http.StatusForbidden
	case errors.Is(err, crypto.ErrPasswordRequired),
		errors.Is(err, crypto.ErrModulusTooSmall),
		errors.Is(err, crypto.ErrInvalidKey),
		errors.Is(err, bignum.ErrShortRead),
		errors.Is(err, bignum.ErrMalformedBlock):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(ctx *gin.Context, status int, message string) {
	ctx.AbortWithStatusJSON(status, ErrorResponse{Message: message})
}
