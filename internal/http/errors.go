package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"sociopedia/internal/service"
	"sociopedia/internal/storage"
)

func errorBody(message string) gin.H {
	return gin.H{"status": "error", "message": message}
}

// statusForError traduce la taxonomía de errores a status y mensaje genérico.
func statusForError(err error) (int, string) {
	var maxBytesErr *http.MaxBytesError
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest, "ensure you fill all the inputs correctly"
	case errors.Is(err, service.ErrDuplicateEmail):
		return http.StatusConflict, "email already registered"
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusBadRequest, "invalid credentials"
	case errors.Is(err, service.ErrUnauthenticated):
		return http.StatusUnauthorized, "unauthenticated"
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden, "forbidden"
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, service.ErrRateLimited):
		return http.StatusTooManyRequests, "too many requests"
	case errors.Is(err, service.ErrStoreUnavailable):
		return http.StatusServiceUnavailable, "service unavailable"
	case errors.Is(err, storage.ErrUnsupportedMedia):
		return http.StatusUnsupportedMediaType, "picture must be an image"
	case errors.As(err, &maxBytesErr):
		return http.StatusRequestEntityTooLarge, "request too large"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

func writeError(c *gin.Context, err error) {
	status, message := statusForError(err)
	c.JSON(status, errorBody(message))
}

// bindError conserva el error de límite de tamaño; el resto es input inválido.
func bindError(err error) error {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return err
	}
	return service.ErrInvalidInput
}
