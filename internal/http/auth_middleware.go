package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"sociopedia/internal/service"
)

const (
	authUserIDKey     = "auth_user_id"
	sessionCookieName = "jwt"
)

// TokenVerifier valida un token de sesión y devuelve su subject.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// AuthMiddleware valida el token de sesión (cookie jwt o Bearer) y guarda el
// subject en el contexto. Si falla, responde 401 y no continúa la cadena.
func AuthMiddleware(logger *zap.Logger, tokens TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokens == nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, errorBody("jwt not configured"))
			return
		}

		token := extractToken(c)
		if token == "" {
			logger.Debug("auth rejected", zap.String("reason", "missing token"), zap.String("path", c.Request.URL.Path))
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody("unauthenticated"))
			return
		}

		subject, err := tokens.Verify(token)
		if err != nil {
			logger.Debug("auth rejected", zap.String("reason", authFailureReason(err)), zap.String("path", c.Request.URL.Path))
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody("unauthenticated"))
			return
		}

		c.Set(authUserIDKey, subject)
		c.Request = c.Request.WithContext(service.ContextWithUserID(c.Request.Context(), subject))
		c.Next()
	}
}

// GetAuthUserID obtiene el subject autenticado desde el contexto.
func GetAuthUserID(c *gin.Context) (string, bool) {
	id := c.GetString(authUserIDKey)
	return id, id != ""
}

func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(sessionCookieName); err == nil && strings.TrimSpace(cookie) != "" {
		return strings.TrimSpace(cookie)
	}
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if len(header) > len("Bearer ") && strings.EqualFold(header[:len("Bearer ")], "bearer ") {
		return strings.TrimSpace(header[len("Bearer "):])
	}
	return ""
}

func authFailureReason(err error) string {
	switch {
	case errors.Is(err, service.ErrTokenExpired):
		return "expired"
	case errors.Is(err, service.ErrTokenSignature):
		return "invalid signature"
	case errors.Is(err, service.ErrTokenMalformed):
		return "malformed"
	default:
		return "unknown"
	}
}
