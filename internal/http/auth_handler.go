package http

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"sociopedia/internal/service"
	"sociopedia/internal/storage"
)

// CookieConfig describe la cookie de sesión.
type CookieConfig struct {
	MaxAge time.Duration
	Secure bool
}

// AuthHandler mantiene dependencias para los endpoints de autenticación.
type AuthHandler struct {
	logger   *zap.Logger
	authServ *service.AuthService
	images   storage.ImageStore
	cookie   CookieConfig
}

// NewAuthHandler crea una instancia de AuthHandler con dependencias necesarias.
func NewAuthHandler(logger *zap.Logger, authServ *service.AuthService, images storage.ImageStore, cookie CookieConfig) *AuthHandler {
	if cookie.MaxAge <= 0 {
		cookie.MaxAge = service.DefaultTokenTTL
	}
	return &AuthHandler{
		logger:   logger,
		authServ: authServ,
		images:   images,
		cookie:   cookie,
	}
}

// Register maneja POST /auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		FirstName   string `json:"firstName" form:"firstName"`
		LastName    string `json:"lastName" form:"lastName"`
		Email       string `json:"email" form:"email"`
		Password    string `json:"password" form:"password"`
		PicturePath string `json:"picturePath" form:"picturePath"`
		Location    string `json:"location" form:"location"`
		Occupation  string `json:"occupation" form:"occupation"`
	}
	if err := c.ShouldBind(&req); err != nil {
		h.logger.Warn("invalid register request", zap.Error(err))
		writeError(c, bindError(err))
		return
	}

	picturePath, err := savePicture(c, h.images, "picture")
	if err != nil {
		h.logger.Warn("register picture upload failed", zap.Error(err))
		writeError(c, err)
		return
	}
	if picturePath == "" {
		picturePath = req.PicturePath
	}

	res, err := h.authServ.Register(c.Request.Context(), service.RegisterInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Password:    req.Password,
		PicturePath: picturePath,
		Location:    req.Location,
		Occupation:  req.Occupation,
	})
	if err != nil {
		h.logger.Info("register failed", zap.Error(err))
		writeError(c, err)
		return
	}

	h.setSessionCookie(c, res.Token)
	c.JSON(http.StatusOK, gin.H{"user": res.UserID})
}

// Login maneja POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" form:"email"`
		Password string `json:"password" form:"password"`
	}
	if err := c.ShouldBind(&req); err != nil {
		h.logger.Warn("invalid login request", zap.Error(err))
		writeError(c, bindError(err))
		return
	}

	res, err := h.authServ.Login(c.Request.Context(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) || errors.Is(err, service.ErrInvalidInput) {
			h.logger.Debug("login rejected", zap.Error(err))
		} else {
			h.logger.Warn("login failed", zap.Error(err))
		}
		writeError(c, err)
		return
	}

	h.setSessionCookie(c, res.Token)
	c.JSON(http.StatusOK, gin.H{"Email": res.Email, "id": res.UserID})
}

// Logout maneja POST /auth/logout. El token sigue siendo válido hasta expirar.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookieName, "", -1, "/", "", h.cookie.Secure, true)
	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookieName, token, int(h.cookie.MaxAge/time.Second), "/", "", h.cookie.Secure, true)
}

// savePicture guarda el archivo del campo indicado si la request es multipart.
func savePicture(c *gin.Context, images storage.ImageStore, field string) (string, error) {
	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		return "", nil
	}
	header, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", nil
		}
		return "", err
	}
	if images == nil {
		return "", errors.New("image storage not configured")
	}
	return storeUpload(c.Request.Context(), images, header)
}

func storeUpload(ctx context.Context, images storage.ImageStore, header *multipart.FileHeader) (string, error) {
	f, err := header.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()
	return images.Save(ctx, header.Filename, f)
}
