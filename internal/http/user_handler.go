package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"sociopedia/internal/service"
)

// UserHandler mantiene dependencias para endpoints de usuarios.
type UserHandler struct {
	logger   *zap.Logger
	userServ *service.UserService
}

// NewUserHandler crea una instancia de UserHandler con dependencias necesarias.
func NewUserHandler(logger *zap.Logger, userServ *service.UserService) *UserHandler {
	return &UserHandler{
		logger:   logger,
		userServ: userServ,
	}
}

// GetUser maneja GET /users/:id.
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userServ.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// GetUserFriends maneja GET /users/:id/friends.
func (h *UserHandler) GetUserFriends(c *gin.Context) {
	friends, err := h.userServ.ListFriends(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, friends)
}

// AddRemoveFriend maneja PATCH /users/:id/:friendId.
func (h *UserHandler) AddRemoveFriend(c *gin.Context) {
	actorID, ok := GetAuthUserID(c)
	if !ok {
		writeError(c, service.ErrUnauthenticated)
		return
	}
	friends, err := h.userServ.ToggleFriend(c.Request.Context(), actorID, c.Param("id"), c.Param("friendId"))
	if err != nil {
		h.logger.Debug("toggle friend failed", zap.Error(err))
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, friends)
}
