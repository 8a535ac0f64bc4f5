package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"sociopedia/internal/service"
	"sociopedia/internal/storage"
)

// PostHandler mantiene dependencias para endpoints de publicaciones.
type PostHandler struct {
	logger   *zap.Logger
	postServ *service.PostService
	images   storage.ImageStore
}

// NewPostHandler crea una instancia de PostHandler con dependencias necesarias.
func NewPostHandler(logger *zap.Logger, postServ *service.PostService, images storage.ImageStore) *PostHandler {
	return &PostHandler{
		logger:   logger,
		postServ: postServ,
		images:   images,
	}
}

// CreatePost maneja POST /posts.
func (h *PostHandler) CreatePost(c *gin.Context) {
	userID, ok := GetAuthUserID(c)
	if !ok {
		writeError(c, service.ErrUnauthenticated)
		return
	}

	var req struct {
		Description string `json:"description" form:"description"`
		PicturePath string `json:"picturePath" form:"picturePath"`
	}
	if err := c.ShouldBind(&req); err != nil {
		h.logger.Warn("invalid create post request", zap.Error(err))
		writeError(c, bindError(err))
		return
	}

	picturePath, err := savePicture(c, h.images, "picture")
	if err != nil {
		h.logger.Warn("post picture upload failed", zap.Error(err))
		writeError(c, err)
		return
	}
	if picturePath == "" {
		picturePath = req.PicturePath
	}

	post, err := h.postServ.CreatePost(c.Request.Context(), service.CreatePostInput{
		UserID:      userID,
		Description: req.Description,
		PicturePath: picturePath,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

// GetFeedPosts maneja GET /posts.
func (h *PostHandler) GetFeedPosts(c *gin.Context) {
	posts, err := h.postServ.Feed(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// GetUserPosts maneja GET /posts/:userId/posts.
func (h *PostHandler) GetUserPosts(c *gin.Context) {
	posts, err := h.postServ.UserPosts(c.Request.Context(), c.Param("userId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// LikePost maneja PATCH /posts/:id/like.
func (h *PostHandler) LikePost(c *gin.Context) {
	userID, ok := GetAuthUserID(c)
	if !ok {
		writeError(c, service.ErrUnauthenticated)
		return
	}
	post, err := h.postServ.ToggleLike(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}
