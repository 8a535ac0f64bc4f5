package http

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RouterConfig agrupa las opciones de transporte del router.
type RouterConfig struct {
	CORSAllowedOrigins []string
	MaxBodyBytes       int64
	AssetsDir          string
	ClientBuildDir     string
}

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(
	logger *zap.Logger,
	cfg RouterConfig,
	pinger Pinger,
	tokens TokenVerifier,
	authH *AuthHandler,
	userH *UserHandler,
	postH *PostHandler,
) *gin.Engine {
	r := gin.New()

	r.Use(
		gin.Recovery(),
		requestIDMiddleware(),
		zapLoggerMiddleware(logger),
		securityHeadersMiddleware(),
		corsMiddleware(cfg.CORSAllowedOrigins),
		bodySizeLimitMiddleware(cfg.MaxBodyBytes),
	)

	r.GET("/", welcomeHandler)
	r.GET("/healthz", healthHandler(pinger))
	if cfg.AssetsDir != "" {
		r.Static("/assets", cfg.AssetsDir)
	}

	requireAuth := AuthMiddleware(logger, tokens)

	auth := r.Group("/auth", jsonContentTypeMiddleware())
	auth.POST("/register", authH.Register)
	auth.POST("/login", authH.Login)
	auth.POST("/logout", authH.Logout)

	users := r.Group("/users", jsonContentTypeMiddleware(), requireAuth)
	users.GET("/:id", userH.GetUser)
	users.GET("/:id/friends", userH.GetUserFriends)
	users.PATCH("/:id/:friendId", userH.AddRemoveFriend)

	posts := r.Group("/posts", jsonContentTypeMiddleware(), requireAuth)
	posts.POST("", postH.CreatePost)
	posts.GET("", postH.GetFeedPosts)
	posts.GET("/:userId/posts", postH.GetUserPosts)
	posts.PATCH("/:id/like", postH.LikePost)

	r.NoRoute(spaHandler(cfg.ClientBuildDir))

	return r
}
