package http

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger verifica la conectividad del store.
type Pinger interface {
	Ping(ctx context.Context) error
}

func welcomeHandler(c *gin.Context) {
	c.String(http.StatusOK, "Welcome.!")
}

func healthHandler(pinger Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if pinger != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := pinger.Ping(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, errorBody("database unavailable"))
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// spaHandler sirve archivos del build del cliente y cae en index.html.
func spaHandler(buildDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if buildDir == "" || (c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead) {
			c.JSON(http.StatusNotFound, errorBody("not found"))
			return
		}
		path := filepath.Join(buildDir, filepath.Clean("/"+c.Request.URL.Path))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			c.File(path)
			return
		}
		index := filepath.Join(buildDir, "index.html")
		if _, err := os.Stat(index); err != nil {
			c.JSON(http.StatusNotFound, errorBody("not found"))
			return
		}
		c.File(index)
	}
}
