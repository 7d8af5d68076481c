package middleware

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

// CORS wires an rs/cors handler into the gin chain. Allowed origins come
// from CORS_ORIGINS (comma separated); empty means allow all, which suits
// a dashboard served from the same host during development.
func CORS() gin.HandlerFunc {
	opts := cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		opts.AllowedOrigins = strings.Split(origins, ",")
	} else {
		opts.AllowedOrigins = []string{"*"}
	}

	handler := cors.New(opts)
	return func(c *gin.Context) {
		handler.HandlerFunc(c.Writer, c.Request)
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
