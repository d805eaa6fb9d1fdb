package middleware

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

// CORS mirrors the headers the frontend expects; the allowed origin comes
// from FRONTEND_URL and defaults to any origin.
func CORS() gin.HandlerFunc {
	origin := os.Getenv("FRONTEND_URL")
	if origin == "" {
		origin = "*"
	}
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Access-Control-Allow-Headers", "Content-Type,Authorization,X-Requested-With")
		c.Header("Access-Control-Allow-Methods", "GET,PUT,POST,DELETE,OPTIONS,PATCH")
		c.Header("Access-Control-Allow-Credentials", "true")

		if c.Request.Method == http.MethodOptions {
			c.JSON(http.StatusOK, gin.H{"message": "OK"})
			c.Abort()
			return
		}
		c.Next()
	}
}
