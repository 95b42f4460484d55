package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	a "github.com/RamCupido/ClaReSys-Project/pkg/auth"
)

// RequireAuth validates the bearer token and exposes the caller's identity
// to handlers via "sub" and "role".
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		tok := strings.TrimPrefix(h, "Bearer ")
		claims, err := a.ParseValidate(tok)
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Set("sub", claims.Sub)
		c.Set("role", claims.Role)
		c.Next()
	}
}
