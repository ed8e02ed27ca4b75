package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"go-shop-api/internal/core/auth"
	resp "go-shop-api/internal/transport/http/response"
)

const (
	KeyUserID  = "userId"
	KeyIsAdmin = "isAdmin"
)

// AuthJWT 解析 Bearer token，写入 userId / isAdmin
func AuthJWT(j *auth.JWTer, requireAdmin bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, resp.Error(resp.CodeUnauthorized, "missing token"))
			return
		}
		claims, err := j.Parse(strings.TrimPrefix(h, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, resp.Error(resp.CodeUnauthorized, "invalid token"))
			return
		}
		if requireAdmin && !claims.Admin {
			c.AbortWithStatusJSON(http.StatusForbidden, resp.Error(resp.CodeForbidden, "admin only"))
			return
		}
		c.Set(KeyUserID, claims.UserID())
		c.Set(KeyIsAdmin, claims.Admin)
		c.Next()
	}
}
