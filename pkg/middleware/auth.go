package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/wyfcoding/defaultmanagement/pkg/auth"
	"github.com/wyfcoding/defaultmanagement/pkg/response"
)

// AuthUsernameKey gin context key for the authenticated username
const AuthUsernameKey = "auth_username"

// AuthRoleKey gin context key for the authenticated role
const AuthRoleKey = "auth_role"

// JWTAuthMiddleware 校验 Bearer 令牌并将调用方身份写入请求上下文
func JWTAuthMiddleware(tm *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				response.New(http.StatusUnauthorized, "missing or malformed authorization header", nil))
			return
		}

		claims, err := tm.Parse(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				response.New(http.StatusUnauthorized, "invalid or expired token", nil))
			return
		}

		c.Set(AuthUsernameKey, claims.Username)
		c.Set(AuthRoleKey, claims.Role)
		c.Next()
	}
}

// RequireRoles 仅允许指定角色访问
func RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		role := c.GetString(AuthRoleKey)
		if _, ok := allowed[role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden,
				response.New(http.StatusForbidden, "no permission for this operation", nil))
			return
		}
		c.Next()
	}
}
