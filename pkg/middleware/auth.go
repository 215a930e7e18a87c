// Package middleware 提供 gin 中间件：认证、日志、CORS、请求 ID 和监控.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/assetvault/pkg/token"
)

// gin context 中保存当前用户信息的键.
const (
	CtxUserID = "auth_user_id"
	CtxEmail  = "auth_email"
	CtxRole   = "auth_role"
)

// AuthMiddleware 校验 Authorization: Bearer <token> 并把用户信息放进 context.
// 缺失、格式错误、签名无效或过期的令牌一律 401.
func AuthMiddleware(tokens *token.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")

		scheme, raw, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(raw) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    "UNAUTHORIZED",
				"message": "missing or malformed authorization header",
			})

			return
		}

		claims, err := tokens.Parse(strings.TrimSpace(raw))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    "UNAUTHORIZED",
				"message": "invalid or expired token",
			})

			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxEmail, claims.Email)
		c.Set(CtxRole, claims.Role)

		c.Next()
	}
}

// UserID 从 gin context 取当前用户 ID. 只在认证中间件之后的处理器里有效.
func UserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(CtxUserID)
	if !ok {
		return 0, false
	}

	id, ok := v.(uint)

	return id, ok
}
