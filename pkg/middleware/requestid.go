package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader 请求 ID 的响应头.
const RequestIDHeader = "X-Request-ID"

// CtxRequestID gin context 中请求 ID 的键.
const CtxRequestID = "request_id"

// RequestIDMiddleware 为每个请求分配 UUID，客户端可传入自己的 ID 用于链路追踪.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(CtxRequestID, id)
		c.Writer.Header().Set(RequestIDHeader, id)

		c.Next()
	}
}
