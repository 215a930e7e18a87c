// Package router 管理路由配置，将路径绑定到 handle 包的处理器.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/assetvault/pkg/internal/handle"
	"github.com/yeisme/assetvault/pkg/token"
)

// Register 注册全部路由.
//
// 公开路由：
//
//	POST /auth/register
//	POST /auth/login
//	GET  /files/:id/view
//	GET  /healthz
//
// 其余路由都在认证中间件之后.
func Register(engine *gin.Engine, h *handle.Handlers, tokens *token.Manager) {
	engine.GET("/healthz", h.Healthz)

	registerAuth(engine, h, tokens)
	registerFiles(engine, h, tokens)
	registerFolders(engine, h, tokens)
	registerTags(engine, h, tokens)
}
