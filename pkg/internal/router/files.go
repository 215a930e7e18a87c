package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/assetvault/pkg/internal/handle"
	"github.com/yeisme/assetvault/pkg/middleware"
	"github.com/yeisme/assetvault/pkg/token"
)

func registerFiles(engine *gin.Engine, h *handle.Handlers, tokens *token.Manager) {
	files := engine.Group("/files")

	// 公开预览不走认证
	files.GET("/:id/view", h.ViewFile)

	authed := files.Group("", middleware.AuthMiddleware(tokens))

	authed.POST("/upload", h.UploadFile)
	authed.GET("", h.ListFiles)
	authed.GET("/:id", h.GetFile)
	authed.DELETE("/:id", h.DeleteFile)
	authed.GET("/:id/download", h.DownloadFile)
	authed.PATCH("/:id/move", h.MoveFile)
	authed.POST("/:id/tags/:tagId", h.AddFileTag)
	authed.DELETE("/:id/tags/:tagId", h.RemoveFileTag)
}
