package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/assetvault/pkg/internal/handle"
	"github.com/yeisme/assetvault/pkg/middleware"
	"github.com/yeisme/assetvault/pkg/token"
)

func registerFolders(engine *gin.Engine, h *handle.Handlers, tokens *token.Manager) {
	folders := engine.Group("/folders", middleware.AuthMiddleware(tokens))

	folders.POST("", h.CreateFolder)
	folders.GET("", h.ListFolders)
	folders.GET("/:id", h.GetFolder)
	folders.PATCH("/:id", h.RenameFolder)
	folders.DELETE("/:id", h.DeleteFolder)
	folders.PATCH("/:id/move/:fileId", h.MoveFileToFolder)
}
