package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/assetvault/pkg/internal/handle"
	"github.com/yeisme/assetvault/pkg/middleware"
	"github.com/yeisme/assetvault/pkg/token"
)

func registerTags(engine *gin.Engine, h *handle.Handlers, tokens *token.Manager) {
	tags := engine.Group("/tags", middleware.AuthMiddleware(tokens))

	tags.POST("", h.CreateTag)
	tags.GET("", h.ListTags)
	tags.GET("/:id", h.GetTag)
	tags.DELETE("/:id", h.DeleteTag)
}
