package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/assetvault/pkg/internal/handle"
	"github.com/yeisme/assetvault/pkg/middleware"
	"github.com/yeisme/assetvault/pkg/token"
)

func registerAuth(engine *gin.Engine, h *handle.Handlers, tokens *token.Manager) {
	auth := engine.Group("/auth")

	auth.POST("/register", h.Register)
	auth.POST("/login", h.Login)

	auth.GET("/me", middleware.AuthMiddleware(tokens), h.Me)
}
