// Package api 组装 HTTP 接口：创建服务、处理器并注册路由.
package api

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/assetvault/pkg/configs"
	"github.com/yeisme/assetvault/pkg/internal/handle"
	"github.com/yeisme/assetvault/pkg/internal/router"
	"github.com/yeisme/assetvault/pkg/internal/service"
	"github.com/yeisme/assetvault/pkg/internal/storage"
	"github.com/yeisme/assetvault/pkg/token"
)

// RegisterRoutes 基于存储管理器构建全部服务并把路由挂到引擎上.
func RegisterRoutes(engine *gin.Engine, mgr *storage.Manager, cfg *configs.AppConfig, tokens *token.Manager) *handle.Handlers {
	db := mgr.GetDBClient().GetDB()

	auth := service.NewAuthService(db, mgr.GetMQClient(), tokens, cfg.Auth.BcryptCost)
	folders := service.NewFolderService(db)
	tags := service.NewTagService(db)
	files := service.NewFileService(db, mgr.GetBlobStore(), mgr.GetMQClient(), cfg.Upload.MaxBytes)
	health := service.NewHealthService(db, mgr.GetBlobStore())

	h := handle.New(auth, folders, tags, files, health)

	router.Register(engine, h, tokens)

	return h
}
