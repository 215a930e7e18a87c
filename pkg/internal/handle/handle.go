// Package handle 提供 HTTP 请求处理器：参数绑定、调用 service、错误映射.
package handle

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/yeisme/assetvault/pkg/internal/service"
	alog "github.com/yeisme/assetvault/pkg/log"
	"github.com/yeisme/assetvault/pkg/middleware"
)

// Handlers 聚合所有处理器依赖的服务.
type Handlers struct {
	Auth    *service.AuthService
	Folders *service.FolderService
	Tags    *service.TagService
	Files   *service.FileService
	Health  *service.HealthService
}

// New 创建处理器集合.
func New(auth *service.AuthService, folders *service.FolderService, tags *service.TagService, files *service.FileService, health *service.HealthService) *Handlers {
	return &Handlers{
		Auth:    auth,
		Folders: folders,
		Tags:    tags,
		Files:   files,
		Health:  health,
	}
}

// currentUser 取认证中间件写入的用户 ID. 没有就是路由配置错误.
func currentUser(c *gin.Context) (uint, bool) {
	id, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"code":    "UNAUTHORIZED",
			"message": "authentication required",
		})
	}

	return id, ok
}

// pathID 解析路径参数为 uint.
func pathID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    "VALIDATION_FAILED",
			"message": "invalid " + name + " parameter",
		})

		return 0, false
	}

	return uint(id), true
}

// fail 把错误映射为 HTTP 响应. 业务错误带自己的状态码，
// 校验错误是 400，其余一律 500 且不暴露细节.
func fail(c *gin.Context, err error) {
	var se *service.Error
	if errors.As(err, &se) {
		c.JSON(se.Status, gin.H{"code": se.Code, "message": se.Message})

		return
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, gin.H{"code": "VALIDATION_FAILED", "message": ve.Error()})

		return
	}

	alog.Logger().Error().Err(err).Str("path", c.Request.URL.Path).Msg("请求处理失败")

	ie := service.NewInternal()
	c.JSON(ie.Status, gin.H{"code": ie.Code, "message": ie.Message})
}

// bindJSON 绑定并校验 JSON 请求体，失败时直接响应 400.
func bindJSON(c *gin.Context, out any) bool {
	if err := c.ShouldBindJSON(out); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    "VALIDATION_FAILED",
			"message": err.Error(),
		})

		return false
	}

	return true
}
