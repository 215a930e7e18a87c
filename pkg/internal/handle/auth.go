package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/assetvault/pkg/internal/types"
)

// Register 注册新用户，返回公开资料. 令牌需要随后登录获取.
func (h *Handlers) Register(c *gin.Context) {
	var req types.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.Auth.Register(c.Request.Context(), &req)
	if err != nil {
		fail(c, err)

		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Login 登录.
func (h *Handlers) Login(c *gin.Context) {
	var req types.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.Auth.Login(c.Request.Context(), &req)
	if err != nil {
		fail(c, err)

		return
	}

	c.JSON(http.StatusOK, resp)
}

// Me 返回当前用户. 每次重新读库，用户被删除时令牌失效.
func (h *Handlers) Me(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	user, err := h.Auth.Resolve(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)

		return
	}

	c.JSON(http.StatusOK, user)
}
