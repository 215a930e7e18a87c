package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/assetvault/pkg/internal/types"
)

// CreateTag 创建标签.
func (h *Handlers) CreateTag(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req types.CreateTagRequest
	if !bindJSON(c, &req) {
		return
	}

	tag, err := h.Tags.Create(c.Request.Context(), userID, &req)
	if err != nil {
		fail(c, err)

		return
	}

	c.JSON(http.StatusCreated, tag)
}

// ListTags 列出当前用户的标签.
func (h *Handlers) ListTags(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	tags, err := h.Tags.List(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)

		return
	}

	c.JSON(http.StatusOK, tags)
}

// GetTag 取标签详情.
func (h *Handlers) GetTag(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	tagID, ok := pathID(c, "id")
	if !ok {
		return
	}

	tag, err := h.Tags.Get(c.Request.Context(), userID, tagID)
	if err != nil {
		fail(c, err)

		return
	}

	c.JSON(http.StatusOK, tag)
}

// DeleteTag 删除标签.
func (h *Handlers) DeleteTag(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	tagID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.Tags.Delete(c.Request.Context(), userID, tagID); err != nil {
		fail(c, err)

		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
