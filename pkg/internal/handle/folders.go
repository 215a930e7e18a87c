package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/assetvault/pkg/internal/types"
)

// CreateFolder 创建文件夹.
func (h *Handlers) CreateFolder(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req types.CreateFolderRequest
	if !bindJSON(c, &req) {
		return
	}

	folder, err := h.Folders.Create(c.Request.Context(), userID, &req)
	if err != nil {
		fail(c, err)

		return
	}

	c.JSON(http.StatusCreated, folder)
}

// ListFolders 列出当前用户的文件夹.
func (h *Handlers) ListFolders(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	folders, err := h.Folders.List(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)

		return
	}

	c.JSON(http.StatusOK, folders)
}

// GetFolder 取文件夹详情.
func (h *Handlers) GetFolder(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	folderID, ok := pathID(c, "id")
	if !ok {
		return
	}

	folder, err := h.Folders.Get(c.Request.Context(), userID, folderID)
	if err != nil {
		fail(c, err)

		return
	}

	c.JSON(http.StatusOK, folder)
}

// RenameFolder 重命名文件夹.
func (h *Handlers) RenameFolder(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	folderID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req types.RenameFolderRequest
	if !bindJSON(c, &req) {
		return
	}

	folder, err := h.Folders.Rename(c.Request.Context(), userID, folderID, &req)
	if err != nil {
		fail(c, err)

		return
	}

	c.JSON(http.StatusOK, folder)
}

// MoveFileToFolder 把文件移入文件夹，返回带文件夹信息的文件.
func (h *Handlers) MoveFileToFolder(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	folderID, ok := pathID(c, "id")
	if !ok {
		return
	}

	fileID, ok := pathID(c, "fileId")
	if !ok {
		return
	}

	file, err := h.Files.MoveToFolder(c.Request.Context(), userID, folderID, fileID)
	if err != nil {
		fail(c, err)

		return
	}

	c.JSON(http.StatusOK, file)
}

// DeleteFolder 删除文件夹，其中的文件移出文件夹.
func (h *Handlers) DeleteFolder(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	folderID, ok := pathID(c, "id")
	if !ok {
		return
	}

	resp, err := h.Folders.Delete(c.Request.Context(), userID, folderID)
	if err != nil {
		fail(c, err)

		return
	}

	c.JSON(http.StatusOK, resp)
}
