package handle

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/assetvault/pkg/internal/model"
	"github.com/yeisme/assetvault/pkg/internal/service"
	"github.com/yeisme/assetvault/pkg/internal/types"
)

// UploadFile 接收 multipart 表单上传（字段名 file，可选 folderId）.
func (h *Handlers) UploadFile(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    "VALIDATION_FAILED",
			"message": "multipart field 'file' is required",
		})

		return
	}

	var folderID *uint

	if raw := c.PostForm("folderId"); raw != "" {
		var id uint
		if _, err := fmt.Sscanf(raw, "%d", &id); err != nil || id == 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"code":    "VALIDATION_FAILED",
				"message": "invalid folderId",
			})

			return
		}

		folderID = &id
	}

	src, err := fileHeader.Open()
	if err != nil {
		fail(c, err)

		return
	}
	defer src.Close()

	file, err := h.Files.Upload(c.Request.Context(), userID, &service.UploadInput{
		Name:     fileHeader.Filename,
		MimeType: fileHeader.Header.Get("Content-Type"),
		Size:     fileHeader.Size,
		Content:  src,
		FolderID: folderID,
	})
	if err != nil {
		fail(c, err)

		return
	}

	c.JSON(http.StatusCreated, file)
}

// ListFiles 按过滤条件分页列出文件.
func (h *Handlers) ListFiles(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var q types.ListFilesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    "VALIDATION_FAILED",
			"message": err.Error(),
		})

		return
	}

	resp, err := h.Files.List(c.Request.Context(), userID, &q)
	if err != nil {
		fail(c, err)

		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetFile 取单个文件的元数据.
func (h *Handlers) GetFile(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	fileID, ok := pathID(c, "id")
	if !ok {
		return
	}

	file, err := h.Files.Get(c.Request.Context(), userID, fileID)
	if err != nil {
		fail(c, err)

		return
	}

	c.JSON(http.StatusOK, file)
}

// MoveFile 移动文件到文件夹（folderId 为 null 表示移出）.
func (h *Handlers) MoveFile(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	fileID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req types.MoveFileRequest
	if !bindJSON(c, &req) {
		return
	}

	file, err := h.Files.Move(c.Request.Context(), userID, fileID, req.FolderID)
	if err != nil {
		fail(c, err)

		return
	}

	c.JSON(http.StatusOK, file)
}

// DeleteFile 删除文件（内容和记录）.
func (h *Handlers) DeleteFile(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	fileID, ok := pathID(c, "id")
	if !ok {
		return
	}

	resp, err := h.Files.Delete(c.Request.Context(), userID, fileID)
	if err != nil {
		fail(c, err)

		return
	}

	c.JSON(http.StatusOK, resp)
}

// AddFileTag 给文件打标签（幂等）.
func (h *Handlers) AddFileTag(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	fileID, ok := pathID(c, "id")
	if !ok {
		return
	}

	tagID, ok := pathID(c, "tagId")
	if !ok {
		return
	}

	file, err := h.Files.AddTag(c.Request.Context(), userID, fileID, tagID)
	if err != nil {
		fail(c, err)

		return
	}

	c.JSON(http.StatusOK, file)
}

// RemoveFileTag 移除文件上的标签.
func (h *Handlers) RemoveFileTag(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	fileID, ok := pathID(c, "id")
	if !ok {
		return
	}

	tagID, ok := pathID(c, "tagId")
	if !ok {
		return
	}

	file, err := h.Files.RemoveTag(c.Request.Context(), userID, fileID, tagID)
	if err != nil {
		fail(c, err)

		return
	}

	c.JSON(http.StatusOK, file)
}

// viewContentTypes 公开预览按类别使用固定 Content-Type，
// 不回放客户端上传时声明的 MIME，避免把任意类型直接送进浏览器.
var viewContentTypes = map[model.FileType]string{
	model.FileTypeImage: "image/jpeg",
	model.FileTypePDF:   "application/pdf",
	model.FileTypeVideo: "video/mp4",
	model.FileTypeAudio: "audio/mpeg",
}

// ViewFile 公开预览：无需认证，内联展示.
func (h *Handlers) ViewFile(c *gin.Context) {
	fileID, ok := pathID(c, "id")
	if !ok {
		return
	}

	file, obj, err := h.Files.OpenPublic(c.Request.Context(), fileID)
	if err != nil {
		fail(c, err)

		return
	}
	defer obj.Reader.Close()

	contentType, known := viewContentTypes[file.Type]
	if !known {
		contentType = "application/octet-stream"
	}

	c.Header("Content-Disposition", "inline")
	c.DataFromReader(http.StatusOK, obj.Size, contentType, obj.Reader, nil)
}

// DownloadFile 认证下载：以附件形式返回原始文件名.
func (h *Handlers) DownloadFile(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	fileID, ok := pathID(c, "id")
	if !ok {
		return
	}

	file, obj, err := h.Files.Open(c.Request.Context(), userID, fileID)
	if err != nil {
		fail(c, err)

		return
	}
	defer obj.Reader.Close()

	// 下载一律 octet-stream，原始 MIME 只是展示元数据
	extraHeaders := map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", file.Name),
	}

	c.DataFromReader(http.StatusOK, obj.Size, "application/octet-stream", obj.Reader, extraHeaders)
}
