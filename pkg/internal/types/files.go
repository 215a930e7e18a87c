package types

import (
	"time"

	"github.com/yeisme/assetvault/pkg/internal/model"
)

// ListFilesQuery 文件列表的过滤与分页参数. 多个过滤条件同时生效（交集）.
type ListFilesQuery struct {
	// Search 对文件名做大小写不敏感的子串匹配
	Search string `form:"search"`
	// Type 按逻辑类别过滤
	Type string `form:"type" binding:"omitempty,oneof=image pdf video audio document other"`
	// FolderID 按所在文件夹过滤
	FolderID *uint `form:"folderId"`
	// TagID 按标签过滤
	TagID *uint `form:"tagId"`

	Page  int `form:"page"  binding:"omitempty,min=1"`
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}

// 分页默认值.
const (
	DefaultPage  = 1
	DefaultLimit = 20
)

// Normalize 填充分页默认值.
func (q *ListFilesQuery) Normalize() {
	if q.Page < 1 {
		q.Page = DefaultPage
	}

	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}
}

// FolderRef 文件响应里内嵌的文件夹引用.
type FolderRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// FileSummary 文件条目. 列表与详情共用.
type FileSummary struct {
	ID        uint           `json:"id"`
	Name      string         `json:"name"`
	MimeType  string         `json:"mimeType"`
	Type      model.FileType `json:"type"`
	Size      int64          `json:"size"`
	OwnerID   uint           `json:"ownerId"`
	FolderID  *uint          `json:"folderId"`
	Folder    *FolderRef     `json:"folder,omitempty"`
	Owner     *PublicUser    `json:"owner,omitempty"`
	Tags      []TagRef       `json:"tags"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// NewFileSummary 从模型构造文件条目. 预加载了的关联会一并转换.
func NewFileSummary(f *model.File) FileSummary {
	out := FileSummary{
		ID:        f.ID,
		Name:      f.Name,
		MimeType:  f.MimeType,
		Type:      f.Type,
		Size:      f.Size,
		OwnerID:   f.OwnerID,
		FolderID:  f.FolderID,
		Tags:      make([]TagRef, 0, len(f.Tags)),
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}

	for _, t := range f.Tags {
		out.Tags = append(out.Tags, TagRef{ID: t.ID, Name: t.Name})
	}

	if f.Folder != nil {
		out.Folder = &FolderRef{ID: f.Folder.ID, Name: f.Folder.Name}
	}

	if f.Owner != nil {
		u := NewPublicUser(f.Owner)
		out.Owner = &u
	}

	return out
}

// Pagination 分页元信息.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// ListFilesResponse 文件列表响应.
type ListFilesResponse struct {
	Files      []FileSummary `json:"files"`
	Pagination Pagination    `json:"pagination"`
}

// MoveFileRequest 移动文件请求. FolderID 为 null 表示移出文件夹.
type MoveFileRequest struct {
	FolderID *uint `json:"folderId"`
}

// DeleteFileResponse 删除文件的结果.
type DeleteFileResponse struct {
	Deleted bool `json:"deleted"`
}
