package types

import (
	"time"

	"github.com/yeisme/assetvault/pkg/internal/model"
)

// CreateFolderRequest 创建文件夹请求.
type CreateFolderRequest struct {
	Name string `json:"name" binding:"required,min=1,max=255"`
}

// RenameFolderRequest 重命名文件夹请求.
type RenameFolderRequest struct {
	Name string `json:"name" binding:"required,min=1,max=255"`
}

// FolderCount 文件夹的关联统计.
type FolderCount struct {
	Files int64 `json:"files"`
}

// FolderSummary 列表中的文件夹条目，附带文件数统计.
type FolderSummary struct {
	ID        uint        `json:"id"`
	Name      string      `json:"name"`
	OwnerID   uint        `json:"ownerId"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
	Count     FolderCount `json:"_count"`
}

// NewFolderSummary 从模型构造文件夹条目.
func NewFolderSummary(f *model.Folder, fileCount int64) FolderSummary {
	return FolderSummary{
		ID:        f.ID,
		Name:      f.Name,
		OwnerID:   f.OwnerID,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
		Count:     FolderCount{Files: fileCount},
	}
}

// FolderDetail 单个文件夹详情，内嵌其中的文件.
type FolderDetail struct {
	FolderSummary

	Files []FileSummary `json:"files"`
}

// DeleteFolderResponse 删除文件夹的结果. 文件夹中的文件不会被删除，
// 只是移出文件夹，filesMoved 记录受影响的数量.
type DeleteFolderResponse struct {
	Deleted    bool  `json:"deleted"`
	FilesMoved int64 `json:"filesMoved"`
}
