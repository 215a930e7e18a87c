package types

import (
	"time"

	"github.com/yeisme/assetvault/pkg/internal/model"
)

// CreateTagRequest 创建标签请求.
type CreateTagRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// TagCount 标签的关联统计.
type TagCount struct {
	Files int64 `json:"files"`
}

// TagSummary 列表中的标签条目，附带打了该标签的文件数.
type TagSummary struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	OwnerID   uint      `json:"ownerId"`
	CreatedAt time.Time `json:"createdAt"`
	Count     TagCount  `json:"_count"`
}

// NewTagSummary 从模型构造标签条目.
func NewTagSummary(t *model.Tag, fileCount int64) TagSummary {
	return TagSummary{
		ID:        t.ID,
		Name:      t.Name,
		OwnerID:   t.OwnerID,
		CreatedAt: t.CreatedAt,
		Count:     TagCount{Files: fileCount},
	}
}

// TagRef 文件响应里内嵌的标签引用.
type TagRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// TagDetail 单个标签详情，内嵌打了该标签的文件.
type TagDetail struct {
	TagSummary

	Files []FileSummary `json:"files"`
}
