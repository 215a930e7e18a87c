package model

import (
	"strings"
	"time"
)

// FileType 文件逻辑类别，上传时根据 MIME 类型推导.
type FileType string

const (
	FileTypeImage    FileType = "image"
	FileTypePDF      FileType = "pdf"
	FileTypeVideo    FileType = "video"
	FileTypeAudio    FileType = "audio"
	FileTypeDocument FileType = "document"
	FileTypeOther    FileType = "other"
)

// ClassifyMIME 把 MIME 类型归入逻辑类别.
func ClassifyMIME(mimeType string) FileType {
	mt := strings.ToLower(mimeType)

	switch {
	case strings.HasPrefix(mt, "image/"):
		return FileTypeImage
	case mt == "application/pdf":
		return FileTypePDF
	case strings.HasPrefix(mt, "video/"):
		return FileTypeVideo
	case strings.HasPrefix(mt, "audio/"):
		return FileTypeAudio
	case strings.Contains(mt, "document"),
		strings.Contains(mt, "word"),
		strings.Contains(mt, "sheet"),
		strings.Contains(mt, "text"):
		return FileTypeDocument
	default:
		return FileTypeOther
	}
}

// File 文件元数据模型. 文件内容本身保存在 blob 存储里，ObjectKey 指向它.
type File struct {
	ID uint `gorm:"primaryKey" json:"id"`
	// Name 上传时的原始文件名
	Name string `gorm:"size:512" json:"name"`
	// ObjectKey blob 存储中的对象键，全局唯一
	ObjectKey string   `gorm:"size:1024;uniqueIndex" json:"-"`
	MimeType  string   `gorm:"size:255;index"        json:"mimeType"`
	Type      FileType `gorm:"size:32;index"         json:"type"`
	Size      int64    `gorm:"index"                 json:"size"`
	ETag      string   `gorm:"size:64"               json:"-"`

	OwnerID uint  `gorm:"index;not null"     json:"ownerId"`
	Owner   *User `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`

	// FolderID 为空表示文件不在任何文件夹中
	FolderID *uint   `gorm:"index"               json:"folderId"`
	Folder   *Folder `gorm:"foreignKey:FolderID" json:"folder,omitempty"`

	Tags []Tag `gorm:"many2many:file_tags" json:"tags,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// OwnerRef 返回资源归属的用户 ID.
func (f *File) OwnerRef() uint { return f.OwnerID }

// FileTag 文件与标签的关联表，显式声明以便直接操作关联记录.
type FileTag struct {
	FileID uint `gorm:"primaryKey" json:"fileId"`
	TagID  uint `gorm:"primaryKey" json:"tagId"`
}

// AllModels 返回需要自动迁移的全部模型.
func AllModels() []any {
	return []any{
		&User{},
		&Folder{},
		&Tag{},
		&File{},
		&FileTag{},
	}
}
