package model

import "time"

// Folder 文件夹模型. 扁平结构，不支持嵌套.
type Folder struct {
	ID      uint   `gorm:"primaryKey"     json:"id"`
	Name    string `gorm:"size:255"       json:"name"`
	OwnerID uint   `gorm:"index;not null" json:"ownerId"`
	Owner   *User  `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`

	Files []File `gorm:"foreignKey:FolderID" json:"files,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// OwnerRef 返回资源归属的用户 ID.
func (f *Folder) OwnerRef() uint { return f.OwnerID }
