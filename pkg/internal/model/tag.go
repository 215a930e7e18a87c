package model

import "time"

// Tag 标签模型. 名称在同一用户下唯一（跨用户可重名）.
type Tag struct {
	ID      uint   `gorm:"primaryKey"                                json:"id"`
	Name    string `gorm:"size:100;index:idx_owner_tag_name,unique"  json:"name"`
	OwnerID uint   `gorm:"not null;index:idx_owner_tag_name,unique"  json:"ownerId"`
	Owner   *User  `gorm:"foreignKey:OwnerID"                        json:"owner,omitempty"`

	Files []File `gorm:"many2many:file_tags" json:"files,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// OwnerRef 返回资源归属的用户 ID.
func (t *Tag) OwnerRef() uint { return t.OwnerID }
