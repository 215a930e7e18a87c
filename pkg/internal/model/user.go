// Package model 定义数据库模型. JSON 标签使用 camelCase 与前端约定保持一致.
package model

import (
	"time"
)

// 角色常量. 目前只有普通用户，保留字段便于未来扩展管理员.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User 用户模型. PasswordHash 永远不序列化到响应中.
type User struct {
	ID           uint   `gorm:"primaryKey"              json:"id"`
	Email        string `gorm:"size:255;uniqueIndex"    json:"email"`
	PasswordHash string `gorm:"size:128;column:password" json:"-"`
	Name         string `gorm:"size:100"                json:"name"`
	Role         string `gorm:"size:32;default:user"    json:"role"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
