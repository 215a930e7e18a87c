// Package types 定义 API 请求与响应结构. JSON 字段统一 camelCase.
package types

import (
	"time"

	"github.com/yeisme/assetvault/pkg/internal/model"
)

// RegisterRequest 注册请求.
type RegisterRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=100"`
	Name     string `json:"name"     binding:"required,min=2,max=100"`
}

// LoginRequest 登录请求.
type LoginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// PublicUser 对外暴露的用户信息，不含密码哈希.
type PublicUser struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewPublicUser 从模型构造对外用户信息.
func NewPublicUser(u *model.User) PublicUser {
	return PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// LoginResponse 登录响应：令牌加公开资料.
type LoginResponse struct {
	AccessToken string     `json:"access_token"`
	User        PublicUser `json:"user"`
}
