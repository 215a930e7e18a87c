package service

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yeisme/assetvault/pkg/internal/model"
	"github.com/yeisme/assetvault/pkg/internal/storage/mq"
	"github.com/yeisme/assetvault/pkg/internal/types"
	alog "github.com/yeisme/assetvault/pkg/log"
	"github.com/yeisme/assetvault/pkg/queue"
	"github.com/yeisme/assetvault/pkg/token"
)

// AuthService 负责注册、登录与当前用户解析.
type AuthService struct {
	db         *gorm.DB
	bus        *mq.Client
	tokens     *token.Manager
	bcryptCost int
}

// NewAuthService 创建认证服务.
func NewAuthService(db *gorm.DB, bus *mq.Client, tokens *token.Manager, bcryptCost int) *AuthService {
	if bcryptCost <= 0 {
		bcryptCost = bcrypt.DefaultCost
	}

	return &AuthService{db: db, bus: bus, tokens: tokens, bcryptCost: bcryptCost}
}

// Register 注册新用户，返回公开资料（不含令牌，登录才签发）.
// 邮箱原样存储，大小写敏感；重复返回 Conflict.
func (s *AuthService) Register(ctx context.Context, req *types.RegisterRequest) (*types.PublicUser, error) {
	email := strings.TrimSpace(req.Email)

	var count int64
	if err := s.db.WithContext(ctx).Model(&model.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}

	if count > 0 {
		return nil, NewConflict("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := model.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         req.Name,
		Role:         model.RoleUser,
	}

	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}

	s.publishRegistered(ctx, &user)

	pu := types.NewPublicUser(&user)

	return &pu, nil
}

// Login 校验邮箱密码并签发令牌. 无论邮箱不存在还是密码错误，
// 都返回同样的 Unauthorized，不泄露哪一步失败.
func (s *AuthService) Login(ctx context.Context, req *types.LoginRequest) (*types.LoginResponse, error) {
	email := strings.TrimSpace(req.Email)

	var user model.User

	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewUnauthorized("invalid credentials")
		}

		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, NewUnauthorized("invalid credentials")
	}

	return s.issue(&user)
}

// Resolve 根据令牌声明重新读取用户. 用户被删除时令牌随之失效.
func (s *AuthService) Resolve(ctx context.Context, userID uint) (*types.PublicUser, error) {
	var user model.User

	err := s.db.WithContext(ctx).First(&user, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewUnauthorized("user no longer exists")
		}

		return nil, err
	}

	pu := types.NewPublicUser(&user)

	return &pu, nil
}

func (s *AuthService) issue(user *model.User) (*types.LoginResponse, error) {
	signed, err := s.tokens.Sign(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}

	return &types.LoginResponse{
		AccessToken: signed,
		User:        types.NewPublicUser(user),
	}, nil
}

// publishRegistered 发布注册事件. 发布失败只记录日志.
func (s *AuthService) publishRegistered(ctx context.Context, user *model.User) {
	msg, err := queue.NewMessage(queue.TopicUserRegistered, queue.UserRegistered{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
	})
	if err != nil {
		alog.Logger().Error().Err(err).Msg("编码注册事件失败")

		return
	}

	if err := s.bus.Publish(ctx, queue.TopicUserRegistered, msg); err != nil {
		alog.Logger().Warn().Err(err).Uint("user", user.ID).Msg("发布注册事件失败")
	}
}
