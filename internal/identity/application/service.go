package application

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/wyfcoding/defaultmanagement/internal/identity/domain"
	"github.com/wyfcoding/defaultmanagement/pkg/apperrors"
	"github.com/wyfcoding/defaultmanagement/pkg/auth"
	"github.com/wyfcoding/defaultmanagement/pkg/logger"
)

// LoginCommand 登录命令
type LoginCommand struct {
	Username string
	Password string
}

// TokenDTO 登录结果
type TokenDTO struct {
	Token       string `json:"token"`
	Type        string `json:"type"`
	ExpiresAt   int64  `json:"expires_at"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}

// AuthService 认证服务，登录事件通过注入的发布者发出而非全局单例
type AuthService struct {
	repo      domain.UserRepository
	tokens    *auth.TokenManager
	publisher domain.EventPublisher
}

// NewAuthService 创建认证服务实例
func NewAuthService(repo domain.UserRepository, tokens *auth.TokenManager, publisher domain.EventPublisher) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, publisher: publisher}
}

// Login 校验凭据并签发令牌
func (s *AuthService) Login(ctx context.Context, cmd LoginCommand) (*TokenDTO, error) {
	user, err := s.repo.GetByUsername(ctx, cmd.Username)
	if err != nil {
		return nil, apperrors.Wrap("query user failed", err)
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(cmd.Password)) != nil {
		s.publishEvent(ctx, "security.login.failed", cmd.Username, domain.LoginFailedEvent{
			Username:  cmd.Username,
			Timestamp: time.Now(),
		})
		return nil, apperrors.PermissionDenied("invalid credentials")
	}

	token, expiresAt, err := s.tokens.Generate(user.Username, string(user.Role))
	if err != nil {
		return nil, apperrors.Wrap("generate token failed", err)
	}

	s.publishEvent(ctx, "security.login", user.Username, domain.UserLoggedInEvent{
		Username:  user.Username,
		Role:      user.Role,
		Timestamp: time.Now(),
	})

	return &TokenDTO{
		Token:       token,
		Type:        "Bearer",
		ExpiresAt:   expiresAt.Unix(),
		Username:    user.Username,
		DisplayName: user.DisplayName,
		Role:        string(user.Role),
	}, nil
}

func (s *AuthService) publishEvent(ctx context.Context, topic, key string, event any) {
	if err := s.publisher.Publish(ctx, topic, key, event); err != nil {
		logger.Warn(ctx, "publish login event failed", "topic", topic, "error", err)
	}
}
