package service

import (
	"Moodboard/config"
	"Moodboard/pkg/errs"
	"Moodboard/pkg/jwt"
	"Moodboard/pkg/log"
	"Moodboard/types"
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var _ IAuthService = (*AuthService)(nil)

type IAuthService interface {
	// Login 校验审核员密码, 成功后签发访问令牌
	Login(ctx context.Context, username, password string) (*types.LoginResponse, error)
}

type AuthService struct {
	Config *config.Config
}

// dummyHash 用户不存在时也做一次比较, 两种失败耗时一致
var dummyHash = []byte("$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5BWX4Z4Z1uvvmHHnLhjVZ6fIs3ZCm")

func (s *AuthService) Login(ctx context.Context, username, password string) (*types.LoginResponse, error) {
	hash, ok := s.Config.Reviewer.Passwords[username]
	if !ok {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		log.L.Warn("login failed", zap.String("username", username))
		return nil, errs.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		log.L.Warn("login failed", zap.String("username", username))
		return nil, errs.ErrUnauthorized
	}

	expire := time.Duration(s.Config.Jwt.ExpireSeconds) * time.Second
	token, expiresAt, err := jwt.GenerateToken([]byte(s.Config.Jwt.Secret), username, jwt.TokenTypeAccess, expire)
	if err != nil {
		return nil, err
	}
	log.L.Info("reviewer logged in", zap.String("username", username))
	return &types.LoginResponse{Token: token, ExpiresAt: expiresAt.Unix()}, nil
}

// HashPassword 生成配置文件中使用的密码哈希
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}
