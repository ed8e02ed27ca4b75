package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"go-shop-api/internal/core/auth"
	"go-shop-api/internal/core/oauth"
	"go-shop-api/internal/domain"
	"go-shop-api/internal/repo"
	"go-shop-api/pkg/utils"
)

type AuthService struct {
	users domain.UserRepository
	jwter *auth.JWTer
	log   *zap.Logger
}

func NewAuthService(users domain.UserRepository, jwter *auth.JWTer, log *zap.Logger) *AuthService {
	return &AuthService{users: users, jwter: jwter, log: log}
}

// Register 本地注册，providerId 即用户名
func (s *AuthService) Register(ctx context.Context, username, password, email, name string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", Invalid("username and password required")
	}
	if exists, err := s.users.FindByUsername(ctx, username); err != nil {
		return "", err
	} else if exists != nil {
		return "", ErrUsernameTaken
	}
	u := &domain.User{
		ID:           utils.NewID(),
		Provider:     domain.ProviderLocal,
		ProviderID:   username,
		Username:     &username,
		PasswordHash: utils.HashPassword(password),
		Email:        strings.TrimSpace(email),
		Name:         strings.TrimSpace(name),
	}
	if err := s.users.Create(ctx, u); err != nil {
		if repo.IsDupKey(err) {
			return "", ErrUsernameTaken
		}
		return "", err
	}
	s.log.Info("user registered", zap.String("user_id", u.ID))
	return s.jwter.Issue(u.ID, u.IsAdmin)
}

func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", Invalid("username and password required")
	}
	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if u == nil || u.PasswordHash == "" || !utils.CheckPassword(password, u.PasswordHash) {
		return "", ErrInvalidCredentials
	}
	return s.jwter.Issue(u.ID, u.IsAdmin)
}

// OAuthLogin 按 (provider, providerId) 找或建；已有用户缺 email/name 时
// 用这次 provider 给的补上，不覆盖已填的值。
func (s *AuthService) OAuthLogin(ctx context.Context, provider string, p oauth.Profile) (string, error) {
	u, err := s.users.FindByProvider(ctx, provider, p.ID)
	if err != nil {
		return "", err
	}
	if u == nil {
		u = &domain.User{
			ID:         utils.NewID(),
			Provider:   provider,
			ProviderID: p.ID,
			Email:      p.Email,
			Name:       p.Name,
		}
		if err := s.users.Create(ctx, u); err != nil {
			if !repo.IsDupKey(err) {
				return "", err
			}
			// 并发回调兜底：再查一次
			if u, err = s.users.FindByProvider(ctx, provider, p.ID); err != nil {
				return "", err
			}
			// 撞了唯一索引但重查仍不可见：占住 (provider, providerId)
			// 的是被软删（封号）的行，不给发 token
			if u == nil {
				return "", ErrInvalidCredentials
			}
		} else {
			s.log.Info("oauth user created",
				zap.String("provider", provider), zap.String("user_id", u.ID))
		}
	} else if p.Email != "" && u.Email == "" {
		u.Email = p.Email
		if u.Name == "" {
			u.Name = p.Name
		}
		if err := s.users.Update(ctx, u); err != nil {
			return "", err
		}
	}
	return s.jwter.Issue(u.ID, u.IsAdmin)
}

func (s *AuthService) Me(ctx context.Context, uid string) (*domain.User, error) {
	u, err := s.users.FindByID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotFound
	}
	return u, nil
}
