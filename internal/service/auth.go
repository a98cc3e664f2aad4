package service

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"AttendSheet/internal/cache"
	"AttendSheet/internal/model"
	"AttendSheet/internal/model/dto"
	"AttendSheet/internal/repository"
	"AttendSheet/pkg/errors"
	"AttendSheet/pkg/logger"
	"AttendSheet/pkg/snowflake"
	"AttendSheet/pkg/token"
	"AttendSheet/utils"
)

var (
	authService *AuthService
	authOnce    sync.Once
)

func Auth() *AuthService {
	authOnce.Do(func() {
		authService = &AuthService{
			users: repository.NewUserRepository(),
		}
	})
	return authService
}

type AuthService struct {
	users *repository.UserRepository
}

// Register 邮箱密码注册，成功直接发放 token 对
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	if !utils.ValidateEmail(req.Email) || len(req.Password) < 8 {
		return nil, errors.InvalidRequest
	}

	exists, err := s.users.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, errors.EmailAlreadyRegistered
	}

	publicID, err := snowflake.NextID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate user ID: %w", err)
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		PublicID:     publicID,
		Email:        req.Email,
		PasswordHash: passwordHash,
		Nickname:     req.Nickname,
		Status:       model.UserStatusActive,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	logger.Logger.Info("New user registered",
		zap.Int64("public_id", publicID),
	)

	return s.issueTokens(ctx, user)
}

// Login 邮箱密码登录
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err == gorm.ErrRecordNotFound {
		return nil, errors.InvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		return nil, errors.InvalidCredentials
	}

	if user.Status != model.UserStatusActive {
		return nil, errors.Unauthorized
	}

	return s.issueTokens(ctx, user)
}

// Refresh 用 refresh token 换新 token 对，旧 token 必须仍在 Redis 中
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	userID, err := token.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, errors.RefreshTokenInvalid
	}

	if !cache.ValidateRefreshTokenExists(ctx, userID, refreshToken) {
		return nil, errors.RefreshTokenInvalid
	}

	userIDInt, err := strconv.ParseInt(userID, 10, 64)
	if err != nil {
		return nil, errors.InvalidUserID
	}

	user, err := s.users.GetByPublicID(ctx, userIDInt)
	if err != nil {
		return nil, errors.RefreshTokenInvalid
	}

	return s.issueTokens(ctx, user)
}

// Logout 删除缓存的 refresh token，令整个 token 对失效
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	if err := cache.DeleteRefreshToken(ctx, userID); err != nil {
		return fmt.Errorf("failed to invalidate refresh token: %w", err)
	}

	logger.Logger.Info("User signed out", zap.String("user_id", userID))
	return nil
}

// Me 当前用户快照
func (s *AuthService) Me(ctx context.Context, userID int64) (*dto.AuthUserSnapshot, error) {
	user, err := s.users.GetByPublicID(ctx, userID)
	if err == gorm.ErrRecordNotFound {
		return nil, errors.Unauthorized
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return &dto.AuthUserSnapshot{
		ID:       strconv.FormatInt(user.PublicID, 10),
		Email:    user.Email,
		Nickname: user.Nickname,
		Status:   string(user.Status),
	}, nil
}

func (s *AuthService) issueTokens(ctx context.Context, user *model.User) (*dto.AuthResponse, error) {
	userIDStr := strconv.FormatInt(user.PublicID, 10)

	accessToken, refreshToken, expiresIn, err := token.GenerateTokenPair(userIDStr)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	// 缓存失败不阻断登录，token 已经发放成功
	if err := cache.SetRefreshToken(ctx, userIDStr, refreshToken); err != nil {
		logger.Logger.Warn("Failed to store refresh token in Redis",
			zap.String("user_id", userIDStr),
			zap.Error(err),
		)
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    expiresIn,
		User: dto.AuthUserSnapshot{
			ID:       userIDStr,
			Email:    user.Email,
			Nickname: user.Nickname,
			Status:   string(user.Status),
		},
	}, nil
}
