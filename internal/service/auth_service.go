package service

import (
	"assessment_backend/internal/config"
	"assessment_backend/internal/model"
	"assessment_backend/internal/repository"
	"assessment_backend/internal/util"
	"assessment_backend/pkg/logger"
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	UserRepo *repository.UserRepository
	Cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Cfg:      cfg,
	}
}

type RegisterReq struct {
	Name     string `json:"name" binding:"required,min=3,max=64"`
	Password string `json:"password" binding:"required,min=8,max=64"`
}

type LoginReq struct {
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register 创建用户，isAdmin 仅由管理员接口传入 true
func (s *AuthService) Register(ctx context.Context, req RegisterReq, isAdmin bool) (*model.User, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, util.ErrBlankName
	}

	_, err := s.UserRepo.FindByName(ctx, name)
	if err == nil {
		return nil, util.ErrUserNameTaken
	} else if !errors.Is(err, util.ErrUserNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:         name,
		PasswordHash: string(hashedPassword),
		IsAdmin:      isAdmin,
	}
	if err := s.UserRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.Log.Info("User registered", zap.Uint("userID", user.ID), zap.Bool("admin", isAdmin))
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, req LoginReq) (string, *model.User, error) {
	user, err := s.UserRepo.FindByName(ctx, strings.TrimSpace(req.Name))
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			return "", nil, util.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return "", nil, util.ErrInvalidCredentials
	}
	if user.IsBlocked {
		return "", nil, util.ErrUserBlocked
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// VerifyClaims 每次请求重新校验令牌对应的用户：存在、未被封禁、管理员标志一致
func (s *AuthService) VerifyClaims(ctx context.Context, claims *util.Claims) (*model.User, error) {
	user, err := s.UserRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user.IsBlocked {
		return nil, util.ErrUserBlocked
	}
	if user.IsAdmin != claims.IsAdmin || user.Name != claims.Name {
		return nil, util.ErrPermissionDenied
	}
	return user, nil
}
