package service

import (
	"assessment_backend/internal/model"
	"assessment_backend/internal/repository"
	"assessment_backend/internal/util"
	"assessment_backend/pkg/logger"
	"context"

	"go.uber.org/zap"
)

type UserService struct {
	Repo *repository.UserRepository
}

func NewUserService(repo *repository.UserRepository) *UserService {
	return &UserService{Repo: repo}
}

func (s *UserService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	return s.Repo.FindByID(ctx, id)
}

func (s *UserService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.Repo.List(ctx)
}

// ToggleBlock 切换封禁状态，管理员不能封禁自己
func (s *UserService) ToggleBlock(ctx context.Context, actorID, id uint) (*model.User, error) {
	if actorID == id {
		return nil, util.ErrCannotModifySelf
	}

	user, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.IsBlocked = !user.IsBlocked
	if err := s.Repo.SetBlocked(ctx, id, user.IsBlocked); err != nil {
		return nil, err
	}

	logger.Log.Info("User block state changed",
		zap.Uint("actorID", actorID),
		zap.Uint("userID", id),
		zap.Bool("blocked", user.IsBlocked))
	return user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, actorID, id uint) error {
	if actorID == id {
		return util.ErrCannotModifySelf
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	logger.Log.Info("User deleted", zap.Uint("actorID", actorID), zap.Uint("userID", id))
	return nil
}
