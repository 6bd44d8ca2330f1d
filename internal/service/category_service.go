package service

import (
	"assessment_backend/internal/model"
	"assessment_backend/internal/repository"
	"assessment_backend/internal/util"
	"assessment_backend/pkg/logger"
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
)

type CategoryService struct {
	Repo *repository.CategoryRepository
}

func NewCategoryService(repo *repository.CategoryRepository) *CategoryService {
	return &CategoryService{Repo: repo}
}

type CategoryReq struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

func (s *CategoryService) ensureNameFree(ctx context.Context, name string, selfID uint) error {
	if name == "" {
		return util.ErrBlankName
	}
	existing, err := s.Repo.FindByName(ctx, name)
	if errors.Is(err, util.ErrCategoryNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID != selfID {
		return util.ErrCategoryNameTaken
	}
	return nil
}

func (s *CategoryService) CreateCategory(ctx context.Context, req CategoryReq) (*model.Category, error) {
	name := strings.TrimSpace(req.Name)
	if err := s.ensureNameFree(ctx, name, 0); err != nil {
		return nil, err
	}

	category := &model.Category{Name: name}
	if err := s.Repo.Create(ctx, category); err != nil {
		return nil, err
	}
	logger.Log.Info("Category created", zap.Uint("categoryID", category.ID), zap.String("name", name))
	return category, nil
}

func (s *CategoryService) ListCategories(ctx context.Context) ([]model.Category, error) {
	return s.Repo.List(ctx)
}

func (s *CategoryService) GetCategory(ctx context.Context, id uint) (*model.Category, error) {
	return s.Repo.FindByID(ctx, id)
}

func (s *CategoryService) RenameCategory(ctx context.Context, id uint, req CategoryReq) (*model.Category, error) {
	category, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == category.Name {
		return category, nil
	}
	if err := s.ensureNameFree(ctx, name, id); err != nil {
		return nil, err
	}
	if err := s.Repo.UpdateName(ctx, id, name); err != nil {
		return nil, err
	}
	category.Name = name
	return category, nil
}

// DeleteCategory 被测试引用的分类不可删除
func (s *CategoryService) DeleteCategory(ctx context.Context, id uint) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	logger.Log.Info("Category deleted", zap.Uint("categoryID", id))
	return nil
}
