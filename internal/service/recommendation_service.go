package service

import (
	"assessment_backend/internal/config"
	"assessment_backend/internal/repository"
	"assessment_backend/pkg/logger"
	"assessment_backend/pkg/monitoring"
	"assessment_backend/pkg/tracing"
	"context"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type RecommendationService struct {
	DB *gorm.DB

	mu           sync.RWMutex
	defaultLimit int
	maxLimit     int
}

func NewRecommendationService(db *gorm.DB, cfg config.RecommendationConfig) *RecommendationService {
	s := &RecommendationService{DB: db}
	s.ApplyConfig(cfg)
	return s
}

// ApplyConfig 配置热更新时调用
func (s *RecommendationService) ApplyConfig(cfg config.RecommendationConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.defaultLimit = cfg.DefaultLimit
	s.maxLimit = cfg.MaxLimit
	if s.defaultLimit <= 0 {
		s.defaultLimit = 3
	}
	if s.maxLimit < s.defaultLimit {
		s.maxLimit = s.defaultLimit
	}
}

// EffectiveLimit 非正数取默认值，超过上限时截断
func (s *RecommendationService) EffectiveLimit(limit int) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if limit <= 0 {
		return s.defaultLimit
	}
	if limit > s.maxLimit {
		return s.maxLimit
	}
	return limit
}

// Recommend 推荐该用户尚未完成的测试。目录与历史统计在同一事务中读取，保证快照一致。
func (s *RecommendationService) Recommend(ctx context.Context, userID uint, limit int) (previews []TestPreview, err error) {
	limit = s.EffectiveLimit(limit)
	ctx, span := tracing.StartSpan(ctx, "RecommendationService.Recommend",
		attribute.Int64("user.id", int64(userID)),
		attribute.Int("limit", limit))
	defer func() { tracing.EndSpan(span, err) }()

	in := RankInput{Limit: limit}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tests := repository.NewTestRepository(tx)
		results := repository.NewTestResultRepository(tx)

		var err error
		if in.Catalog, err = tests.List(ctx); err != nil {
			return err
		}
		if in.Completed, err = results.CompletedTestIDs(ctx, userID); err != nil {
			return err
		}
		if in.Affinity, err = results.CountByUserCategory(ctx, userID); err != nil {
			return err
		}
		in.Popularity, err = results.CountByTest(ctx)
		return err
	})
	if err != nil {
		logger.Log.Error("Failed to load recommendation data", zap.Uint("userID", userID), zap.Error(err))
		return nil, err
	}

	ranked := RankTests(in)
	monitoring.RecommendationsServed.Observe(float64(len(ranked)))
	return toPreviews(ranked), nil
}
