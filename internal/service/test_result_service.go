package service

import (
	"assessment_backend/internal/model"
	"assessment_backend/internal/repository"
	"assessment_backend/internal/util"
	"assessment_backend/pkg/logger"
	"assessment_backend/pkg/monitoring"
	"assessment_backend/pkg/tracing"
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type TestResultService struct {
	Repo     *repository.TestResultRepository
	TestRepo *repository.TestRepository
	DB       *gorm.DB
}

func NewTestResultService(repo *repository.TestResultRepository, testRepo *repository.TestRepository, db *gorm.DB) *TestResultService {
	return &TestResultService{Repo: repo, TestRepo: testRepo, DB: db}
}

type SubmissionReq struct {
	TimeStart time.Time           `json:"timeStart" binding:"required"`
	TimeEnd   time.Time           `json:"timeEnd" binding:"required"`
	Questions []SubmittedQuestion `json:"questions" binding:"dive"`
}

// SubmitResult 在同一事务内加载测试、判分并写入成绩记录
func (s *TestResultService) SubmitResult(ctx context.Context, testID, userID uint, req SubmissionReq) (result *model.TestResult, err error) {
	ctx, span := tracing.StartSpan(ctx, "TestResultService.SubmitResult",
		attribute.Int64("test.id", int64(testID)),
		attribute.Int64("user.id", int64(userID)))
	defer func() { tracing.EndSpan(span, err) }()

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		test, err := repository.NewTestRepository(tx).FindAggregate(ctx, testID)
		if err != nil {
			return err
		}

		graded := Grade(test, req.Questions)
		result = &model.TestResult{
			TestID:    testID,
			UserID:    userID,
			Score:     graded.Score,
			FullScore: graded.FullScore,
			TimeStart: req.TimeStart,
			TimeEnd:   req.TimeEnd,
		}
		return repository.NewTestResultRepository(tx).Create(ctx, result)
	})
	if err != nil {
		if !isExpected(err) {
			logger.Log.Error("Failed to grade submission",
				zap.Uint("testID", testID),
				zap.Uint("userID", userID),
				zap.Error(err))
		}
		return nil, err
	}

	monitoring.ObserveGrade(result.Score, result.FullScore)
	logger.Log.Info("Submission graded",
		zap.Uint("resultID", result.ID),
		zap.Uint("testID", testID),
		zap.Uint("userID", userID),
		zap.Int("score", result.Score),
		zap.Int("fullScore", result.FullScore))
	return result, nil
}

func (s *TestResultService) ListMyResults(ctx context.Context, userID uint) ([]model.TestResult, error) {
	return s.Repo.ListByUser(ctx, userID)
}

func (s *TestResultService) ListMyResultsForTest(ctx context.Context, userID, testID uint) ([]model.TestResult, error) {
	if err := s.ensureTest(ctx, testID); err != nil {
		return nil, err
	}
	return s.Repo.ListByUserAndTest(ctx, userID, testID)
}

// ListResultsForTest 管理员查看某测试的全部成绩
func (s *TestResultService) ListResultsForTest(ctx context.Context, testID uint) ([]model.TestResult, error) {
	if err := s.ensureTest(ctx, testID); err != nil {
		return nil, err
	}
	return s.Repo.ListByTest(ctx, testID)
}

func (s *TestResultService) ensureTest(ctx context.Context, testID uint) error {
	ok, err := s.TestRepo.Exists(ctx, testID)
	if err != nil {
		return err
	}
	if !ok {
		return util.ErrTestNotFound
	}
	return nil
}
