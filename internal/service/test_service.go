package service

import (
	"assessment_backend/internal/model"
	"assessment_backend/internal/repository"
	"assessment_backend/internal/util"
	"assessment_backend/pkg/logger"
	"assessment_backend/pkg/monitoring"
	"assessment_backend/pkg/tracing"
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type TestService struct {
	Repo *repository.TestRepository
	DB   *gorm.DB
}

func NewTestService(repo *repository.TestRepository, db *gorm.DB) *TestService {
	return &TestService{Repo: repo, DB: db}
}

type AnswerReq struct {
	ID        *uint  `json:"id"`
	Text      string `json:"text" binding:"required,min=1,max=1000"`
	IsCorrect bool   `json:"isCorrect"`
}

type QuestionReq struct {
	ID      *uint              `json:"id"`
	Text    string             `json:"text" binding:"required,min=1,max=1000"`
	Type    model.QuestionType `json:"type" binding:"min=0,max=2"`
	Answers []AnswerReq        `json:"answers" binding:"dive"`
}

// TestReq 创建与整体更新共用的完整快照
type TestReq struct {
	Name       string        `json:"name" binding:"required,min=1,max=1000"`
	CategoryID uint          `json:"categoryId" binding:"required"`
	Questions  []QuestionReq `json:"questions" binding:"dive"`
}

// TestPreview 列表项，不含题目
type TestPreview struct {
	ID         uint            `json:"id"`
	Name       string          `json:"name"`
	CategoryID uint            `json:"categoryId"`
	Category   *model.Category `json:"category,omitempty"`
}

// 答题视图：不暴露正确答案
type TakerAnswer struct {
	ID   uint   `json:"id"`
	Text string `json:"text"`
}

type TakerQuestion struct {
	ID      uint               `json:"id"`
	Text    string             `json:"text"`
	Type    model.QuestionType `json:"type"`
	Answers []TakerAnswer      `json:"answers"`
}

type TakerTest struct {
	ID         uint            `json:"id"`
	Name       string          `json:"name"`
	CategoryID uint            `json:"categoryId"`
	Category   *model.Category `json:"category,omitempty"`
	Questions  []TakerQuestion `json:"questions"`
}

func validateTestReq(req TestReq) error {
	for _, q := range req.Questions {
		if !q.Type.Valid() {
			return util.ErrInvalidQuestionType
		}
	}
	return nil
}

func (s *TestService) CreateTest(ctx context.Context, req TestReq) (test *model.Test, err error) {
	ctx, span := tracing.StartSpan(ctx, "TestService.CreateTest")
	defer func() { tracing.EndSpan(span, err) }()

	if err = validateTestReq(req); err != nil {
		return nil, err
	}

	test = &model.Test{
		Name:       req.Name,
		CategoryID: req.CategoryID,
		Questions:  make([]model.Question, 0, len(req.Questions)),
	}
	for _, qReq := range req.Questions {
		test.Questions = append(test.Questions, newQuestion(0, qReq))
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		category, err := repository.NewCategoryRepository(tx).FindByID(ctx, req.CategoryID)
		if err != nil {
			return err
		}
		if err := repository.NewTestRepository(tx).Create(ctx, test); err != nil {
			return err
		}
		test.Category = category
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Log.Info("Test created",
		zap.Uint("testID", test.ID),
		zap.Int("questions", len(test.Questions)))
	return test, nil
}

// UpdateTest 以请求为目标状态整体协调测试：读取、计算差异、写入在同一事务内完成
func (s *TestService) UpdateTest(ctx context.Context, id uint, req TestReq) (updated *model.Test, err error) {
	ctx, span := tracing.StartSpan(ctx, "TestService.UpdateTest", attribute.Int64("test.id", int64(id)))
	defer func() { tracing.EndSpan(span, err) }()

	if err = validateTestReq(req); err != nil {
		return nil, err
	}

	var stats repository.ApplyStats
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tests := repository.NewTestRepository(tx)
		existing, err := tests.FindAggregate(ctx, id)
		if err != nil {
			return err
		}
		if req.CategoryID != existing.CategoryID {
			if _, err := repository.NewCategoryRepository(tx).FindByID(ctx, req.CategoryID); err != nil {
				return err
			}
		}

		cs := PlanReconcile(existing, req)
		if stats, err = tests.ApplyChangeSet(ctx, cs); err != nil {
			return err
		}

		updated, err = tests.FindAggregate(ctx, id)
		return err
	})
	if err != nil {
		if !isExpected(err) {
			logger.Log.Error("Failed to reconcile test", zap.Uint("testID", id), zap.Error(err))
		}
		return nil, err
	}

	monitoring.AddReconcileChanges("question", "insert", stats.QuestionsInserted)
	monitoring.AddReconcileChanges("question", "update", stats.QuestionsUpdated)
	monitoring.AddReconcileChanges("question", "delete", stats.QuestionsDeleted)
	monitoring.AddReconcileChanges("answer", "insert", stats.AnswersInserted)
	monitoring.AddReconcileChanges("answer", "update", stats.AnswersUpdated)
	monitoring.AddReconcileChanges("answer", "delete", stats.AnswersDeleted)

	logger.Log.Info("Test reconciled",
		zap.Uint("testID", id),
		zap.Int("questionsInserted", stats.QuestionsInserted),
		zap.Int("questionsUpdated", stats.QuestionsUpdated),
		zap.Int("questionsDeleted", stats.QuestionsDeleted),
		zap.Int("answersInserted", stats.AnswersInserted),
		zap.Int("answersUpdated", stats.AnswersUpdated),
		zap.Int("answersDeleted", stats.AnswersDeleted))
	return updated, nil
}

// GetTest 管理员视图，包含 isCorrect
func (s *TestService) GetTest(ctx context.Context, id uint) (*model.Test, error) {
	return s.Repo.FindAggregate(ctx, id)
}

func (s *TestService) GetTestForTaker(ctx context.Context, id uint) (*TakerTest, error) {
	test, err := s.Repo.FindAggregate(ctx, id)
	if err != nil {
		return nil, err
	}
	return toTakerTest(test), nil
}

func toTakerTest(test *model.Test) *TakerTest {
	view := &TakerTest{
		ID:         test.ID,
		Name:       test.Name,
		CategoryID: test.CategoryID,
		Category:   test.Category,
		Questions:  make([]TakerQuestion, 0, len(test.Questions)),
	}
	for _, q := range test.Questions {
		tq := TakerQuestion{ID: q.ID, Text: q.Text, Type: q.Type, Answers: []TakerAnswer{}}
		// 文本题的选项即标准答案
		if q.Type != model.QuestionText {
			for _, a := range q.Answers {
				tq.Answers = append(tq.Answers, TakerAnswer{ID: a.ID, Text: a.Text})
			}
		}
		view.Questions = append(view.Questions, tq)
	}
	return view
}

func (s *TestService) ListTests(ctx context.Context) ([]TestPreview, error) {
	tests, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toPreviews(tests), nil
}

func toPreviews(tests []model.Test) []TestPreview {
	previews := make([]TestPreview, 0, len(tests))
	for _, t := range tests {
		previews = append(previews, TestPreview{
			ID:         t.ID,
			Name:       t.Name,
			CategoryID: t.CategoryID,
			Category:   t.Category,
		})
	}
	return previews
}

func (s *TestService) DeleteTest(ctx context.Context, id uint) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	logger.Log.Info("Test deleted", zap.Uint("testID", id))
	return nil
}

// isExpected 业务错误不需要记录错误日志
func isExpected(err error) bool {
	for _, target := range []error{
		util.ErrTestNotFound,
		util.ErrCategoryNotFound,
		util.ErrCategoryInUse,
		util.ErrCategoryNameTaken,
		util.ErrUserNotFound,
		util.ErrUserNameTaken,
		util.ErrInvalidCredentials,
		util.ErrUserBlocked,
		util.ErrCannotModifySelf,
		util.ErrInvalidQuestionType,
		util.ErrPermissionDenied,
		util.ErrBlankName,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
