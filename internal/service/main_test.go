package service

import (
	"assessment_backend/internal/config"
	"assessment_backend/internal/model"
	"assessment_backend/internal/repository"
	"assessment_backend/pkg/database"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db          *gorm.DB
	tests       *TestService
	results     *TestResultService
	recommender *RecommendationService
	categories  *CategoryService
	users       *UserService
	auth        *AuthService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := database.OpenMemory(t.Name())
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	testRepo := repository.NewTestRepository(db)
	resultRepo := repository.NewTestResultRepository(db)
	userRepo := repository.NewUserRepository(db)
	cfg := &config.Config{JWT: config.JWTConfig{Secret: "test-secret", ExpireTime: time.Minute}}

	return &fixture{
		db:          db,
		tests:       NewTestService(testRepo, db),
		results:     NewTestResultService(resultRepo, testRepo, db),
		recommender: NewRecommendationService(db, config.RecommendationConfig{DefaultLimit: 3, MaxLimit: 5}),
		categories:  NewCategoryService(repository.NewCategoryRepository(db)),
		users:       NewUserService(userRepo),
		auth:        NewAuthService(userRepo, cfg),
	}
}

func (f *fixture) category(t *testing.T, name string) *model.Category {
	t.Helper()
	c, err := f.categories.CreateCategory(context.Background(), CategoryReq{Name: name})
	require.NoError(t, err)
	return c
}

func (f *fixture) user(t *testing.T, name string) *model.User {
	t.Helper()
	u, err := f.auth.Register(context.Background(), RegisterReq{Name: name, Password: "secret123"}, false)
	require.NoError(t, err)
	return u
}

// quiz 创建一个包含单选题与文本题的测试
func (f *fixture) quiz(t *testing.T, categoryID uint, name string) *model.Test {
	t.Helper()
	test, err := f.tests.CreateTest(context.Background(), TestReq{
		Name:       name,
		CategoryID: categoryID,
		Questions: []QuestionReq{
			{
				Text: "2 + 2",
				Type: model.QuestionSingle,
				Answers: []AnswerReq{
					{Text: "4", IsCorrect: true},
					{Text: "5"},
				},
			},
			{
				Text: "Capital of France",
				Type: model.QuestionText,
				Answers: []AnswerReq{
					{Text: "Paris", IsCorrect: true},
				},
			},
		},
	})
	require.NoError(t, err)
	return test
}

func (f *fixture) submit(t *testing.T, testID, userID uint) *model.TestResult {
	t.Helper()
	now := time.Now()
	res, err := f.results.SubmitResult(context.Background(), testID, userID, SubmissionReq{
		TimeStart: now.Add(-time.Minute),
		TimeEnd:   now,
	})
	require.NoError(t, err)
	return res
}
