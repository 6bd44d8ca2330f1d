package repository

import (
	"assessment_backend/internal/model"
	"assessment_backend/internal/util"
	"assessment_backend/pkg/database"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenMemory(t.Name())
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func seedTest(t *testing.T, db *gorm.DB, categoryID uint, name string) *model.Test {
	t.Helper()
	test := &model.Test{
		Name:       name,
		CategoryID: categoryID,
		Questions: []model.Question{
			{Text: "q1", Type: model.QuestionSingle, Answers: []model.Answer{{Text: "a", IsCorrect: true}, {Text: "b"}}},
			{Text: "q2", Type: model.QuestionText, Answers: []model.Answer{{Text: "x", IsCorrect: true}}},
		},
	}
	require.NoError(t, NewTestRepository(db).Create(context.Background(), test))
	return test
}

func seedResult(t *testing.T, db *gorm.DB, testID, userID uint) {
	t.Helper()
	require.NoError(t, NewTestResultRepository(db).Create(context.Background(), &model.TestResult{
		TestID:    testID,
		UserID:    userID,
		FullScore: 2,
		TimeStart: time.Now(),
		TimeEnd:   time.Now(),
	}))
}

func TestTestRepository_CreateAndLoad(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	cat := &model.Category{Name: "Math"}
	require.NoError(t, NewCategoryRepository(db).Create(ctx, cat))

	created := seedTest(t, db, cat.ID, "Warmup")
	assert.NotZero(t, created.ID)
	for _, q := range created.Questions {
		assert.Equal(t, created.ID, q.TestID)
		for _, a := range q.Answers {
			assert.Equal(t, q.ID, a.QuestionID)
		}
	}

	loaded, err := NewTestRepository(db).FindAggregate(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Math", loaded.Category.Name)
	require.Len(t, loaded.Questions, 2)
	assert.Len(t, loaded.Questions[0].Answers, 2)

	_, err = NewTestRepository(db).FindAggregate(ctx, 404)
	assert.ErrorIs(t, err, util.ErrTestNotFound)
}

func TestTestRepository_ApplyChangeSetStats(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	cat := &model.Category{Name: "Math"}
	require.NoError(t, NewCategoryRepository(db).Create(ctx, cat))
	test := seedTest(t, db, cat.ID, "Warmup")
	q1, q2 := test.Questions[0], test.Questions[1]

	cs := &model.TestChangeSet{
		TestID:          test.ID,
		Name:            "Renamed",
		CategoryID:      cat.ID,
		ScalarsChanged:  true,
		QuestionUpdates: []model.Question{{BaseModel: model.BaseModel{ID: q1.ID}, Text: "q1'", Type: model.QuestionMultiple}},
		QuestionDeletes: []uint{q2.ID},
		QuestionInserts: []model.Question{{Text: "q3", Type: model.QuestionSingle, Answers: []model.Answer{{Text: "c"}}}},
		AnswerUpdates:   []model.Answer{{BaseModel: model.BaseModel{ID: q1.Answers[1].ID}, QuestionID: q1.ID, Text: "b'", IsCorrect: true}},
		AnswerDeletes:   []uint{q1.Answers[0].ID},
		AnswerInserts:   []model.Answer{{QuestionID: q1.ID, Text: "d"}},
	}

	var stats ApplyStats
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		stats, err = NewTestRepository(tx).ApplyChangeSet(ctx, cs)
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, ApplyStats{
		QuestionsInserted: 1,
		QuestionsUpdated:  1,
		QuestionsDeleted:  1,
		AnswersInserted:   2,
		AnswersUpdated:    1,
		AnswersDeleted:    2,
	}, stats)

	loaded, err := NewTestRepository(db).FindAggregate(ctx, test.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", loaded.Name)
	require.Len(t, loaded.Questions, 2)
	assert.Equal(t, model.QuestionMultiple, loaded.Questions[0].Type)
	require.Len(t, loaded.Questions[0].Answers, 2)
	assert.Equal(t, "b'", loaded.Questions[0].Answers[0].Text)
	assert.Equal(t, "d", loaded.Questions[0].Answers[1].Text)
	assert.Equal(t, "q3", loaded.Questions[1].Text)
}

func TestTestResultRepository_Aggregates(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	cats := NewCategoryRepository(db)
	x, y := &model.Category{Name: "X"}, &model.Category{Name: "Y"}
	require.NoError(t, cats.Create(ctx, x))
	require.NoError(t, cats.Create(ctx, y))

	users := NewUserRepository(db)
	alice, bob := &model.User{Name: "alice", PasswordHash: "h"}, &model.User{Name: "bob", PasswordHash: "h"}
	require.NoError(t, users.Create(ctx, alice))
	require.NoError(t, users.Create(ctx, bob))

	tx1, tx2, ty := seedTest(t, db, x.ID, "x1"), seedTest(t, db, x.ID, "x2"), seedTest(t, db, y.ID, "y1")
	seedResult(t, db, tx1.ID, alice.ID)
	seedResult(t, db, tx1.ID, alice.ID)
	seedResult(t, db, tx2.ID, alice.ID)
	seedResult(t, db, ty.ID, bob.ID)

	results := NewTestResultRepository(db)

	affinity, err := results.CountByUserCategory(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, map[uint]int64{x.ID: 3}, affinity)

	popularity, err := results.CountByTest(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[uint]int64{tx1.ID: 2, tx2.ID: 1, ty.ID: 1}, popularity)

	completed, err := results.CompletedTestIDs(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, map[uint]struct{}{tx1.ID: {}, tx2.ID: {}}, completed)
}

func TestUserRepository_NotFound(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	users := NewUserRepository(db)

	require.NoError(t, users.Create(ctx, &model.User{Name: "alice", PasswordHash: "h"}))
	_, err := users.FindByName(ctx, "bob")
	assert.ErrorIs(t, err, util.ErrUserNotFound)
	assert.ErrorIs(t, users.Delete(ctx, 404), util.ErrUserNotFound)
}
