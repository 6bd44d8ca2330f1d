package repository

import (
	"assessment_backend/internal/model"
	"assessment_backend/internal/util"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TestRepository struct {
	DB *gorm.DB
}

func NewTestRepository(db *gorm.DB) *TestRepository {
	return &TestRepository{DB: db}
}

// ApplyStats 实际写入的行数
type ApplyStats struct {
	QuestionsInserted int
	QuestionsUpdated  int
	QuestionsDeleted  int
	AnswersInserted   int
	AnswersUpdated    int
	AnswersDeleted    int
}

// Create 写入测试及其题目、选项；调用方负责开启事务
func (r *TestRepository) Create(ctx context.Context, test *model.Test) error {
	db := r.DB.WithContext(ctx)

	questions := test.Questions
	test.Questions = nil
	test.Category = nil
	if err := db.Omit(clause.Associations).Create(test).Error; err != nil {
		return fmt.Errorf("create test: %w", err)
	}

	for i := range questions {
		questions[i].TestID = test.ID
		if err := insertQuestion(db, &questions[i]); err != nil {
			return err
		}
	}
	test.Questions = questions
	return nil
}

func insertQuestion(db *gorm.DB, q *model.Question) error {
	answers := q.Answers
	q.Answers = nil
	if err := db.Omit(clause.Associations).Create(q).Error; err != nil {
		return fmt.Errorf("create question: %w", err)
	}
	for i := range answers {
		answers[i].QuestionID = q.ID
	}
	if len(answers) > 0 {
		if err := db.Create(&answers).Error; err != nil {
			return fmt.Errorf("create answers: %w", err)
		}
	}
	q.Answers = answers
	return nil
}

// FindAggregate 加载测试及其分类、题目、选项
func (r *TestRepository) FindAggregate(ctx context.Context, id uint) (*model.Test, error) {
	var test model.Test
	err := r.DB.WithContext(ctx).
		Preload("Category").
		Preload("Questions", func(db *gorm.DB) *gorm.DB { return db.Order("questions.id asc") }).
		Preload("Questions.Answers", func(db *gorm.DB) *gorm.DB { return db.Order("answers.id asc") }).
		First(&test, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrTestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load test %d: %w", id, err)
	}
	return &test, nil
}

// Exists 在事务内锁定前的存在性检查
func (r *TestRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Test{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// List 按 ID 升序返回全部测试（含分类，不含题目）
func (r *TestRepository) List(ctx context.Context) ([]model.Test, error) {
	var tests []model.Test
	err := r.DB.WithContext(ctx).Preload("Category").Order("tests.id asc").Find(&tests).Error
	return tests, err
}

// ApplyChangeSet 按 删除 → 更新 → 插入 的顺序写入变更；调用方负责开启事务
func (r *TestRepository) ApplyChangeSet(ctx context.Context, cs *model.TestChangeSet) (ApplyStats, error) {
	db := r.DB.WithContext(ctx)
	var stats ApplyStats

	if cs.ScalarsChanged {
		if err := db.Model(&model.Test{}).Where("id = ?", cs.TestID).Updates(map[string]interface{}{
			"name":        cs.Name,
			"category_id": cs.CategoryID,
		}).Error; err != nil {
			return stats, fmt.Errorf("update test: %w", err)
		}
	}

	if len(cs.AnswerDeletes) > 0 {
		res := db.Where("id IN ?", cs.AnswerDeletes).Delete(&model.Answer{})
		if res.Error != nil {
			return stats, fmt.Errorf("delete answers: %w", res.Error)
		}
		stats.AnswersDeleted += int(res.RowsAffected)
	}

	if len(cs.QuestionDeletes) > 0 {
		n, err := deleteQuestions(db, cs.QuestionDeletes)
		if err != nil {
			return stats, err
		}
		stats.QuestionsDeleted += len(cs.QuestionDeletes)
		stats.AnswersDeleted += n
	}

	for _, q := range cs.QuestionUpdates {
		if err := db.Model(&model.Question{}).Where("id = ?", q.ID).Updates(map[string]interface{}{
			"text": q.Text,
			"type": q.Type,
		}).Error; err != nil {
			return stats, fmt.Errorf("update question %d: %w", q.ID, err)
		}
		stats.QuestionsUpdated++
	}

	for _, a := range cs.AnswerUpdates {
		if err := db.Model(&model.Answer{}).Where("id = ?", a.ID).Updates(map[string]interface{}{
			"text":       a.Text,
			"is_correct": a.IsCorrect,
		}).Error; err != nil {
			return stats, fmt.Errorf("update answer %d: %w", a.ID, err)
		}
		stats.AnswersUpdated++
	}

	for i := range cs.QuestionInserts {
		q := &cs.QuestionInserts[i]
		q.TestID = cs.TestID
		if err := insertQuestion(db, q); err != nil {
			return stats, err
		}
		stats.QuestionsInserted++
		stats.AnswersInserted += len(q.Answers)
	}

	if len(cs.AnswerInserts) > 0 {
		if err := db.Create(&cs.AnswerInserts).Error; err != nil {
			return stats, fmt.Errorf("create answers: %w", err)
		}
		stats.AnswersInserted += len(cs.AnswerInserts)
	}

	return stats, nil
}

// deleteQuestions 先删除题目下的选项，再删除题目本身
func deleteQuestions(db *gorm.DB, ids []uint) (int, error) {
	res := db.Where("question_id IN ?", ids).Delete(&model.Answer{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete answers of questions: %w", res.Error)
	}
	if err := db.Where("id IN ?", ids).Delete(&model.Question{}).Error; err != nil {
		return 0, fmt.Errorf("delete questions: %w", err)
	}
	return int(res.RowsAffected), nil
}

// Delete 删除测试及其题目、选项、成绩记录
func (r *TestRepository) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var test model.Test
		if err := tx.Select("id").First(&test, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return util.ErrTestNotFound
			}
			return err
		}

		var questionIDs []uint
		if err := tx.Model(&model.Question{}).Where("test_id = ?", id).Pluck("id", &questionIDs).Error; err != nil {
			return err
		}
		if len(questionIDs) > 0 {
			if _, err := deleteQuestions(tx, questionIDs); err != nil {
				return err
			}
		}
		if err := tx.Where("test_id = ?", id).Delete(&model.TestResult{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Test{}, id).Error
	})
}
