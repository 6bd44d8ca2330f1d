package repository

import (
	"assessment_backend/internal/model"
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TestResultRepository struct {
	DB *gorm.DB
}

func NewTestResultRepository(db *gorm.DB) *TestResultRepository {
	return &TestResultRepository{DB: db}
}

func (r *TestResultRepository) Create(ctx context.Context, result *model.TestResult) error {
	if err := r.DB.WithContext(ctx).Omit(clause.Associations).Create(result).Error; err != nil {
		return fmt.Errorf("create test result: %w", err)
	}
	return nil
}

func (r *TestResultRepository) withDetails(ctx context.Context) *gorm.DB {
	return r.DB.WithContext(ctx).
		Preload("User").
		Preload("Test").
		Preload("Test.Category").
		Order("test_results.id asc")
}

func (r *TestResultRepository) FindByID(ctx context.Context, id uint) (*model.TestResult, error) {
	var res model.TestResult
	err := r.withDetails(ctx).First(&res, id).Error
	return &res, err
}

func (r *TestResultRepository) ListByUser(ctx context.Context, userID uint) ([]model.TestResult, error) {
	var results []model.TestResult
	err := r.withDetails(ctx).Where("test_results.user_id = ?", userID).Find(&results).Error
	return results, err
}

func (r *TestResultRepository) ListByUserAndTest(ctx context.Context, userID, testID uint) ([]model.TestResult, error) {
	var results []model.TestResult
	err := r.withDetails(ctx).
		Where("test_results.user_id = ? AND test_results.test_id = ?", userID, testID).
		Find(&results).Error
	return results, err
}

func (r *TestResultRepository) ListByTest(ctx context.Context, testID uint) ([]model.TestResult, error) {
	var results []model.TestResult
	err := r.withDetails(ctx).Where("test_results.test_id = ?", testID).Find(&results).Error
	return results, err
}

type groupCount struct {
	GroupID uint  `gorm:"column:group_id"`
	Total   int64 `gorm:"column:total"`
}

func toCountMap(rows []groupCount) map[uint]int64 {
	m := make(map[uint]int64, len(rows))
	for _, row := range rows {
		m[row.GroupID] = row.Total
	}
	return m
}

// CountByUserCategory 该用户在每个分类下的成绩记录数（分类亲和度）
func (r *TestResultRepository) CountByUserCategory(ctx context.Context, userID uint) (map[uint]int64, error) {
	var rows []groupCount
	err := r.DB.WithContext(ctx).
		Table("test_results").
		Select("tests.category_id AS group_id, COUNT(*) AS total").
		Joins("JOIN tests ON tests.id = test_results.test_id").
		Where("test_results.user_id = ?", userID).
		Group("tests.category_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count results by category: %w", err)
	}
	return toCountMap(rows), nil
}

// CountByTest 全部用户在每个测试上的成绩记录数（热度）
func (r *TestResultRepository) CountByTest(ctx context.Context) (map[uint]int64, error) {
	var rows []groupCount
	err := r.DB.WithContext(ctx).
		Table("test_results").
		Select("test_id AS group_id, COUNT(*) AS total").
		Group("test_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count results by test: %w", err)
	}
	return toCountMap(rows), nil
}

// CompletedTestIDs 该用户已有成绩记录的测试
func (r *TestResultRepository) CompletedTestIDs(ctx context.Context, userID uint) (map[uint]struct{}, error) {
	var ids []uint
	err := r.DB.WithContext(ctx).
		Model(&model.TestResult{}).
		Where("user_id = ?", userID).
		Distinct().
		Pluck("test_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("list completed tests: %w", err)
	}
	set := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}
