package model

import "time"

// TestResult 只追加，创建后不再修改
// swagger:model TestResult
type TestResult struct {
	BaseModel
	TestID    uint      `gorm:"index;not null" json:"testId"`
	Test      *Test     `gorm:"foreignKey:TestID" json:"test,omitempty"`
	UserID    uint      `gorm:"index;not null" json:"userId"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Score     int       `gorm:"not null;default:0" json:"score"`
	FullScore int       `gorm:"not null" json:"fullScore"`
	TimeStart time.Time `json:"timeStart"`
	TimeEnd   time.Time `json:"timeEnd"`
}

func (TestResult) TableName() string {
	return "test_results"
}
