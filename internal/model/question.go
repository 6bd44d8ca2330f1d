package model

import "fmt"

// QuestionType 题型，按整数存储与传输：0 单选，1 多选，2 文本
type QuestionType int

const (
	QuestionSingle QuestionType = iota
	QuestionMultiple
	QuestionText
)

func (t QuestionType) Valid() bool {
	switch t {
	case QuestionSingle, QuestionMultiple, QuestionText:
		return true
	}
	return false
}

func (t QuestionType) String() string {
	switch t {
	case QuestionSingle:
		return "single"
	case QuestionMultiple:
		return "multiple"
	case QuestionText:
		return "text"
	}
	return fmt.Sprintf("QuestionType(%d)", int(t))
}

// swagger:model Question
type Question struct {
	BaseModel
	TestID  uint         `gorm:"index;not null" json:"testId"`
	Text    string       `gorm:"size:1000;not null" json:"text"`
	Type    QuestionType `gorm:"type:smallint;not null" json:"type"`
	Answers []Answer     `gorm:"foreignKey:QuestionID" json:"answers"`
}

func (Question) TableName() string {
	return "questions"
}

// CorrectAnswerIDs 返回标记为正确的选项 ID 集合
func (q *Question) CorrectAnswerIDs() map[uint]struct{} {
	ids := make(map[uint]struct{})
	for _, a := range q.Answers {
		if a.IsCorrect {
			ids[a.ID] = struct{}{}
		}
	}
	return ids
}
