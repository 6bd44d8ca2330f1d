package service

import (
	"assessment_backend/internal/model"
	"strings"
)

type SubmittedAnswer struct {
	ID   *uint   `json:"id"`
	Text *string `json:"text" binding:"omitempty,max=1000"`
}

type SubmittedQuestion struct {
	QuestionID uint              `json:"questionId" binding:"required"`
	Answers    []SubmittedAnswer `json:"answers" binding:"dive"`
}

type GradeResult struct {
	Score     int
	FullScore int
}

// Grade 按题型判分，每道答对的题计 1 分。
// 满分为测试的题目数；不属于该测试的题目被忽略，同一题只计第一次作答。
func Grade(test *model.Test, submitted []SubmittedQuestion) GradeResult {
	questions := make(map[uint]*model.Question, len(test.Questions))
	for i := range test.Questions {
		questions[test.Questions[i].ID] = &test.Questions[i]
	}

	res := GradeResult{FullScore: len(test.Questions)}
	seen := make(map[uint]bool, len(submitted))
	for _, sq := range submitted {
		q, ok := questions[sq.QuestionID]
		if !ok || seen[sq.QuestionID] {
			continue
		}
		seen[sq.QuestionID] = true

		if judge(q, sq.Answers) {
			res.Score++
		}
	}
	return res
}

func judge(q *model.Question, answers []SubmittedAnswer) bool {
	switch q.Type {
	case model.QuestionSingle:
		chosen := chosenIDs(answers)
		if len(chosen) != 1 {
			return false
		}
		correct := q.CorrectAnswerIDs()
		for id := range chosen {
			_, ok := correct[id]
			return ok
		}
		return false
	case model.QuestionMultiple:
		return sameSet(chosenIDs(answers), q.CorrectAnswerIDs())
	case model.QuestionText:
		// 仅取第一个作答文本，忽略大小写与首尾空白
		if len(answers) == 0 || answers[0].Text == nil {
			return false
		}
		given := normalizeText(*answers[0].Text)
		for _, a := range q.Answers {
			if a.IsCorrect && normalizeText(a.Text) == given {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func chosenIDs(answers []SubmittedAnswer) map[uint]struct{} {
	ids := make(map[uint]struct{}, len(answers))
	for _, a := range answers {
		if a.ID != nil && *a.ID != 0 {
			ids[*a.ID] = struct{}{}
		}
	}
	return ids
}

func sameSet(a, b map[uint]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for id := range a {
		if _, ok := b[id]; !ok {
			return false
		}
	}
	return true
}

func normalizeText(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
