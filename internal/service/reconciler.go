package service

import (
	"assessment_backend/internal/model"
)

// PlanReconcile 计算把已持久化的测试变为 req 描述状态所需的最小变更。
// 仅按 ID 匹配题目与选项，列表中的位置不参与匹配；同一 ID 只能被认领一次，
// 重复出现或不属于该测试/题目的 ID 按新增处理。
func PlanReconcile(existing *model.Test, req TestReq) *model.TestChangeSet {
	cs := &model.TestChangeSet{
		TestID:         existing.ID,
		Name:           req.Name,
		CategoryID:     req.CategoryID,
		ScalarsChanged: existing.Name != req.Name || existing.CategoryID != req.CategoryID,
	}

	existingQs := make(map[uint]*model.Question, len(existing.Questions))
	for i := range existing.Questions {
		existingQs[existing.Questions[i].ID] = &existing.Questions[i]
	}

	keptQs := make(map[uint]bool, len(req.Questions))
	for _, qReq := range req.Questions {
		q := claim(existingQs, keptQs, qReq.ID)
		if q == nil {
			cs.QuestionInserts = append(cs.QuestionInserts, newQuestion(existing.ID, qReq))
			continue
		}

		if q.Text != qReq.Text || q.Type != qReq.Type {
			cs.QuestionUpdates = append(cs.QuestionUpdates, model.Question{
				BaseModel: model.BaseModel{ID: q.ID},
				TestID:    existing.ID,
				Text:      qReq.Text,
				Type:      qReq.Type,
			})
		}
		reconcileAnswers(cs, q, qReq.Answers)
	}

	for _, q := range existing.Questions {
		if !keptQs[q.ID] {
			cs.QuestionDeletes = append(cs.QuestionDeletes, q.ID)
		}
	}

	return cs
}

func reconcileAnswers(cs *model.TestChangeSet, q *model.Question, reqs []AnswerReq) {
	existingAs := make(map[uint]*model.Answer, len(q.Answers))
	for i := range q.Answers {
		existingAs[q.Answers[i].ID] = &q.Answers[i]
	}

	keptAs := make(map[uint]bool, len(reqs))
	for _, aReq := range reqs {
		a := claim(existingAs, keptAs, aReq.ID)
		if a == nil {
			cs.AnswerInserts = append(cs.AnswerInserts, model.Answer{
				QuestionID: q.ID,
				Text:       aReq.Text,
				IsCorrect:  aReq.IsCorrect,
			})
			continue
		}

		if a.Text != aReq.Text || a.IsCorrect != aReq.IsCorrect {
			cs.AnswerUpdates = append(cs.AnswerUpdates, model.Answer{
				BaseModel:  model.BaseModel{ID: a.ID},
				QuestionID: q.ID,
				Text:       aReq.Text,
				IsCorrect:  aReq.IsCorrect,
			})
		}
	}

	for _, a := range q.Answers {
		if !keptAs[a.ID] {
			cs.AnswerDeletes = append(cs.AnswerDeletes, a.ID)
		}
	}
}

// claim 返回 id 对应且尚未被认领的已有实体
func claim[T any](existing map[uint]*T, kept map[uint]bool, id *uint) *T {
	if id == nil || kept[*id] {
		return nil
	}
	e, ok := existing[*id]
	if !ok {
		return nil
	}
	kept[*id] = true
	return e
}

func newQuestion(testID uint, qReq QuestionReq) model.Question {
	q := model.Question{
		TestID:  testID,
		Text:    qReq.Text,
		Type:    qReq.Type,
		Answers: make([]model.Answer, 0, len(qReq.Answers)),
	}
	for _, aReq := range qReq.Answers {
		q.Answers = append(q.Answers, model.Answer{
			Text:      aReq.Text,
			IsCorrect: aReq.IsCorrect,
		})
	}
	return q
}
