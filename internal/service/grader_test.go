package service

import (
	"assessment_backend/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
)

func strp(s string) *string { return &s }

// gradingTest 题目 1 单选（A=11 正确），题目 2 多选（21、22 正确，23 错误），题目 3 文本（Paris）
func gradingTest() *model.Test {
	return &model.Test{
		BaseModel: model.BaseModel{ID: 7},
		Questions: []model.Question{
			{BaseModel: model.BaseModel{ID: 1}, Type: model.QuestionSingle, Answers: []model.Answer{
				{BaseModel: model.BaseModel{ID: 11}, IsCorrect: true},
				{BaseModel: model.BaseModel{ID: 12}},
			}},
			{BaseModel: model.BaseModel{ID: 2}, Type: model.QuestionMultiple, Answers: []model.Answer{
				{BaseModel: model.BaseModel{ID: 21}, IsCorrect: true},
				{BaseModel: model.BaseModel{ID: 22}, IsCorrect: true},
				{BaseModel: model.BaseModel{ID: 23}},
			}},
			{BaseModel: model.BaseModel{ID: 3}, Type: model.QuestionText, Answers: []model.Answer{
				{BaseModel: model.BaseModel{ID: 31}, Text: "Paris", IsCorrect: true},
				{BaseModel: model.BaseModel{ID: 32}, Text: "Lyon"},
			}},
		},
	}
}

func byIDs(qid uint, ids ...uint) SubmittedQuestion {
	sq := SubmittedQuestion{QuestionID: qid}
	for _, id := range ids {
		sq.Answers = append(sq.Answers, SubmittedAnswer{ID: idp(id)})
	}
	return sq
}

func byText(qid uint, texts ...string) SubmittedQuestion {
	sq := SubmittedQuestion{QuestionID: qid}
	for _, s := range texts {
		sq.Answers = append(sq.Answers, SubmittedAnswer{Text: strp(s)})
	}
	return sq
}

func TestGrade_Single(t *testing.T) {
	test := gradingTest()
	cases := []struct {
		name string
		ids  []uint
		want int
	}{
		{"correct", []uint{11}, 1},
		{"wrong", []uint{12}, 0},
		{"two chosen", []uint{11, 12}, 0},
		{"duplicate id counts once", []uint{11, 11}, 1},
		{"nothing chosen", nil, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := Grade(test, []SubmittedQuestion{byIDs(1, tc.ids...)})
			assert.Equal(t, tc.want, res.Score)
		})
	}
}

func TestGrade_Multiple(t *testing.T) {
	test := gradingTest()
	cases := []struct {
		name string
		ids  []uint
		want int
	}{
		{"exact set", []uint{22, 21}, 1},
		{"missing one", []uint{21}, 0},
		{"extra one", []uint{21, 22, 23}, 0},
		{"ids from another question", []uint{21, 22, 11}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := Grade(test, []SubmittedQuestion{byIDs(2, tc.ids...)})
			assert.Equal(t, tc.want, res.Score)
		})
	}
}

func TestGrade_Text(t *testing.T) {
	test := gradingTest()
	cases := []struct {
		name  string
		texts []string
		want  int
	}{
		{"case and whitespace insensitive", []string{"  paris "}, 1},
		{"typo", []string{"Pariss"}, 0},
		{"incorrect option text", []string{"lyon"}, 0},
		{"only first entry counts", []string{"Lyon", "Paris"}, 0},
		{"empty", []string{"   "}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := Grade(test, []SubmittedQuestion{byText(3, tc.texts...)})
			assert.Equal(t, tc.want, res.Score)
		})
	}

	res := Grade(test, []SubmittedQuestion{{QuestionID: 3, Answers: []SubmittedAnswer{{ID: idp(31)}}}})
	assert.Equal(t, 0, res.Score, "text question answered without text")
}

func TestGrade_FullScoreIsQuestionCount(t *testing.T) {
	test := gradingTest()
	test.Questions = append(test.Questions,
		model.Question{BaseModel: model.BaseModel{ID: 4}, Type: model.QuestionSingle},
		model.Question{BaseModel: model.BaseModel{ID: 5}, Type: model.QuestionSingle},
	)

	res := Grade(test, []SubmittedQuestion{byIDs(1, 11), byText(3, "paris")})
	assert.Equal(t, 5, res.FullScore)
	assert.Equal(t, 2, res.Score)
}

func TestGrade_UnknownAndRepeatedQuestions(t *testing.T) {
	test := gradingTest()
	res := Grade(test, []SubmittedQuestion{
		byIDs(999, 1),
		byIDs(1, 11),
		byIDs(1, 11),
		byIDs(1, 11),
		byIDs(1, 11),
	})
	assert.Equal(t, 1, res.Score)
	assert.LessOrEqual(t, res.Score, res.FullScore)
}

func TestGrade_Deterministic(t *testing.T) {
	test := gradingTest()
	sub := []SubmittedQuestion{byIDs(2, 21, 22), byText(3, "PARIS"), byIDs(1, 12)}
	reversed := []SubmittedQuestion{sub[2], sub[1], sub[0]}

	first := Grade(test, sub)
	assert.Equal(t, first, Grade(test, sub))
	assert.Equal(t, first, Grade(test, reversed))
	assert.Equal(t, GradeResult{Score: 2, FullScore: 3}, first)
}
