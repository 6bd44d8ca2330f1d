package model

// TestChangeSet 一次测试定义更新需要写入的全部行级变更
type TestChangeSet struct {
	TestID     uint
	Name       string
	CategoryID uint
	// ScalarsChanged 名称或分类发生变化
	ScalarsChanged bool

	QuestionInserts []Question // 连同 Answers 一起插入
	QuestionUpdates []Question
	QuestionDeletes []uint

	AnswerInserts []Answer // QuestionID 指向已存在的题目
	AnswerUpdates []Answer
	AnswerDeletes []uint
}

// NewAnswerCount 将要插入的选项总数（含新题目附带的选项）
func (cs *TestChangeSet) NewAnswerCount() int {
	n := len(cs.AnswerInserts)
	for _, q := range cs.QuestionInserts {
		n += len(q.Answers)
	}
	return n
}

// Empty 没有任何题目或选项行需要写入
func (cs *TestChangeSet) Empty() bool {
	return len(cs.QuestionInserts) == 0 &&
		len(cs.QuestionUpdates) == 0 &&
		len(cs.QuestionDeletes) == 0 &&
		len(cs.AnswerInserts) == 0 &&
		len(cs.AnswerUpdates) == 0 &&
		len(cs.AnswerDeletes) == 0
}
