package service

import (
	"assessment_backend/internal/model"
	"sort"
)

// RankInput 排序所需的全部数据，均由存储层预先聚合
type RankInput struct {
	Catalog    []model.Test
	Completed  map[uint]struct{} // 该用户已完成的测试
	Affinity   map[uint]int64    // 分类 ID -> 该用户在该分类下的成绩数
	Popularity map[uint]int64    // 测试 ID -> 全部用户的成绩数
	Limit      int
}

// RankTests 过滤已完成的测试，按分类亲和度、再按热度降序排列，返回前 Limit 个。
// 两个键都相同时保持目录原有顺序。
func RankTests(in RankInput) []model.Test {
	candidates := make([]model.Test, 0, len(in.Catalog))
	for _, t := range in.Catalog {
		if _, done := in.Completed[t.ID]; done {
			continue
		}
		candidates = append(candidates, t)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		ai, aj := in.Affinity[candidates[i].CategoryID], in.Affinity[candidates[j].CategoryID]
		if ai != aj {
			return ai > aj
		}
		return in.Popularity[candidates[i].ID] > in.Popularity[candidates[j].ID]
	})

	if in.Limit >= 0 && len(candidates) > in.Limit {
		candidates = candidates[:in.Limit]
	}
	return candidates
}
