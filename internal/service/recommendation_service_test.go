package service

import (
	"assessment_backend/internal/config"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func previewIDs(previews []TestPreview) []uint {
	ids := make([]uint, 0, len(previews))
	for _, p := range previews {
		ids = append(ids, p.ID)
	}
	return ids
}

func TestRecommend_AffinityThenPopularity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	x, y := f.category(t, "X"), f.category(t, "Y")
	alice, bob, carol := f.user(t, "alice"), f.user(t, "bob"), f.user(t, "carol")

	x1, x2, x3 := f.quiz(t, x.ID, "x1"), f.quiz(t, x.ID, "x2"), f.quiz(t, x.ID, "x3")
	y1, y2 := f.quiz(t, y.ID, "y1"), f.quiz(t, y.ID, "y2")

	// alice: X 亲和度 2，Y 亲和度 1
	f.submit(t, x1.ID, alice.ID)
	f.submit(t, x2.ID, alice.ID)
	f.submit(t, y1.ID, alice.ID)

	// y2 比 x3 更热门
	f.submit(t, y2.ID, bob.ID)
	f.submit(t, y2.ID, carol.ID)

	got, err := f.recommender.Recommend(ctx, alice.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, []uint{x3.ID, y2.ID}, previewIDs(got))
	assert.Equal(t, "x3", got[0].Name)
	assert.Equal(t, x.ID, got[0].CategoryID)
}

func TestRecommend_ExcludesCompletedRegardlessOfScore(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cat := f.category(t, "Math")
	alice := f.user(t, "alice")
	done := f.quiz(t, cat.ID, "done")
	open := f.quiz(t, cat.ID, "open")

	res := f.submit(t, done.ID, alice.ID)
	require.Zero(t, res.Score)

	got, err := f.recommender.Recommend(ctx, alice.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, []uint{open.ID}, previewIDs(got))
}

func TestRecommend_Limits(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cat := f.category(t, "Math")
	alice := f.user(t, "alice")
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		f.quiz(t, cat.ID, name)
	}

	got, err := f.recommender.Recommend(ctx, alice.ID, 0)
	require.NoError(t, err)
	assert.Len(t, got, 3)

	got, err = f.recommender.Recommend(ctx, alice.ID, 100)
	require.NoError(t, err)
	assert.Len(t, got, 5)

	f.recommender.ApplyConfig(config.RecommendationConfig{DefaultLimit: 1, MaxLimit: 6})
	got, err = f.recommender.Recommend(ctx, alice.ID, -1)
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, 6, f.recommender.EffectiveLimit(100))
}

func TestApplyConfig_Normalizes(t *testing.T) {
	s := NewRecommendationService(nil, config.RecommendationConfig{DefaultLimit: 0, MaxLimit: 1})
	assert.Equal(t, 3, s.EffectiveLimit(0))
	assert.Equal(t, 3, s.EffectiveLimit(50))
	assert.Equal(t, 2, s.EffectiveLimit(2))
}
