package service

import (
	"assessment_backend/internal/util"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategory_CRUD(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	math := f.category(t, "  Math ")
	assert.Equal(t, "Math", math.Name)

	_, err := f.categories.CreateCategory(ctx, CategoryReq{Name: "Math"})
	assert.ErrorIs(t, err, util.ErrCategoryNameTaken)
	_, err = f.categories.CreateCategory(ctx, CategoryReq{Name: "   "})
	assert.ErrorIs(t, err, util.ErrBlankName)

	geo := f.category(t, "Geo")
	_, err = f.categories.RenameCategory(ctx, geo.ID, CategoryReq{Name: "Math"})
	assert.ErrorIs(t, err, util.ErrCategoryNameTaken)

	renamed, err := f.categories.RenameCategory(ctx, geo.ID, CategoryReq{Name: "Geography"})
	require.NoError(t, err)
	assert.Equal(t, "Geography", renamed.Name)

	all, err := f.categories.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, f.categories.DeleteCategory(ctx, geo.ID))
	assert.ErrorIs(t, f.categories.DeleteCategory(ctx, geo.ID), util.ErrCategoryNotFound)
}

func TestCategory_DeleteRestrictedWhileReferenced(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cat := f.category(t, "Math")
	f.quiz(t, cat.ID, "Warmup")

	assert.ErrorIs(t, f.categories.DeleteCategory(ctx, cat.ID), util.ErrCategoryInUse)
	_, err := f.categories.GetCategory(ctx, cat.ID)
	assert.NoError(t, err)
}
