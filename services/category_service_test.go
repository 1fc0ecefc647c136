package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryDeleteBlockedWhileFoodsReferenceIt(t *testing.T) {
	foods := newFakeFoodRepo()
	categories := newFakeCategoryRepo(foods)
	svc := NewCategoryService(categories, NewAppLogger(&fakeLogRepo{}))

	created, err := svc.Create(context.Background(), "Pizza")
	require.NoError(t, err)
	addFood(foods, "Margherita", "9.50")

	err = svc.Delete(context.Background(), created.ID)
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)

	delete(foods.foods, 1)
	require.NoError(t, svc.Delete(context.Background(), created.ID))

	err = svc.Delete(context.Background(), created.ID)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestCategoryNamesUniqueCaseInsensitive(t *testing.T) {
	categories := newFakeCategoryRepo(newFakeFoodRepo())
	svc := NewCategoryService(categories, NewAppLogger(&fakeLogRepo{}))

	_, err := svc.Create(context.Background(), "Pizza")
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), "  pizza  ")
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict, "names are trimmed and compared case-insensitively")

	created, err := svc.Create(context.Background(), "Drinks")
	require.NoError(t, err)
	renamed, err := svc.Update(context.Background(), created.ID, "DRINKS")
	require.NoError(t, err)
	assert.Equal(t, "DRINKS", renamed.Name)
}
