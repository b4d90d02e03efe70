package repository

import (
	"context"
	"testing"

	"inkwell/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrCreateReturnsExisting(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := NewTagRepository(db)
	ctx := context.Background()

	first, err := repo.GetOrCreate(ctx, "go")
	require.NoError(t, err)
	require.NotZero(t, first.ID)

	second, err := repo.GetOrCreate(ctx, "go")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestGetOrCreateDistinctNames(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := NewTagRepository(db)
	ctx := context.Background()

	a, err := repo.GetOrCreate(ctx, "go")
	require.NoError(t, err)
	b, err := repo.GetOrCreate(ctx, "rust")
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestListOrdersByName(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := NewTagRepository(db)
	ctx := context.Background()

	for _, name := range []string{"zebra", "alpha", "mango"} {
		_, err := repo.GetOrCreate(ctx, name)
		require.NoError(t, err)
	}

	tags, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, tags, 3)
	assert.Equal(t, "alpha", tags[0].Name)
	assert.Equal(t, "zebra", tags[2].Name)
}
