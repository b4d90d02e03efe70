package seed

import (
	"strings"
	"testing"

	"inkwell/internal/models"
	"inkwell/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactoryCreateUser(t *testing.T) {
	db := testutil.OpenTestDB(t)
	f := NewFactory(db)

	user, err := f.CreateUser()
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEmpty(t, user.Email)
	assert.NotEqual(t, "password123", user.Password)
}

func TestFactoryCreateUserOverride(t *testing.T) {
	db := testutil.OpenTestDB(t)
	f := NewFactory(db)

	user, err := f.CreateUser(func(u *models.User) {
		u.Email = "fixed@example.com"
	})
	require.NoError(t, err)
	assert.Equal(t, "fixed@example.com", user.Email)
}

func TestFactoryCreatePostAttachesNormalizedTags(t *testing.T) {
	db := testutil.OpenTestDB(t)
	f := NewFactory(db)

	post, err := f.CreatePost("alice")
	require.NoError(t, err)
	require.NotZero(t, post.ID)
	require.NotEmpty(t, post.Tags)
	for _, tag := range post.Tags {
		assert.NotEmpty(t, tag.Name)
		assert.Equal(t, strings.ToLower(tag.Name), tag.Name)
	}
}

func TestSeederRunRespectsUserCap(t *testing.T) {
	db := testutil.OpenTestDB(t)
	s := NewSeeder(db)

	require.NoError(t, s.Run(Options{NumUsers: 10, NumPosts: 4, MaxUsers: 2}))

	var userCount int64
	require.NoError(t, db.Model(&models.User{}).Count(&userCount).Error)
	assert.Equal(t, int64(2), userCount)

	var postCount int64
	require.NoError(t, db.Model(&models.Post{}).Count(&postCount).Error)
	assert.Equal(t, int64(4), postCount)
}

func TestSeederClearAll(t *testing.T) {
	db := testutil.OpenTestDB(t)
	s := NewSeeder(db)

	require.NoError(t, s.Run(Options{NumUsers: 2, NumPosts: 3, MaxUsers: 2}))
	require.NoError(t, s.ClearAll())

	for _, model := range []any{&models.User{}, &models.Post{}, &models.Tag{}} {
		var n int64
		require.NoError(t, db.Model(model).Count(&n).Error)
		assert.Equal(t, int64(0), n)
	}
}
