package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"newsfeed/internal/database"
	"newsfeed/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.ConnectTest()
	require.NoError(t, err)
	return db
}

func createUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()
	user := &models.User{
		Username: name,
		Email:    fmt.Sprintf("%s@example.com", name),
		Password: "hash",
	}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), user))
	return user
}

func TestPostCreateAndGetByID(t *testing.T) {
	db := setupDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	author := createUser(t, db, "alice")

	post := &models.Post{Title: "A", Body: "B", UserID: author.ID}
	require.NoError(t, repo.Create(ctx, post))
	require.NotZero(t, post.ID)

	got, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", got.Title)
	assert.Equal(t, "B", got.Body)
	assert.Equal(t, author.ID, got.UserID)
	assert.Equal(t, "alice", got.User.Username)
	assert.Equal(t, 0, got.LikesCount)
}

func TestPostGetByIDNotFound(t *testing.T) {
	db := setupDB(t)
	repo := NewPostRepository(db)

	_, err := repo.GetByID(context.Background(), 999)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeNotFound, appErr.Kind)
}

func TestPostListNewestFirst(t *testing.T) {
	db := setupDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	author := createUser(t, db, "bob")

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(ctx, &models.Post{
			Title:  fmt.Sprintf("post %d", i),
			Body:   "body",
			UserID: author.ID,
		}))
	}

	posts, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	for _, p := range posts {
		assert.Equal(t, "bob", p.User.Username)
	}
}

func TestPostUpdatePersistsFields(t *testing.T) {
	db := setupDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	author := createUser(t, db, "carol")

	post := &models.Post{Title: "old", Body: "old", UserID: author.ID}
	require.NoError(t, repo.Create(ctx, post))

	post.Title = "new"
	require.NoError(t, repo.Update(ctx, post))

	got, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "new", got.Title)
}

func TestPostDeleteCascadesLikes(t *testing.T) {
	db := setupDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	author := createUser(t, db, "dave")
	liker := createUser(t, db, "erin")

	post := &models.Post{Title: "t", Body: "b", UserID: author.ID}
	require.NoError(t, repo.Create(ctx, post))
	require.NoError(t, repo.InsertLike(ctx, liker.ID, post.ID))

	require.NoError(t, repo.Delete(ctx, post.ID))

	_, err := repo.GetByID(ctx, post.ID)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeNotFound, appErr.Kind)

	var likeCount int64
	require.NoError(t, db.Model(&models.Like{}).Where("post_id = ?", post.ID).Count(&likeCount).Error)
	assert.Zero(t, likeCount, "likes are removed together with the post")
}

func TestPostDeleteMissing(t *testing.T) {
	db := setupDB(t)
	repo := NewPostRepository(db)

	err := repo.Delete(context.Background(), 999)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeNotFound, appErr.Kind)
}

func TestInsertLikeDuplicateRejectedByUniqueIndex(t *testing.T) {
	db := setupDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	author := createUser(t, db, "frank")
	liker := createUser(t, db, "grace")

	post := &models.Post{Title: "t", Body: "b", UserID: author.ID}
	require.NoError(t, repo.Create(ctx, post))

	require.NoError(t, repo.InsertLike(ctx, liker.ID, post.ID))

	// A second insert for the same pair bypasses any application-level check
	// and must be rejected by the store's unique index.
	err := repo.InsertLike(ctx, liker.ID, post.ID)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeConflict, appErr.Kind)

	var likeCount int64
	require.NoError(t, db.Model(&models.Like{}).
		Where("user_id = ? AND post_id = ?", liker.ID, post.ID).
		Count(&likeCount).Error)
	assert.Equal(t, int64(1), likeCount, "exactly one like row persists")

	got, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.LikesCount)
}

func TestHasLiked(t *testing.T) {
	db := setupDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	author := createUser(t, db, "heidi")
	liker := createUser(t, db, "ivan")

	post := &models.Post{Title: "t", Body: "b", UserID: author.ID}
	require.NoError(t, repo.Create(ctx, post))

	liked, err := repo.HasLiked(ctx, liker.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	require.NoError(t, repo.InsertLike(ctx, liker.ID, post.ID))

	liked, err = repo.HasLiked(ctx, liker.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, liked)
}

func TestDeleteLikeWithoutExistingLike(t *testing.T) {
	db := setupDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	author := createUser(t, db, "judy")
	stranger := createUser(t, db, "karl")

	post := &models.Post{Title: "t", Body: "b", UserID: author.ID}
	require.NoError(t, repo.Create(ctx, post))

	err := repo.DeleteLike(ctx, stranger.ID, post.ID)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeNoSuchElement, appErr.Kind)
}

func TestDeleteLikeRemovesRow(t *testing.T) {
	db := setupDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	author := createUser(t, db, "liam")
	liker := createUser(t, db, "mona")

	post := &models.Post{Title: "t", Body: "b", UserID: author.ID}
	require.NoError(t, repo.Create(ctx, post))
	require.NoError(t, repo.InsertLike(ctx, liker.ID, post.ID))

	require.NoError(t, repo.DeleteLike(ctx, liker.ID, post.ID))

	got, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.LikesCount)
}
