package repository

import (
	"context"
	"testing"
	"time"

	"newsfeed/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupAuthUpsertKeepsOneRecordPerEmail(t *testing.T) {
	db := setupDB(t)
	repo := NewSignupAuthRepository(db)
	ctx := context.Background()

	first := &models.SignupAuth{
		Email:        "pending@example.com",
		Username:     "pending",
		PasswordHash: "hash",
		Code:         "first",
		ExpiresAt:    time.Now().Add(15 * time.Minute),
	}
	require.NoError(t, repo.Upsert(ctx, first))

	second := &models.SignupAuth{
		Email:        "pending@example.com",
		Username:     "pending",
		PasswordHash: "hash2",
		Code:         "second",
		ExpiresAt:    time.Now().Add(15 * time.Minute),
	}
	require.NoError(t, repo.Upsert(ctx, second))
	assert.Equal(t, first.ID, second.ID, "the existing record is replaced in place")

	var count int64
	require.NoError(t, db.Model(&models.SignupAuth{}).
		Where("email = ?", "pending@example.com").
		Count(&count).Error)
	assert.Equal(t, int64(1), count)

	got, err := repo.GetByEmail(ctx, "pending@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "second", got.Code)
}

func TestSignupAuthGetByEmailMissing(t *testing.T) {
	db := setupDB(t)
	repo := NewSignupAuthRepository(db)

	got, err := repo.GetByEmail(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSignupAuthDeleteExpiredSweepsOnlyExpired(t *testing.T) {
	db := setupDB(t)
	repo := NewSignupAuthRepository(db)
	ctx := context.Background()
	now := time.Now()

	expired := &models.SignupAuth{
		Email:        "old@example.com",
		Username:     "old",
		PasswordHash: "hash",
		Code:         "c1",
		ExpiresAt:    now.Add(-time.Hour),
	}
	live := &models.SignupAuth{
		Email:        "new@example.com",
		Username:     "new",
		PasswordHash: "hash",
		Code:         "c2",
		ExpiresAt:    now.Add(time.Hour),
	}
	require.NoError(t, repo.Upsert(ctx, expired))
	require.NoError(t, repo.Upsert(ctx, live))

	removed, err := repo.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	got, err := repo.GetByEmail(ctx, "old@example.com")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = repo.GetByEmail(ctx, "new@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
}
