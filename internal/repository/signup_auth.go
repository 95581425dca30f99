package repository

import (
	"context"
	"errors"
	"time"

	"newsfeed/internal/models"

	"gorm.io/gorm"
)

// SignupAuthRepository defines the interface for pending-signup token operations.
type SignupAuthRepository interface {
	GetByEmail(ctx context.Context, email string) (*models.SignupAuth, error)
	Upsert(ctx context.Context, auth *models.SignupAuth) error
	Delete(ctx context.Context, auth *models.SignupAuth) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type signupAuthRepository struct {
	db *gorm.DB
}

// NewSignupAuthRepository creates a new signup-auth repository.
func NewSignupAuthRepository(db *gorm.DB) SignupAuthRepository {
	return &signupAuthRepository{db: db}
}

// GetByEmail returns (nil, nil) when no pending record exists for the email.
func (r *signupAuthRepository) GetByEmail(ctx context.Context, email string) (*models.SignupAuth, error) {
	var auth models.SignupAuth
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&auth).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &auth, nil
}

// Upsert keeps at most one live record per email: an existing record for the
// same address is overwritten in place, otherwise a new row is created.
func (r *signupAuthRepository) Upsert(ctx context.Context, auth *models.SignupAuth) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.SignupAuth
		err := tx.Where("email = ?", auth.Email).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return tx.Create(auth).Error
		case err != nil:
			return err
		default:
			auth.ID = existing.ID
			auth.CreatedAt = existing.CreatedAt
			return tx.Save(auth).Error
		}
	})
}

func (r *signupAuthRepository) Delete(ctx context.Context, auth *models.SignupAuth) error {
	return r.db.WithContext(ctx).Delete(auth).Error
}

// DeleteExpired bulk-deletes every record whose expiration time has passed
// and reports how many rows were removed.
func (r *signupAuthRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at < ?", now).
		Delete(&models.SignupAuth{})
	return res.RowsAffected, res.Error
}
