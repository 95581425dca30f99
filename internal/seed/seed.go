// Package seed generates development fixture data.
package seed

import (
	"context"
	"fmt"
	"math/rand"

	"newsfeed/internal/models"
	"newsfeed/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options controls how much data Run generates.
type Options struct {
	Users    int
	Posts    int
	Password string
}

// DefaultOptions returns a small but usable development dataset.
func DefaultOptions() Options {
	return Options{
		Users:    10,
		Posts:    30,
		Password: "password123",
	}
}

// Run populates the database with fake users, posts and likes. Every user
// gets the same known password so seeded accounts are usable for local login.
func Run(ctx context.Context, db *gorm.DB, opts Options) error {
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)

	hash, err := bcrypt.GenerateFromPassword([]byte(opts.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	users := make([]*models.User, 0, opts.Users)
	for i := 0; i < opts.Users; i++ {
		user := &models.User{
			Username: fmt.Sprintf("%s%d", gofakeit.Username(), i),
			Email:    fmt.Sprintf("seed%d.%s", i, gofakeit.Email()),
			Password: string(hash),
		}
		if err := userRepo.Create(ctx, user); err != nil {
			return fmt.Errorf("failed to seed user: %w", err)
		}
		users = append(users, user)
	}

	posts := make([]*models.Post, 0, opts.Posts)
	for i := 0; i < opts.Posts; i++ {
		author := users[rand.Intn(len(users))]
		post := &models.Post{
			Title:  gofakeit.Sentence(6),
			Body:   gofakeit.Paragraph(2, 4, 12, " "),
			UserID: author.ID,
		}
		if err := postRepo.Create(ctx, post); err != nil {
			return fmt.Errorf("failed to seed post: %w", err)
		}
		posts = append(posts, post)
	}

	// Sprinkle likes from non-authors; duplicates are skipped.
	for _, post := range posts {
		for _, user := range users {
			if user.ID == post.UserID || rand.Float64() > 0.3 {
				continue
			}
			if err := postRepo.InsertLike(ctx, user.ID, post.ID); err != nil {
				if appErr, ok := err.(*models.AppError); ok && appErr.Kind == models.CodeConflict {
					continue
				}
				return fmt.Errorf("failed to seed like: %w", err)
			}
		}
	}

	return nil
}
