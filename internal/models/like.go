package models

import (
	"time"
)

// Like pairs one user with one post. The (UserID, PostID) combination is
// unique; the index is the race-safe enforcement point for double-likes, so
// it must not be relaxed in favor of an application-level existence check.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_post" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_user_post" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}
