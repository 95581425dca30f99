// Package service contains the application's business logic.
package service

import (
	"context"

	"newsfeed/internal/models"
	"newsfeed/internal/repository"
)

// PostService implements post CRUD and the like/unlike rules.
type PostService struct {
	postRepo repository.PostRepository
}

// CreatePostInput is the payload for creating a post.
type CreatePostInput struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// UpdatePostInput is the payload for updating a post. Empty fields are left unchanged.
type UpdatePostInput struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// NewPostService creates a new post service.
func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

// CreatePost persists a new post owned by authorID and returns its refreshed
// representation (author and like count included).
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput, authorID uint) (*models.Post, error) {
	if in.Title == "" || in.Body == "" {
		return nil, models.NewValidationError("title and body are required")
	}

	post := &models.Post{
		Title:  in.Title,
		Body:   in.Body,
		UserID: authorID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID)
}

// GetPosts returns all posts, newest first.
func (s *PostService) GetPosts(ctx context.Context) ([]*models.Post, error) {
	return s.postRepo.List(ctx)
}

// GetPostByID returns the post or a not-found error.
func (s *PostService) GetPostByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// UpdatePost applies field updates to the caller's own post.
func (s *PostService) UpdatePost(ctx context.Context, id uint, in UpdatePostInput, callerID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if post.UserID != callerID {
		return nil, models.NewOwnershipError("only the author may update")
	}

	if in.Title != "" {
		post.Title = in.Title
	}
	if in.Body != "" {
		post.Body = in.Body
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, id)
}

// DeletePost removes the caller's own post together with its likes.
func (s *PostService) DeletePost(ctx context.Context, id uint, callerID uint) error {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if post.UserID != callerID {
		return models.NewOwnershipError("only the author may delete")
	}

	return s.postRepo.Delete(ctx, id)
}

// InsertLike adds the caller's like to a post. Authors may not like their own
// post. The existence pre-check gives a clean conflict on the common path;
// the unique index in the store settles concurrent identical requests.
func (s *PostService) InsertLike(ctx context.Context, postID, callerID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if post.UserID == callerID {
		return nil, models.NewAccessDeniedError("authors may not like their own post")
	}

	liked, err := s.postRepo.HasLiked(ctx, callerID, postID)
	if err != nil {
		return nil, err
	}
	if liked {
		return nil, models.NewConflictError("like already exists for this post")
	}

	if err := s.postRepo.InsertLike(ctx, callerID, postID); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, postID)
}

// DeleteLike removes the caller's like from a post. The self-action rule is
// applied symmetrically to insert even though an author can hold no like.
func (s *PostService) DeleteLike(ctx context.Context, postID, callerID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if post.UserID == callerID {
		return nil, models.NewAccessDeniedError("authors may not unlike their own post")
	}

	if err := s.postRepo.DeleteLike(ctx, callerID, postID); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, postID)
}
