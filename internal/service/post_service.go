package service

import (
	"context"
	"strings"

	"careline/internal/models"
	"careline/internal/repository"
)

type PostService struct {
	posts repository.PostRepository
}

func NewPostService(posts repository.PostRepository) *PostService {
	return &PostService{posts: posts}
}

func (s *PostService) Create(ctx context.Context, userID uint, title, content string) (*models.Post, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, models.NewValidationError("Post title cannot be empty")
	}
	if len(title) > 200 {
		return nil, models.NewValidationError("Post title cannot exceed 200 characters")
	}

	post := &models.Post{
		Title:   title,
		Content: content,
		UserID:  &userID,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return s.posts.GetByID(ctx, post.ID)
}

func (s *PostService) List(ctx context.Context, limit, offset int) ([]models.Post, error) {
	return s.posts.List(ctx, limit, offset)
}

func (s *PostService) Get(ctx context.Context, postID uint) (*models.Post, error) {
	return s.posts.GetByID(ctx, postID)
}

// Update changes title and/or content. Posts are public, so a
// non-owner gets a forbidden error rather than a not-found one.
func (s *PostService) Update(ctx context.Context, userID, postID uint, title, content *string) (*models.Post, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !post.OwnedBy(userID) {
		return nil, models.NewForbiddenError("You can only edit your own posts")
	}

	if title != nil {
		t := strings.TrimSpace(*title)
		if t == "" {
			return nil, models.NewValidationError("Post title cannot be empty")
		}
		if len(t) > 200 {
			return nil, models.NewValidationError("Post title cannot exceed 200 characters")
		}
		post.Title = t
	}
	if content != nil {
		post.Content = *content
	}

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}
	return s.posts.GetByID(ctx, postID)
}

// Delete removes a post and its comments.
func (s *PostService) Delete(ctx context.Context, userID, postID uint) error {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if !post.OwnedBy(userID) {
		return models.NewForbiddenError("You can only delete your own posts")
	}
	return s.posts.Delete(ctx, postID)
}
