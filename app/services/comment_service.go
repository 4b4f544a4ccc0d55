package services

import (
	"fmt"

	"inkpress/app/models"
	"inkpress/app/repositories"
)

// CommentService handles business logic for comments
type CommentService struct {
	commentRepo repositories.CommentRepository
	postRepo    repositories.PostRepository
}

// NewCommentService creates a new CommentService
func NewCommentService(commentRepo repositories.CommentRepository, postRepo repositories.PostRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

// CreateComment creates a new comment with validation. The parent post must
// exist; a missing post surfaces as repositories.ErrNotFound.
func (s *CommentService) CreateComment(comment *models.Comment) error {
	if err := validateComment(comment); err != nil {
		return fmt.Errorf("invalid comment: %w", err)
	}

	if _, err := s.postRepo.GetByID(comment.PostID); err != nil {
		return err
	}

	return s.commentRepo.Create(comment)
}

// ListPostComments retrieves all comments for a post
func (s *CommentService) ListPostComments(postID int) ([]*models.Comment, error) {
	if _, err := s.postRepo.GetByID(postID); err != nil {
		return nil, err
	}

	return s.commentRepo.ListByPost(postID)
}

// validateComment validates a comment's fields
func validateComment(comment *models.Comment) error {
	if comment.Text == "" {
		return fmt.Errorf("text is required")
	}
	if len(comment.Text) > 2000 {
		return fmt.Errorf("text is too long (maximum 2000 characters)")
	}
	if comment.AuthorID == 0 || comment.AuthorName == "" {
		return fmt.Errorf("author is required")
	}
	if comment.PostID == 0 {
		return fmt.Errorf("post is required")
	}
	return nil
}
