package services

import (
	"fmt"

	"inkpress/app/models"
	"inkpress/app/repositories"
)

// PostService handles business logic for blog posts
type PostService struct {
	postRepo    repositories.PostRepository
	commentRepo repositories.CommentRepository
}

// NewPostService creates a new PostService
func NewPostService(postRepo repositories.PostRepository, commentRepo repositories.CommentRepository) *PostService {
	return &PostService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
	}
}

// CreatePost creates a new blog post with validation. The repository stamps
// the publication date and rejects duplicate titles.
func (s *PostService) CreatePost(post *models.Post) error {
	if err := validatePost(post); err != nil {
		return fmt.Errorf("invalid post: %w", err)
	}

	return s.postRepo.Create(post)
}

// GetPost retrieves a post by ID with its comments
func (s *PostService) GetPost(id int) (*models.Post, error) {
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByPost(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get comments: %v", err)
	}
	post.Comments = comments

	return post, nil
}

// ListPosts retrieves all posts in insertion order
func (s *PostService) ListPosts() ([]*models.Post, error) {
	return s.postRepo.List()
}

// UpdatePost overwrites title, subtitle, body and image URL of an existing
// post. Publication date and author are fixed at creation and preserved
// regardless of what the caller passes in.
func (s *PostService) UpdatePost(post *models.Post) error {
	existing, err := s.postRepo.GetByID(post.ID)
	if err != nil {
		return err
	}

	post.Date = existing.Date
	post.AuthorID = existing.AuthorID
	post.AuthorName = existing.AuthorName

	if err := validatePost(post); err != nil {
		return fmt.Errorf("invalid post: %w", err)
	}

	return s.postRepo.Update(post)
}

// DeletePost deletes a post and all its comments
func (s *PostService) DeletePost(id int) error {
	return s.postRepo.Delete(id)
}

// validatePost validates a post's fields
func validatePost(post *models.Post) error {
	if post.Title == "" {
		return fmt.Errorf("title is required")
	}
	if len(post.Title) > 250 {
		return fmt.Errorf("title is too long (maximum 250 characters)")
	}
	if post.Subtitle == "" {
		return fmt.Errorf("subtitle is required")
	}
	if post.Body == "" {
		return fmt.Errorf("body is required")
	}
	if post.ImageURL == "" {
		return fmt.Errorf("image URL is required")
	}
	if post.AuthorID == 0 || post.AuthorName == "" {
		return fmt.Errorf("author is required")
	}
	return nil
}
