package repositories

import "inkpress/app/models"

// UserRepository defines the interface for user data access. Create assigns
// the surrogate id and, for the first account ever created, the admin role;
// both decisions happen inside the storing transaction.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id int) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
}

// PostRepository defines the interface for post data access. Delete removes
// the post together with every comment attached to it.
type PostRepository interface {
	Create(post *models.Post) error
	GetByID(id int) (*models.Post, error)
	List() ([]*models.Post, error)
	Update(post *models.Post) error
	Delete(id int) error
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	Create(comment *models.Comment) error
	GetByID(id int) (*models.Comment, error)
	ListByPost(postID int) ([]*models.Comment, error)
}
