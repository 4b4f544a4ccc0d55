package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Role determines what a user is allowed to do. It is assigned once at
// registration and never changes.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// User is a registered account. The password is stored only as a bcrypt hash.
type User struct {
	ID           int       `json:"id" validate:"required,gte=1"`
	Email        string    `json:"email" validate:"required,email"`
	PasswordHash string    `json:"password_hash" validate:"required"`
	Name         string    `json:"name" validate:"required,min=2,max=100"`
	Role         Role      `json:"role" validate:"required,oneof=admin member"`
	CreatedAt    time.Time `json:"created_at" validate:"required"`
}

// Post is a blog post. Date is a display string stamped once at creation.
// AuthorName is denormalized from the author so listings render without a
// second lookup; the author is fixed at creation.
type Post struct {
	ID         int        `json:"id" validate:"required,gte=1"`
	Title      string     `json:"title" validate:"required,min=3,max=250"`
	Subtitle   string     `json:"subtitle" validate:"required,max=250"`
	Date       string     `json:"date" validate:"required"`
	Body       string     `json:"body" validate:"required,min=10"`
	ImageURL   string     `json:"image_url" validate:"required,url"`
	AuthorID   int        `json:"author_id" validate:"required,gte=1"`
	AuthorName string     `json:"author_name" validate:"required"`
	Comments   []*Comment `json:"-" validate:"-"`
}

// Comment is attached to exactly one post and one author. Comments are
// create-only; they disappear when their post is deleted.
type Comment struct {
	ID         int       `json:"id" validate:"required,gte=1"`
	PostID     int       `json:"post_id" validate:"required,gte=1"`
	AuthorID   int       `json:"author_id" validate:"required,gte=1"`
	AuthorName string    `json:"author_name" validate:"required"`
	Text       string    `json:"text" validate:"required,min=1,max=2000"`
	CreatedAt  time.Time `json:"created_at" validate:"required"`
}
