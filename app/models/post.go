package models

import (
	"errors"
	"time"
)

// PostDateFormat is the display format stamped onto posts at creation.
const PostDateFormat = "January 2, 2006"

// Validate checks if the post meets all validation requirements
func (p *Post) Validate() error {
	return validate.Struct(p)
}

// BeforeCreate sets up any necessary fields before creation. The publication
// date is stamped once here and never recomputed afterwards.
func (p *Post) BeforeCreate() {
	if p.Date == "" {
		p.Date = time.Now().Format(PostDateFormat)
	}
}

// AddComment attaches a comment to the post's in-memory comment list.
func (p *Post) AddComment(comment *Comment) error {
	if comment == nil {
		return errors.New("comment cannot be nil")
	}

	comment.PostID = p.ID
	p.Comments = append(p.Comments, comment)
	return nil
}
