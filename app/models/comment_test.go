package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCommentValidation(t *testing.T) {
	tests := []struct {
		name    string
		comment *Comment
		wantErr bool
	}{
		{
			name: "valid comment",
			comment: &Comment{
				ID:         1,
				PostID:     1,
				AuthorID:   2,
				AuthorName: "Alice",
				Text:       "Nice post",
				CreatedAt:  time.Now(),
			},
			wantErr: false,
		},
		{
			name: "empty text",
			comment: &Comment{
				ID:         1,
				PostID:     1,
				AuthorID:   2,
				AuthorName: "Alice",
				CreatedAt:  time.Now(),
			},
			wantErr: true,
		},
		{
			name: "missing post",
			comment: &Comment{
				ID:         1,
				AuthorID:   2,
				AuthorName: "Alice",
				Text:       "Nice post",
				CreatedAt:  time.Now(),
			},
			wantErr: true,
		},
		{
			name: "missing author",
			comment: &Comment{
				ID:        1,
				PostID:    1,
				Text:      "Nice post",
				CreatedAt: time.Now(),
			},
			wantErr: true,
		},
		{
			name: "zero creation time",
			comment: &Comment{
				ID:         1,
				PostID:     1,
				AuthorID:   2,
				AuthorName: "Alice",
				Text:       "Nice post",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.comment.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCommentBeforeCreate(t *testing.T) {
	c := &Comment{}
	c.BeforeCreate()
	assert.False(t, c.CreatedAt.IsZero())

	fixed := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	c2 := &Comment{CreatedAt: fixed}
	c2.BeforeCreate()
	assert.Equal(t, fixed, c2.CreatedAt)
}
