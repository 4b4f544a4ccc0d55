package repositories

import (
	"fmt"
	"testing"

	"inkpress/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPost(title string) *models.Post {
	return &models.Post{
		Title:      title,
		Subtitle:   "A subtitle",
		Body:       "Body text long enough for validation",
		ImageURL:   "https://example.com/cover.jpg",
		AuthorID:   1,
		AuthorName: "Alice",
	}
}

func TestPostCreate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBadgerPostRepository(db)

	t.Run("assigns id and stamps date", func(t *testing.T) {
		p := newPost("Hello World")
		require.NoError(t, repo.Create(p))

		assert.Equal(t, 1, p.ID)
		assert.NotEmpty(t, p.Date)
	})

	t.Run("duplicate title is rejected", func(t *testing.T) {
		err := repo.Create(newPost("hello world"))
		assert.ErrorIs(t, err, ErrDuplicateTitle)

		posts, err := repo.List()
		require.NoError(t, err)
		assert.Len(t, posts, 1, "no new row may exist after a rejected create")
	})
}

func TestPostList(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBadgerPostRepository(db)

	for i := 1; i <= 12; i++ {
		require.NoError(t, repo.Create(newPost(fmt.Sprintf("Post number %d", i))))
	}

	posts, err := repo.List()
	require.NoError(t, err)
	require.Len(t, posts, 12)

	// Insertion order even past single-digit ids.
	for i, p := range posts {
		assert.Equal(t, i+1, p.ID)
	}
}

func TestPostUpdate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBadgerPostRepository(db)

	first := newPost("First")
	second := newPost("Second")
	require.NoError(t, repo.Create(first))
	require.NoError(t, repo.Create(second))

	t.Run("updates fields in place", func(t *testing.T) {
		first.Subtitle = "Edited subtitle"
		require.NoError(t, repo.Update(first))

		got, err := repo.GetByID(first.ID)
		require.NoError(t, err)
		assert.Equal(t, "Edited subtitle", got.Subtitle)
	})

	t.Run("title change moves the index entry", func(t *testing.T) {
		first.Title = "Renamed"
		require.NoError(t, repo.Update(first))

		// The old title is free again.
		p := newPost("First")
		require.NoError(t, repo.Create(p))
	})

	t.Run("title change colliding with another post fails", func(t *testing.T) {
		first.Title = "Second"
		assert.ErrorIs(t, repo.Update(first), ErrDuplicateTitle)
	})

	t.Run("missing post", func(t *testing.T) {
		ghost := newPost("Ghost")
		ghost.ID = 999
		assert.ErrorIs(t, repo.Update(ghost), ErrNotFound)
	})
}

func TestPostDeleteCascade(t *testing.T) {
	db := setupTestDB(t)
	postRepo := NewBadgerPostRepository(db)
	commentRepo := NewBadgerCommentRepository(db)

	doomed := newPost("Doomed")
	survivor := newPost("Survivor")
	require.NoError(t, postRepo.Create(doomed))
	require.NoError(t, postRepo.Create(survivor))

	for i := 0; i < 3; i++ {
		require.NoError(t, commentRepo.Create(&models.Comment{
			PostID:     doomed.ID,
			AuthorID:   2,
			AuthorName: "Bob",
			Text:       "on the doomed post",
		}))
	}
	require.NoError(t, commentRepo.Create(&models.Comment{
		PostID:     survivor.ID,
		AuthorID:   2,
		AuthorName: "Bob",
		Text:       "on the survivor",
	}))

	require.NoError(t, postRepo.Delete(doomed.ID))

	_, err := postRepo.GetByID(doomed.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	orphans, err := commentRepo.ListByPost(doomed.ID)
	require.NoError(t, err)
	assert.Empty(t, orphans, "cascade delete must leave no orphan comments")

	kept, err := commentRepo.ListByPost(survivor.ID)
	require.NoError(t, err)
	assert.Len(t, kept, 1)

	t.Run("title is free after delete", func(t *testing.T) {
		require.NoError(t, postRepo.Create(newPost("Doomed")))
	})

	t.Run("deleting a missing post", func(t *testing.T) {
		assert.ErrorIs(t, postRepo.Delete(999), ErrNotFound)
	})
}
