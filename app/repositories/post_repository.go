package repositories

import (
	"bytes"
	"fmt"

	"inkpress/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerPostRepository implements PostRepository using BadgerDB
type BadgerPostRepository struct {
	db *badger.DB
}

// NewBadgerPostRepository creates a new BadgerPostRepository
func NewBadgerPostRepository(db *badger.DB) *BadgerPostRepository {
	return &BadgerPostRepository{db: db}
}

// Create creates a new post. Title uniqueness is checked against the title
// index inside the same transaction that stores the post.
func (r *BadgerPostRepository) Create(post *models.Post) error {
	return r.db.Update(func(txn *badger.Txn) error {
		titleKey := postTitleKey(post.Title)
		_, err := txn.Get(titleKey)
		if err == nil {
			return ErrDuplicateTitle
		}
		if err != badger.ErrKeyNotFound {
			return err
		}

		id, err := getNextID(txn, PostSeqKey)
		if err != nil {
			return err
		}
		post.ID = id
		post.BeforeCreate()

		data, err := marshalEntity(post)
		if err != nil {
			return err
		}

		if err := txn.Set(postKey(post.ID), data); err != nil {
			return err
		}
		return txn.Set(titleKey, encodeID(post.ID))
	})
}

// GetByID retrieves a post by ID
func (r *BadgerPostRepository) GetByID(id int) (*models.Post, error) {
	var post models.Post

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(postKey(id))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return unmarshalEntity(val, &post)
		})
	})

	if err != nil {
		return nil, err
	}
	return &post, nil
}

// List retrieves all posts in insertion order
func (r *BadgerPostRepository) List() ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(PostKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			var post models.Post
			err := item.Value(func(val []byte) error {
				return unmarshalEntity(val, &post)
			})
			if err != nil {
				return fmt.Errorf("failed to unmarshal post: %v", err)
			}
			posts = append(posts, &post)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// Update overwrites an existing post. When the title changes, the old index
// entry is replaced and the new title is checked for uniqueness, all in the
// same transaction.
func (r *BadgerPostRepository) Update(post *models.Post) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := postKey(post.ID)

		item, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		var existing models.Post
		if err := item.Value(func(val []byte) error {
			return unmarshalEntity(val, &existing)
		}); err != nil {
			return err
		}

		oldTitleKey := postTitleKey(existing.Title)
		newTitleKey := postTitleKey(post.Title)
		if !bytes.Equal(oldTitleKey, newTitleKey) {
			if _, err := txn.Get(newTitleKey); err == nil {
				return ErrDuplicateTitle
			} else if err != badger.ErrKeyNotFound {
				return err
			}
			if err := txn.Delete(oldTitleKey); err != nil {
				return err
			}
			if err := txn.Set(newTitleKey, encodeID(post.ID)); err != nil {
				return err
			}
		}

		data, err := marshalEntity(post)
		if err != nil {
			return err
		}
		return txn.Set(key, data)
	})
}

// Delete deletes a post, its title index entry and every attached comment in
// one transaction, so no orphan comments can survive.
func (r *BadgerPostRepository) Delete(id int) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := postKey(id)

		item, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		var post models.Post
		if err := item.Value(func(val []byte) error {
			return unmarshalEntity(val, &post)
		}); err != nil {
			return err
		}

		// Collect comment keys first; deleting while iterating invalidates
		// the iterator.
		var commentKeys [][]byte
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		prefix := commentPostPrefix(id)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			commentKeys = append(commentKeys, it.Item().KeyCopy(nil))
		}
		it.Close()

		for _, ck := range commentKeys {
			if err := txn.Delete(ck); err != nil {
				return err
			}
		}
		if err := txn.Delete(postTitleKey(post.Title)); err != nil {
			return err
		}
		return txn.Delete(key)
	})
}
