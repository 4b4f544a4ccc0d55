package repositories

import (
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *badger.DB {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestGetNextID(t *testing.T) {
	db := setupTestDB(t)

	t.Run("first ID", func(t *testing.T) {
		err := db.Update(func(txn *badger.Txn) error {
			id, err := getNextID(txn, PostSeqKey)
			assert.NoError(t, err)
			assert.Equal(t, 1, id)
			return nil
		})
		assert.NoError(t, err)
	})

	t.Run("sequential IDs", func(t *testing.T) {
		err := db.Update(func(txn *badger.Txn) error {
			for i := 2; i <= 5; i++ {
				id, err := getNextID(txn, PostSeqKey)
				assert.NoError(t, err)
				assert.Equal(t, i, id)
			}
			return nil
		})
		assert.NoError(t, err)
	})

	t.Run("different sequence keys", func(t *testing.T) {
		err := db.Update(func(txn *badger.Txn) error {
			_, err := getNextID(txn, PostSeqKey)
			assert.NoError(t, err)

			commentID, err := getNextID(txn, CommentSeqKey)
			assert.NoError(t, err)
			assert.Equal(t, 1, commentID, "Comment sequence should start from 1")
			return nil
		})
		assert.NoError(t, err)
	})
}

func TestKeyOrdering(t *testing.T) {
	// Zero-padded keys must sort byte-wise in id order; the listing
	// endpoints depend on it.
	assert.True(t, string(postKey(2)) < string(postKey(10)))
	assert.True(t, string(userKey(9)) < string(userKey(11)))
	assert.True(t, string(commentKey(1, 2)) < string(commentKey(1, 10)))
}

func TestIndexKeysOutsideEntityPrefixes(t *testing.T) {
	assert.NotContains(t, string(userEmailKey("a@b.com"))[:len(UserKeyPrefix)], UserKeyPrefix)
	assert.Equal(t, "idx:user:email:a@b.com", string(userEmailKey("A@B.Com ")))
	assert.Equal(t, "idx:post:title:hello", string(postTitleKey(" Hello")))
}

func TestEncodeDecodeID(t *testing.T) {
	for _, id := range []int{1, 255, 256, 1 << 20} {
		assert.Equal(t, id, decodeID(encodeID(id)))
	}
}
