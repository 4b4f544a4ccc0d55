package repositories

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"
)

const (
	// Key prefixes for different entity types. Entity keys use fixed-width
	// zero-padded ids so Badger's lexicographic iteration equals insertion
	// order.
	UserKeyPrefix    = "user:"
	PostKeyPrefix    = "post:"
	CommentKeyPrefix = "comment:"

	// Secondary index prefixes enforcing uniqueness. They live under "idx:"
	// so entity prefix scans never pick them up.
	UserEmailIndexPrefix = "idx:user:email:"
	PostTitleIndexPrefix = "idx:post:title:"

	// Sequence keys for auto-incrementing IDs
	UserSeqKey    = "seq:user"
	PostSeqKey    = "seq:post"
	CommentSeqKey = "seq:comment"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("email already registered")
	ErrDuplicateTitle = errors.New("title already in use")
)

func userKey(id int) []byte {
	return []byte(fmt.Sprintf("%s%010d", UserKeyPrefix, id))
}

func postKey(id int) []byte {
	return []byte(fmt.Sprintf("%s%010d", PostKeyPrefix, id))
}

// commentKey embeds the parent post id so a post's comments are a single
// prefix scan, which is what makes cascade deletion one transaction.
func commentKey(postID, id int) []byte {
	return []byte(fmt.Sprintf("%s%010d:%010d", CommentKeyPrefix, postID, id))
}

func commentPostPrefix(postID int) []byte {
	return []byte(fmt.Sprintf("%s%010d:", CommentKeyPrefix, postID))
}

func userEmailKey(email string) []byte {
	return []byte(UserEmailIndexPrefix + strings.ToLower(strings.TrimSpace(email)))
}

func postTitleKey(title string) []byte {
	return []byte(PostTitleIndexPrefix + strings.ToLower(strings.TrimSpace(title)))
}

// getNextID gets the next available ID for a given sequence key
func getNextID(txn *badger.Txn, seqKey string) (int, error) {
	var id int
	item, err := txn.Get([]byte(seqKey))
	if err == badger.ErrKeyNotFound {
		id = 1
	} else if err != nil {
		return 0, err
	} else {
		err = item.Value(func(val []byte) error {
			id = decodeID(val)
			return nil
		})
		if err != nil {
			return 0, err
		}
		id++
	}

	// Store new ID
	if err := txn.Set([]byte(seqKey), encodeID(id)); err != nil {
		return 0, err
	}

	return id, nil
}

func encodeID(id int) []byte {
	return []byte{byte(id >> 24), byte(id >> 16), byte(id >> 8), byte(id)}
}

func decodeID(val []byte) int {
	return int(val[0])<<24 | int(val[1])<<16 | int(val[2])<<8 | int(val[3])
}

// marshalEntity marshals an entity to JSON
func marshalEntity(entity interface{}) ([]byte, error) {
	data, err := json.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entity: %v", err)
	}
	return data, nil
}

// unmarshalEntity unmarshals JSON data into an entity
func unmarshalEntity(data []byte, entity interface{}) error {
	if err := json.Unmarshal(data, entity); err != nil {
		return fmt.Errorf("failed to unmarshal entity: %v", err)
	}
	return nil
}
