package repositories

import (
	"strings"

	"inkpress/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerUserRepository implements UserRepository using BadgerDB
type BadgerUserRepository struct {
	db *badger.DB
}

// NewBadgerUserRepository creates a new BadgerUserRepository
func NewBadgerUserRepository(db *badger.DB) *BadgerUserRepository {
	return &BadgerUserRepository{db: db}
}

// Create creates a new user. The email uniqueness check, the id assignment
// and the admin-for-first-user decision all happen in one transaction, so
// two racing registrations can neither share an email nor both become admin.
func (r *BadgerUserRepository) Create(user *models.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))

	return r.db.Update(func(txn *badger.Txn) error {
		emailKey := userEmailKey(user.Email)
		_, err := txn.Get(emailKey)
		if err == nil {
			return ErrDuplicateEmail
		}
		if err != badger.ErrKeyNotFound {
			return err
		}

		id, err := getNextID(txn, UserSeqKey)
		if err != nil {
			return err
		}
		user.ID = id
		if id == 1 {
			user.Role = models.RoleAdmin
		}
		user.BeforeCreate()

		data, err := marshalEntity(user)
		if err != nil {
			return err
		}

		if err := txn.Set(userKey(user.ID), data); err != nil {
			return err
		}
		return txn.Set(emailKey, encodeID(user.ID))
	})
}

// GetByID retrieves a user by ID
func (r *BadgerUserRepository) GetByID(id int) (*models.User, error) {
	var user models.User

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(userKey(id))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return unmarshalEntity(val, &user)
		})
	})

	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail retrieves a user by email via the email index
func (r *BadgerUserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(userEmailKey(email))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		var id int
		if err := item.Value(func(val []byte) error {
			id = decodeID(val)
			return nil
		}); err != nil {
			return err
		}

		item, err = txn.Get(userKey(id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return unmarshalEntity(val, &user)
		})
	})

	if err != nil {
		return nil, err
	}
	return &user, nil
}
