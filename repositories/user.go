//go:generate go run go.uber.org/mock/mockgen -source=user.go -destination=../mocks/mock_user_repository.go -package=mocks
package repositories

import (
	"direct-chat/domain"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

type IUserRepository interface {
	FindUserByID(id string) (*domain.User, error)
	CreateUser(username string) (domain.User, error)
	SaveUser(user domain.User) error
}

type UserRepository struct {
	db *badger.DB
}

func NewUserRepository(db *badger.DB) IUserRepository {
	return &UserRepository{db: db}
}

// FindUserByID returns nil without error when the user doesn't exist.
func (u UserRepository) FindUserByID(id string) (*domain.User, error) {
	var user domain.User
	var found bool
	err := u.db.View(func(txn *badger.Txn) error {
		var err error
		found, err = getJSON(txn, userKey(id), &user)
		return err
	})
	if err != nil || !found {
		return nil, err
	}
	return &user, nil
}

// CreateUser persists a new user under a generated id.
func (u UserRepository) CreateUser(username string) (domain.User, error) {
	user := domain.User{
		ID:        uuid.NewString(),
		Username:  username,
		CreatedAt: time.Now().UTC(),
	}
	if err := u.SaveUser(user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// SaveUser inserts or replaces the user. Profiles are owned by another
// service, this is how they are mirrored locally.
func (u UserRepository) SaveUser(user domain.User) error {
	return u.db.Update(func(txn *badger.Txn) error {
		return setJSON(txn, userKey(user.ID), user)
	})
}

func loadUser(txn *badger.Txn, id string) (*domain.User, error) {
	var user domain.User
	found, err := getJSON(txn, userKey(id), &user)
	if err != nil || !found {
		return nil, err
	}
	return &user, nil
}
