package fakeuserrepo

import (
	"strconv"
	"strings"
	"sync"

	apperrors "github.com/yogarn/filkompedia-client/internal/errors"
	"github.com/yogarn/filkompedia-client/users"
)

var _ users.UserRepo = (*FakeUserRepo)(nil)

type FakeUserRepo struct {
	users    map[string]users.User
	emailIds map[string]string // email to user id
	order    []string          // ids in creation order
	nextID   int
	lock     sync.RWMutex
}

func NewFakeUserRepo() *FakeUserRepo {
	return &FakeUserRepo{
		users:    make(map[string]users.User),
		emailIds: make(map[string]string),
		nextID:   1,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (ur *FakeUserRepo) Create(user *users.User) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	email := normalizeEmail(user.Email)
	if _, ok := ur.emailIds[email]; ok {
		return apperrors.Wrapf(apperrors.ErrConflict, "email %s", user.Email)
	}
	user.ID = strconv.Itoa(ur.nextID)
	ur.nextID++

	ur.users[user.ID] = *user
	ur.emailIds[email] = user.ID
	ur.order = append(ur.order, user.ID)
	return nil
}

func (ur *FakeUserRepo) Update(user *users.User) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	current, ok := ur.users[user.ID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	if normalizeEmail(current.Email) != normalizeEmail(user.Email) {
		return apperrors.Wrapf(apperrors.ErrInvalidInput, "email cannot change")
	}
	ur.users[user.ID] = *user
	return nil
}

func (ur *FakeUserRepo) Delete(id string) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	user, ok := ur.users[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	delete(ur.emailIds, normalizeEmail(user.Email))
	delete(ur.users, id)
	for i, v := range ur.order {
		if v == id {
			ur.order = append(ur.order[:i], ur.order[i+1:]...)
			break
		}
	}
	return nil
}

func (ur *FakeUserRepo) GetByEmail(email string) (*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	id, ok := ur.emailIds[normalizeEmail(email)]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	user := ur.users[id]
	return &user, nil
}

func (ur *FakeUserRepo) GetByID(id string) (*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	user, ok := ur.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return &user, nil
}

func (ur *FakeUserRepo) List(offset, limit int) ([]*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	if offset < 0 || offset >= len(ur.order) {
		return []*users.User{}, nil
	}
	end := len(ur.order)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}

	userList := make([]*users.User, 0, end-offset)
	for _, id := range ur.order[offset:end] {
		user := ur.users[id]
		userList = append(userList, &user)
	}
	return userList, nil
}

func (ur *FakeUserRepo) SetVerified(email string, verified bool) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	id, ok := ur.emailIds[normalizeEmail(email)]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user := ur.users[id]
	user.Verified = verified
	ur.users[id] = user
	return nil
}
