package store

import (
	"github.com/sciencewithkalana/portal/core/auth"
	"github.com/sciencewithkalana/portal/core/student"
)

// SessionRepository persists the single active identity across the
// sk_current_user and sk_is_admin slots. Setting one side clears the other.
type SessionRepository struct {
	store Store
}

var _ auth.Repository = (*SessionRepository)(nil)

func NewSessionRepository(s Store) *SessionRepository {
	return &SessionRepository{store: s}
}

func (repo *SessionRepository) GetSession() (auth.Session, error) {
	sess := auth.Session{}

	var usr student.Student
	ok, err := repo.store.Load(KeyCurrentUser, &usr)
	if err != nil {
		return auth.Session{}, err
	}
	if ok {
		sess.Student = &usr
	}

	var isAdmin bool
	ok, err = repo.store.Load(KeyIsAdmin, &isAdmin)
	if err != nil {
		return auth.Session{}, err
	}
	if ok {
		sess.IsAdmin = isAdmin
	}
	return sess, nil
}

func (repo *SessionRepository) SetStudent(usr student.Student) error {
	if err := repo.store.Delete(KeyIsAdmin); err != nil {
		return err
	}
	return repo.store.Save(KeyCurrentUser, usr)
}

func (repo *SessionRepository) SetAdmin() error {
	if err := repo.store.Delete(KeyCurrentUser); err != nil {
		return err
	}
	return repo.store.Save(KeyIsAdmin, true)
}

func (repo *SessionRepository) ClearSession() error {
	if err := repo.store.Delete(KeyCurrentUser); err != nil {
		return err
	}
	return repo.store.Delete(KeyIsAdmin)
}
