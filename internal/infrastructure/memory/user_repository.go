// Package memory provides in-process repository implementations, used by the
// test suites in place of Postgres.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/creamio/backoffice-api/internal/domain/entity"
	"github.com/creamio/backoffice-api/internal/domain/repository"
)

type UserRepository struct {
	mu    sync.RWMutex
	users map[uuid.UUID]entity.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[uuid.UUID]entity.User)}
}

func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.checkUnique(u); err != nil {
		return err
	}
	r.users[u.ID] = *u
	return nil
}

func (r *UserRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *UserRepository) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) FindAll(_ context.Context) ([]*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		u := u
		out = append(out, &u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreationTime.Before(out[j].CreationTime) })
	return out, nil
}

func (r *UserRepository) Update(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID]; !ok {
		return repository.ErrNotFound
	}
	if err := r.checkUnique(u); err != nil {
		return err
	}
	r.users[u.ID] = *u
	return nil
}

func (r *UserRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

// checkUnique mirrors the unique constraints on username and email. Caller
// holds the write lock.
func (r *UserRepository) checkUnique(candidate *entity.User) error {
	for id, u := range r.users {
		if id == candidate.ID {
			continue
		}
		if u.Username == candidate.Username {
			return repository.ErrDuplicateUsername
		}
		if u.Email == candidate.Email {
			return repository.ErrDuplicateEmail
		}
	}
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
