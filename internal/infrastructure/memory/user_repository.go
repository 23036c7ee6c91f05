package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/go-session-auth/internal/domain/entity"
	"github.com/oksasatya/go-session-auth/internal/domain/repository"
)

// UserRepository is an in-process implementation of the account store used
// by tests. Lookups scan in insertion order so "first matching row" behaves
// like the SQL implementation's ORDER BY created_at.
type UserRepository struct {
	mu    sync.Mutex
	users []*entity.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

func clone(u *entity.User) *entity.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u.ID = uuid.NewString()
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	r.users = append(r.users, clone(u))
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			return clone(u), nil
		}
	}
	return nil, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email != nil && *u.Email == email {
			return clone(u), nil
		}
	}
	return nil, nil
}

func (r *UserRepository) GetByTwitterID(_ context.Context, twitterID string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.TwitterID != nil && *u.TwitterID == twitterID {
			return clone(u), nil
		}
	}
	return nil, nil
}

func (r *UserRepository) Update(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.users {
		if existing.ID == u.ID {
			u.UpdatedAt = time.Now()
			r.users[i] = clone(u)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *UserRepository) SetConfirmed(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			u.Confirmed = true
			u.UpdatedAt = time.Now()
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *UserRepository) UpdatePassword(_ context.Context, id, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			h := hash
			u.Password = &h
			u.UpdatedAt = time.Now()
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *UserRepository) SetForgotPasswordLocked(_ context.Context, id string, locked bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			u.ForgotPasswordLocked = locked
			u.UpdatedAt = time.Now()
			return nil
		}
	}
	return repository.ErrNotFound
}

// Count reports the number of stored accounts; tests use it to assert that
// flows did not create duplicates.
func (r *UserRepository) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users)
}

var _ repository.UserRepository = (*UserRepository)(nil)
