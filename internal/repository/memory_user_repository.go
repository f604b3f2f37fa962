package repository

import (
	"context"
	"sync"

	"usermanagement/internal/model"
)

// memoryUserRepository keeps users in a slice guarded by a single RWMutex.
// nextID only grows, so ids are never reused after a delete.
type memoryUserRepository struct {
	mu     sync.RWMutex
	users  []model.User
	nextID uint
}

// NewMemoryUserRepository builds the process-lifetime store.
func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{nextID: 1}
}

func (r *memoryUserRepository) List(_ context.Context) ([]model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.User, len(r.users))
	copy(out, r.users)
	return out, nil
}

func (r *memoryUserRepository) FindByID(_ context.Context, id uint) (*model.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, false, nil
	}
	user := r.users[i]
	return &user, true, nil
}

func (r *memoryUserRepository) Create(_ context.Context, req model.UserRequest) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user := req.NewUser()
	user.ID = r.nextID
	r.nextID++
	r.users = append(r.users, user)
	return &user, nil
}

func (r *memoryUserRepository) Replace(_ context.Context, id uint, req model.UserRequest) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return false, nil
	}
	req.Apply(&r.users[i])
	return true, nil
}

func (r *memoryUserRepository) Remove(_ context.Context, id uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return false, nil
	}
	r.users = append(r.users[:i], r.users[i+1:]...)
	return true, nil
}

// indexOf must be called with mu held.
func (r *memoryUserRepository) indexOf(id uint) int {
	for i := range r.users {
		if r.users[i].ID == id {
			return i
		}
	}
	return -1
}
