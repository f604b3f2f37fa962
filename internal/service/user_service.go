package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"usermanagement/internal/cache"
	apperrors "usermanagement/internal/errors"
	"usermanagement/internal/model"
	"usermanagement/internal/repository"
)

const userCacheTTL = 5 * time.Minute

// UserService exposes domain operations.
type UserService interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	GetUser(ctx context.Context, id uint) (*model.User, error)
	CreateUser(ctx context.Context, req model.UserRequest) (*model.User, error)
	UpdateUser(ctx context.Context, id uint, req model.UserRequest) error
	DeleteUser(ctx context.Context, id uint) error
}

type userService struct {
	repo  repository.UserRepository
	cache *cache.Client

	// mu orders cache fills against mutations: a fill holds the read lock
	// across the store read and the cache write, so it cannot land after
	// an update or delete has invalidated the key.
	mu sync.RWMutex
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(repo repository.UserRepository, cache *cache.Client) UserService {
	return &userService{repo: repo, cache: cache}
}

func (s *userService) cacheKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *userService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	if !s.cache.Enabled() {
		return s.findUser(ctx, id)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	user, err := s.findUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, userCacheTTL)
	}
	return user, nil
}

func (s *userService) findUser(ctx context.Context, id uint) (*model.User, error) {
	user, ok, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (s *userService) CreateUser(ctx context.Context, req model.UserRequest) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	// the id may have been used by an earlier store whose entry is still cached
	_ = s.cache.Delete(ctx, s.cacheKey(user.ID))
	return user, nil
}

func (s *userService) UpdateUser(ctx context.Context, id uint, req model.UserRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ok, err := s.repo.Replace(ctx, id, req)
	if err != nil {
		return fmt.Errorf("update user %d: %w", id, err)
	}
	if !ok {
		return apperrors.ErrUserNotFound
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}

func (s *userService) DeleteUser(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ok, err := s.repo.Remove(ctx, id)
	if err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	if !ok {
		return apperrors.ErrUserNotFound
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}
