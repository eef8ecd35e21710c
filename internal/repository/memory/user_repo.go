package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/mpavlov90/snapfeed/internal/domain"
	"github.com/mpavlov90/snapfeed/internal/repository"
)

// UserRepo is an in-memory UserRepository used in tests and local runs.
type UserRepo struct {
	mu         sync.RWMutex
	users      map[uuid.UUID]*domain.User
	byUsername map[string]uuid.UUID
}

func NewUserRepo() *UserRepo {
	return &UserRepo{
		users:      make(map[uuid.UUID]*domain.User),
		byUsername: make(map[string]uuid.UUID),
	}
}

func (r *UserRepo) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byUsername[user.Username]; taken {
		return repository.ErrDuplicate
	}

	stored := *user
	r.users[stored.ID] = &stored
	r.byUsername[stored.Username] = stored.ID
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	result := *user
	return &result, nil
}

func (r *UserRepo) usernameOf(id uuid.UUID) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return "", false
	}
	return user.Username, true
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byUsername[username]
	if !ok {
		return nil, nil
	}
	result := *r.users[id]
	return &result, nil
}
