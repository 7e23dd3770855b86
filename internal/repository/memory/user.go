package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/condogate/condogate/internal/domain"
)

// In-memory repositories back the test suites. They guard their maps
// because handler tests exercise them from concurrent request
// goroutines.
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]*domain.User)}
}

func (r *UserRepository) Save(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID()] = user
	return nil
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok || user.IsDeleted() {
		return nil, nil
	}
	return user, nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email domain.Email) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.Email() == email && !user.IsDeleted() {
			return user, nil
		}
	}
	return nil, nil
}

func (r *UserRepository) FindAll(_ context.Context, page, limit int) ([]*domain.User, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var alive []*domain.User
	for _, user := range r.users {
		if !user.IsDeleted() {
			alive = append(alive, user)
		}
	}
	sort.Slice(alive, func(i, j int) bool {
		return alive[i].CreatedAt().After(alive[j].CreatedAt())
	})

	total := len(alive)
	start := (page - 1) * limit
	if start >= total {
		return nil, total, nil
	}
	end := start + limit
	if end > total {
		end = total
	}

	return alive[start:end], total, nil
}
