package memory

import (
	"context"
	"sync"

	"github.com/condogate/condogate/internal/domain"
)

type ResidentRepository struct {
	mu        sync.RWMutex
	residents map[string]*domain.Resident
}

func NewResidentRepository() *ResidentRepository {
	return &ResidentRepository{residents: make(map[string]*domain.Resident)}
}

func (r *ResidentRepository) Save(_ context.Context, resident *domain.Resident) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.residents[resident.ID()] = resident
	return nil
}

func (r *ResidentRepository) FindByID(_ context.Context, id string) (*domain.Resident, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	resident, ok := r.residents[id]
	if !ok {
		return nil, nil
	}
	return resident, nil
}

func (r *ResidentRepository) FindByUserID(_ context.Context, userID string) (*domain.Resident, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, resident := range r.residents {
		if resident.UserID() == userID {
			return resident, nil
		}
	}
	return nil, nil
}
