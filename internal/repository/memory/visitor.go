package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/condogate/condogate/internal/domain"
	"github.com/condogate/condogate/internal/repository"
)

// VisitorRepository resolves the resident linkage of listings through
// the resident and user repositories it is built with, mirroring the
// SQL join of the postgres implementation.
type VisitorRepository struct {
	mu        sync.RWMutex
	visitors  map[string]*domain.Visitor
	passes    map[string]*domain.Pass
	users     *UserRepository
	residents *ResidentRepository
}

func NewVisitorRepository(users *UserRepository, residents *ResidentRepository) *VisitorRepository {
	return &VisitorRepository{
		visitors:  make(map[string]*domain.Visitor),
		passes:    make(map[string]*domain.Pass),
		users:     users,
		residents: residents,
	}
}

func (r *VisitorRepository) SaveVisitor(_ context.Context, visitor *domain.Visitor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.visitors[visitor.ID()] = visitor
	return nil
}

func (r *VisitorRepository) FindVisitorByID(_ context.Context, id string) (*domain.Visitor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	visitor, ok := r.visitors[id]
	if !ok {
		return nil, nil
	}
	return visitor, nil
}

func (r *VisitorRepository) CreatePass(_ context.Context, pass *domain.Pass) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.passes[pass.ID()] = pass
	return nil
}

func (r *VisitorRepository) FindAllActive(ctx context.Context) ([]repository.PassWithVisitor, error) {
	r.mu.RLock()
	active := r.activePasses()
	r.mu.RUnlock()

	var result []repository.PassWithVisitor
	for _, pass := range active {
		item, ok, err := r.join(ctx, pass)
		if err != nil {
			return nil, err
		}
		if ok {
			result = append(result, item)
		}
	}
	return result, nil
}

func (r *VisitorRepository) FindActiveByVisitorID(ctx context.Context, visitorID string) (*repository.PassWithVisitor, error) {
	r.mu.RLock()
	var newest *domain.Pass
	for _, pass := range r.activePasses() {
		if pass.VisitorID() == visitorID {
			newest = pass
			break
		}
	}
	r.mu.RUnlock()

	if newest == nil {
		return nil, nil
	}

	item, ok, err := r.join(ctx, newest)
	if err != nil || !ok {
		return nil, err
	}
	return &item, nil
}

func (r *VisitorRepository) FindActivePasses(_ context.Context, visitorID string) ([]*domain.Pass, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var passes []*domain.Pass
	for _, pass := range r.activePasses() {
		if pass.VisitorID() == visitorID {
			passes = append(passes, pass)
		}
	}
	return passes, nil
}

func (r *VisitorRepository) DeleteExpired(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	var purged int64
	for id, pass := range r.passes {
		if pass.ExpiredAt(now) {
			delete(r.passes, id)
			purged++
		}
	}
	return purged, nil
}

// activePasses returns unexpired passes, newest first. Callers hold the
// lock.
func (r *VisitorRepository) activePasses() []*domain.Pass {
	now := time.Now()
	var active []*domain.Pass
	for _, pass := range r.passes {
		if !pass.ExpiredAt(now) {
			active = append(active, pass)
		}
	}
	sort.Slice(active, func(i, j int) bool {
		return active[i].CreatedAt().After(active[j].CreatedAt())
	})
	return active
}

func (r *VisitorRepository) join(ctx context.Context, pass *domain.Pass) (repository.PassWithVisitor, bool, error) {
	r.mu.RLock()
	visitor, ok := r.visitors[pass.VisitorID()]
	r.mu.RUnlock()
	if !ok {
		return repository.PassWithVisitor{}, false, nil
	}

	resident, err := r.residents.FindByID(ctx, pass.ResidentID())
	if err != nil || resident == nil {
		return repository.PassWithVisitor{}, false, err
	}

	residentName := ""
	if user, err := r.users.FindByID(ctx, resident.UserID()); err == nil && user != nil {
		residentName = user.Name().String()
	}

	return repository.PassWithVisitor{
		Visitor:        visitor,
		Pass:           pass,
		ResidentUnitID: resident.UnitID(),
		ResidentName:   residentName,
	}, true, nil
}
