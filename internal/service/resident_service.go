package service

import (
	"context"

	"github.com/condogate/condogate/internal/domain"
	"github.com/condogate/condogate/internal/repository"
	"github.com/condogate/condogate/pkg/events"
	"github.com/condogate/condogate/pkg/logger"
)

type ResidentService interface {
	Create(ctx context.Context, req *domain.CreateResidentRequest) (*domain.ResidentResponse, error)
	GetByID(ctx context.Context, id string) (*domain.ResidentResponse, error)
}

type residentService struct {
	residentRepo repository.ResidentRepository
	userRepo     repository.UserRepository
	eventBus     events.Publisher
}

func NewResidentService(residentRepo repository.ResidentRepository, userRepo repository.UserRepository, eventBus events.Publisher) ResidentService {
	return &residentService{
		residentRepo: residentRepo,
		userRepo:     userRepo,
		eventBus:     eventBus,
	}
}

func (s *residentService) Create(ctx context.Context, req *domain.CreateResidentRequest) (*domain.ResidentResponse, error) {
	if req.UserID == "" {
		return nil, domain.NewValidationError("user id is required")
	}
	if req.UnitID == "" {
		return nil, domain.NewValidationError("unit id is required")
	}

	role := domain.RoleOwner
	if req.Role != "" {
		parsed, ok := domain.ParseResidentRole(req.Role)
		if !ok {
			return nil, domain.NewValidationError("role must be one of owner, tenant, family")
		}
		role = parsed
	}

	user, err := s.userRepo.FindByID(ctx, req.UserID)
	if err != nil {
		return nil, domain.NewStorageError(err)
	}
	if user == nil {
		return nil, domain.NewValidationError("user not found")
	}

	existing, err := s.residentRepo.FindByUserID(ctx, req.UserID)
	if err != nil {
		return nil, domain.NewStorageError(err)
	}
	if existing != nil {
		return nil, domain.NewConflictError("user is already a resident of a unit")
	}

	resident := domain.NewResident(req.UserID, req.UnitID, role)
	if err := s.residentRepo.Save(ctx, resident); err != nil {
		return nil, domain.NewStorageError(err)
	}

	if s.eventBus != nil {
		err := s.eventBus.Publish(ctx, events.ResidentCreated, events.ResidentCreatedEvent{
			ResidentID: resident.ID(),
			UserID:     resident.UserID(),
			UnitID:     resident.UnitID(),
			CreatedAt:  resident.CreatedAt(),
		})
		if err != nil {
			logger.WarnContext(ctx, "Failed to publish event", "subject", events.ResidentCreated, "error", err)
		}
	}

	resp := resident.ToResponse()
	return &resp, nil
}

func (s *residentService) GetByID(ctx context.Context, id string) (*domain.ResidentResponse, error) {
	resident, err := s.residentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, domain.NewStorageError(err)
	}
	if resident == nil {
		return nil, nil
	}

	resp := resident.ToResponse()
	return &resp, nil
}
