package service

import (
	"context"

	"github.com/condogate/condogate/internal/domain"
	"github.com/condogate/condogate/internal/repository"
	"github.com/condogate/condogate/pkg/events"
	"github.com/condogate/condogate/pkg/logger"
)

// VisitorService owns visitors and their access passes. Listing and
// single lookups only see passes that have not expired; expired passes
// stay in storage until the sweep purges them.
type VisitorService interface {
	Create(ctx context.Context, req *domain.CreateVisitorRequest) (*domain.VisitorResponse, error)
	GetAll(ctx context.Context) ([]domain.VisitorResponse, error)
	GetByID(ctx context.Context, visitorID string) (*domain.VisitorResponse, error)
	Update(ctx context.Context, visitorID string, req *domain.UpdateVisitorRequest) (*domain.VisitorResponse, error)
}

type visitorService struct {
	visitorRepo  repository.VisitorRepository
	residentRepo repository.ResidentRepository
	eventBus     events.Publisher
}

func NewVisitorService(visitorRepo repository.VisitorRepository, residentRepo repository.ResidentRepository, eventBus events.Publisher) VisitorService {
	return &visitorService{
		visitorRepo:  visitorRepo,
		residentRepo: residentRepo,
		eventBus:     eventBus,
	}
}

func (s *visitorService) Create(ctx context.Context, req *domain.CreateVisitorRequest) (*domain.VisitorResponse, error) {
	resident, err := s.residentRepo.FindByID(ctx, req.ResidentID)
	if err != nil {
		return nil, domain.NewStorageError(err)
	}
	if resident == nil {
		return nil, domain.NewValidationError("resident not found")
	}

	name, err := domain.NewVisitorName(req.Name)
	if err != nil {
		return nil, err
	}
	document, err := domain.NewDocument(req.Document)
	if err != nil {
		return nil, err
	}
	plate, err := domain.NewOptionalVehiclePlate(req.VehiclePlate)
	if err != nil {
		return nil, err
	}
	limit, err := domain.NewTimeLimit(req.TimeLimit)
	if err != nil {
		return nil, err
	}

	daysValid := req.DaysValid
	if daysValid == 0 {
		daysValid = domain.PassMinDaysValid
	}

	visitor := domain.NewVisitor(name, document, plate)

	pass, err := domain.NewPass(resident.ID(), visitor.ID(), limit, daysValid)
	if err != nil {
		return nil, err
	}

	// Two separate writes; a failure between them leaves a visitor with
	// no pass, which the active-only queries simply never surface.
	if err := s.visitorRepo.SaveVisitor(ctx, visitor); err != nil {
		return nil, domain.NewStorageError(err)
	}
	if err := s.visitorRepo.CreatePass(ctx, pass); err != nil {
		return nil, domain.NewStorageError(err)
	}

	if s.eventBus != nil {
		err := s.eventBus.Publish(ctx, events.PassCreated, events.PassCreatedEvent{
			PassID:     pass.ID(),
			ResidentID: pass.ResidentID(),
			VisitorID:  pass.VisitorID(),
			ExpiresAt:  pass.ExpiresAt(),
			CreatedAt:  pass.CreatedAt(),
		})
		if err != nil {
			logger.WarnContext(ctx, "Failed to publish event", "subject", events.PassCreated, "error", err)
		}
	}

	resp := buildVisitorResponse(visitor, pass, resident.UnitID(), "")
	return &resp, nil
}

func (s *visitorService) GetAll(ctx context.Context) ([]domain.VisitorResponse, error) {
	items, err := s.visitorRepo.FindAllActive(ctx)
	if err != nil {
		return nil, domain.NewStorageError(err)
	}

	responses := make([]domain.VisitorResponse, 0, len(items))
	for _, item := range items {
		resp := buildVisitorResponse(item.Visitor, item.Pass, item.ResidentUnitID, item.ResidentName)
		responses = append(responses, resp)
	}
	return responses, nil
}

func (s *visitorService) GetByID(ctx context.Context, visitorID string) (*domain.VisitorResponse, error) {
	item, err := s.visitorRepo.FindActiveByVisitorID(ctx, visitorID)
	if err != nil {
		return nil, domain.NewStorageError(err)
	}
	if item == nil {
		return nil, nil
	}

	resp := buildVisitorResponse(item.Visitor, item.Pass, item.ResidentUnitID, item.ResidentName)
	return &resp, nil
}

func (s *visitorService) Update(ctx context.Context, visitorID string, req *domain.UpdateVisitorRequest) (*domain.VisitorResponse, error) {
	visitor, err := s.visitorRepo.FindVisitorByID(ctx, visitorID)
	if err != nil {
		return nil, domain.NewStorageError(err)
	}
	if visitor == nil {
		return nil, domain.NewNotFoundError("visitor not found")
	}

	if req.Name != nil {
		name, err := domain.NewVisitorName(*req.Name)
		if err != nil {
			return nil, err
		}
		visitor.UpdateName(name)
	}

	if req.VehiclePlate != nil {
		plate, err := domain.NewOptionalVehiclePlate(*req.VehiclePlate)
		if err != nil {
			return nil, err
		}
		visitor.UpdateVehiclePlate(plate)
	}

	if err := s.visitorRepo.SaveVisitor(ctx, visitor); err != nil {
		return nil, domain.NewStorageError(err)
	}

	item, err := s.visitorRepo.FindActiveByVisitorID(ctx, visitorID)
	if err != nil {
		return nil, domain.NewStorageError(err)
	}
	if item == nil {
		// No active pass left; return the visitor fields alone.
		resp := buildVisitorResponse(visitor, nil, "", "")
		return &resp, nil
	}

	resp := buildVisitorResponse(item.Visitor, item.Pass, item.ResidentUnitID, item.ResidentName)
	return &resp, nil
}

func buildVisitorResponse(visitor *domain.Visitor, pass *domain.Pass, unitID, residentName string) domain.VisitorResponse {
	resp := domain.VisitorResponse{
		ID:             visitor.ID(),
		Name:           visitor.Name().String(),
		Document:       visitor.Document().String(),
		ResidentUnitID: unitID,
		ResidentName:   residentName,
		CreatedAt:      visitor.CreatedAt(),
	}

	if !visitor.VehiclePlate().IsZero() {
		plate := visitor.VehiclePlate().String()
		resp.VehiclePlate = &plate
	}

	if pass != nil {
		resp.ResidentID = pass.ResidentID()
		resp.TimeLimit = pass.TimeLimit().String()
		resp.ExpiresAt = pass.ExpiresAt()
		resp.CanEnterNow = pass.CanEnterNow()
	}

	return resp
}
