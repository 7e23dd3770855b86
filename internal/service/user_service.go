package service

import (
	"context"

	"github.com/condogate/condogate/internal/domain"
	"github.com/condogate/condogate/internal/repository"
	"github.com/condogate/condogate/pkg/events"
	"github.com/condogate/condogate/pkg/logger"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// UserService owns the user lifecycle. Single-entity lookups return
// (nil, nil) when the user does not exist; every error crossing this
// boundary is a *domain.Error.
type UserService interface {
	Create(ctx context.Context, req *domain.CreateUserRequest) (*domain.UserResponse, error)
	GetByID(ctx context.Context, id string) (*domain.UserResponse, error)
	List(ctx context.Context, page, limit int) (*domain.PaginatedUsers, error)
	Update(ctx context.Context, id string, req *domain.UpdateUserRequest) (*domain.UserResponse, error)
	Delete(ctx context.Context, id string) error
}

type userService struct {
	userRepo  repository.UserRepository
	domainSvc *domain.UserDomainService
	eventBus  events.Publisher
}

func NewUserService(userRepo repository.UserRepository, domainSvc *domain.UserDomainService, eventBus events.Publisher) UserService {
	return &userService{
		userRepo:  userRepo,
		domainSvc: domainSvc,
		eventBus:  eventBus,
	}
}

func (s *userService) Create(ctx context.Context, req *domain.CreateUserRequest) (*domain.UserResponse, error) {
	name, err := domain.NewUserName(req.Name)
	if err != nil {
		return nil, err
	}
	email, err := domain.NewEmail(req.Email)
	if err != nil {
		return nil, err
	}
	password, err := domain.NewHashedPassword(req.Password)
	if err != nil {
		return nil, err
	}

	if err := s.domainSvc.CheckEmailUniqueness(ctx, email, ""); err != nil {
		return nil, err
	}

	user := domain.NewUser(name, email, password)
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, domain.NewStorageError(err)
	}

	s.publish(ctx, events.UserCreated, events.UserCreatedEvent{
		UserID:    user.ID(),
		Email:     user.Email().String(),
		CreatedAt: user.CreatedAt(),
	})

	resp := user.ToResponse()
	return &resp, nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*domain.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, domain.NewStorageError(err)
	}
	if user == nil {
		return nil, nil
	}

	resp := user.ToResponse()
	return &resp, nil
}

func (s *userService) List(ctx context.Context, page, limit int) (*domain.PaginatedUsers, error) {
	if page < 1 {
		return nil, domain.NewValidationError("page must be greater than 0")
	}
	if limit < 1 || limit > maxLimit {
		return nil, domain.NewValidationErrorf("limit must be between 1 and %d", maxLimit)
	}

	users, total, err := s.userRepo.FindAll(ctx, page, limit)
	if err != nil {
		return nil, domain.NewStorageError(err)
	}

	responses := make([]domain.UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, user.ToResponse())
	}

	return &domain.PaginatedUsers{
		Users:      responses,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: (total + limit - 1) / limit,
	}, nil
}

func (s *userService) Update(ctx context.Context, id string, req *domain.UpdateUserRequest) (*domain.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, domain.NewStorageError(err)
	}
	if user == nil {
		return nil, domain.NewNotFoundError("user not found")
	}

	if req.Name != nil {
		name, err := domain.NewUserName(*req.Name)
		if err != nil {
			return nil, err
		}
		user.UpdateName(name)
	}

	if req.Email != nil {
		email, err := domain.NewEmail(*req.Email)
		if err != nil {
			return nil, err
		}
		if err := s.domainSvc.CheckEmailUniqueness(ctx, email, user.ID()); err != nil {
			return nil, err
		}
		user.UpdateEmail(email)
	}

	if req.Password != nil {
		if err := user.UpdatePassword(*req.Password); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, domain.NewStorageError(err)
	}

	resp := user.ToResponse()
	return &resp, nil
}

func (s *userService) Delete(ctx context.Context, id string) error {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return domain.NewStorageError(err)
	}
	if user == nil {
		return domain.NewNotFoundError("user not found")
	}

	user.SoftDelete()
	if err := s.userRepo.Save(ctx, user); err != nil {
		return domain.NewStorageError(err)
	}

	s.publish(ctx, events.UserDeleted, events.UserDeletedEvent{
		UserID:    user.ID(),
		DeletedAt: *user.DeletedAt(),
	})

	return nil
}

func (s *userService) publish(ctx context.Context, subject string, payload any) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.Publish(ctx, subject, payload); err != nil {
		logger.WarnContext(ctx, "Failed to publish event", "subject", subject, "error", err)
	}
}
