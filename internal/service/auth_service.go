package service

import (
	"context"

	"github.com/condogate/condogate/internal/domain"
	"github.com/condogate/condogate/internal/repository"
)

// The same message is returned for an unknown email, an inactive or
// deleted account, and a wrong password, so login responses cannot be
// used to enumerate accounts.
const invalidCredentials = "invalid credentials"

type AuthService interface {
	Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error)
}

type authService struct {
	userRepo repository.UserRepository
	tokens   TokenIssuer
}

func NewAuthService(userRepo repository.UserRepository, tokens TokenIssuer) AuthService {
	return &authService{userRepo: userRepo, tokens: tokens}
}

func (s *authService) Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error) {
	email, err := domain.NewEmail(req.Email)
	if err != nil {
		// A malformed email gets the same answer as a wrong password.
		return nil, domain.NewUnauthorizedError(invalidCredentials)
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, domain.NewStorageError(err)
	}
	if user == nil {
		return nil, domain.NewUnauthorizedError(invalidCredentials)
	}

	if !user.IsValidForLogin() {
		return nil, domain.NewUnauthorizedError(invalidCredentials)
	}

	if !user.VerifyPassword(req.Password) {
		return nil, domain.NewUnauthorizedError(invalidCredentials)
	}

	token, err := s.tokens.GenerateToken(user.ID(), user.Email().String())
	if err != nil {
		return nil, domain.NewStorageError(err)
	}

	return &domain.LoginResponse{
		Token: token,
		User:  user.ToResponse(),
	}, nil
}
