package service

import (
	"time"

	"github.com/condogate/condogate/pkg/auth"
)

// TokenIssuer is the token-issuing collaborator consumed by Login. The
// domain treats tokens as opaque strings.
type TokenIssuer interface {
	GenerateToken(userID, email string) (string, error)
}

type jwtTokenIssuer struct {
	secret string
	ttl    time.Duration
}

func NewJWTTokenIssuer(secret string, ttl time.Duration) TokenIssuer {
	return &jwtTokenIssuer{secret: secret, ttl: ttl}
}

func (i *jwtTokenIssuer) GenerateToken(userID, email string) (string, error) {
	return auth.NewAccessToken(userID, email, i.secret, i.ttl)
}
