package mocks

import (
	"github.com/DanielPopoola/shelter-api/internal/application"
	"github.com/DanielPopoola/shelter-api/internal/domain"
	"github.com/stretchr/testify/mock"
)

type PasswordHasher struct{ mock.Mock }

func (m *PasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *PasswordHasher) Compare(hash, password string) error {
	return m.Called(hash, password).Error(0)
}

type TokenIssuer struct{ mock.Mock }

func (m *TokenIssuer) Issue(user *domain.User) (string, error) {
	args := m.Called(user)
	return args.String(0), args.Error(1)
}

func (m *TokenIssuer) Parse(token string) (*application.TokenClaims, error) {
	args := m.Called(token)
	return ptrOrNil[application.TokenClaims](args.Get(0)), args.Error(1)
}
