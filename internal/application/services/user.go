package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/DanielPopoola/shelter-api/internal/application"
	"github.com/DanielPopoola/shelter-api/internal/domain"
	"github.com/google/uuid"
)

const UserPageSize = 10

type AuthService struct {
	users  application.UserRepository
	hasher application.PasswordHasher
	tokens application.TokenIssuer
	logger *slog.Logger
}

func NewAuthService(
	users application.UserRepository,
	hasher application.PasswordHasher,
	tokens application.TokenIssuer,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens, logger: logger}
}

func (s *AuthService) Register(ctx context.Context, cmd RegisterCommand) (*AuthResult, error) {
	cmd.Email = normalizeEmail(cmd.Email)
	cmd.Name = strings.TrimSpace(cmd.Name)
	if err := validateCommand(cmd); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(cmd.Password)
	if err != nil {
		return nil, application.NewInternalError(err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.New().String(),
		Name:         cmd.Name,
		Email:        cmd.Email,
		PasswordHash: hash,
		Phone:        trimmedOrNil(cmd.Phone),
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, err
		}
		return nil, application.NewInternalError(err)
	}

	s.logger.Info("user registered", "user_id", user.ID)
	return s.result(user)
}

func (s *AuthService) Login(ctx context.Context, cmd LoginCommand) (*AuthResult, error) {
	cmd.Email = normalizeEmail(cmd.Email)
	if err := validateCommand(cmd); err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, cmd.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, application.NewInternalError(err)
	}
	if err := s.hasher.Compare(user.PasswordHash, cmd.Password); err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return nil, err
		}
		return nil, application.NewInternalError(err)
	}
	if user.IsDisabled {
		s.logger.Warn("login attempt on disabled account", "user_id", user.ID)
		return nil, domain.ErrAccountDisabled
	}

	return s.result(user)
}

// Authenticate resolves a bearer token to a live, enabled user.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, application.NewUnauthorizedError("Not authorized, token failed")
	}
	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, application.NewUnauthorizedError("Not authorized, user not found")
		}
		return nil, application.NewInternalError(err)
	}
	if user.IsDisabled {
		return nil, domain.ErrAccountDisabled
	}
	return user, nil
}

func (s *AuthService) result(user *domain.User) (*AuthResult, error) {
	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, application.NewInternalError(err)
	}
	return &AuthResult{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
		Token: token,
	}, nil
}

type UserService struct {
	users  application.UserRepository
	hasher application.PasswordHasher
	logger *slog.Logger
}

func NewUserService(users application.UserRepository, hasher application.PasswordHasher, logger *slog.Logger) *UserService {
	return &UserService{users: users, hasher: hasher, logger: logger}
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, application.NewNotFoundError("User")
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, application.NewNotFoundError("User")
		}
		return nil, application.NewInternalError(err)
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context, filter application.UserFilter, page domain.Page) (domain.PageResult[*domain.User], error) {
	if filter.Role != "" && !filter.Role.Valid() {
		return domain.PageResult[*domain.User]{}, application.NewValidationError("role must be USER or ADMIN")
	}
	items, total, err := s.users.List(ctx, filter, page)
	if err != nil {
		return domain.PageResult[*domain.User]{}, application.NewInternalError(err)
	}
	return domain.NewPageResult(items, page, total), nil
}

// UpdateProfile lets a user change their own name, phone and password.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, cmd UpdateProfileCommand) (*domain.User, error) {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if name, ok := nonEmpty(cmd.Name); ok {
		user.Name = name
	}
	if cmd.Phone != nil {
		user.Phone = trimmedOrNil(cmd.Phone)
	}
	if cmd.Password != nil && *cmd.Password != "" {
		if len(*cmd.Password) < 6 {
			return nil, application.NewValidationError("password must be at least 6 characters")
		}
		hash, err := s.hasher.Hash(*cmd.Password)
		if err != nil {
			return nil, application.NewInternalError(err)
		}
		user.PasswordHash = hash
	}
	return s.save(ctx, user)
}

func (s *UserService) AdminUpdate(ctx context.Context, id string, cmd AdminUpdateUserCommand) (*domain.User, error) {
	if cmd.Role != nil && !cmd.Role.Valid() {
		return nil, application.NewValidationError("role must be USER or ADMIN")
	}
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if name, ok := nonEmpty(cmd.Name); ok {
		user.Name = name
	}
	if email, ok := nonEmpty(cmd.Email); ok {
		user.Email = normalizeEmail(email)
		if err := validate.Var(user.Email, "email"); err != nil {
			return nil, application.NewValidationError("Please add a valid email")
		}
	}
	if cmd.Role != nil {
		user.Role = *cmd.Role
	}
	if cmd.IsDisabled != nil {
		user.IsDisabled = *cmd.IsDisabled
	}

	saved, err := s.save(ctx, user)
	if err != nil {
		return nil, err
	}
	s.logger.Info("user updated by admin", "user_id", user.ID, "role", user.Role, "disabled", user.IsDisabled)
	return saved, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return application.NewNotFoundError("User")
	}
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return application.NewNotFoundError("User")
		}
		return application.NewInternalError(err)
	}
	s.logger.Info("user deleted", "user_id", id)
	return nil
}

func (s *UserService) save(ctx context.Context, user *domain.User) (*domain.User, error) {
	user.UpdatedAt = time.Now().UTC()
	if err := s.users.Update(ctx, user); err != nil {
		switch {
		case errors.Is(err, domain.ErrConflict):
			return nil, err
		case errors.Is(err, domain.ErrNotFound):
			return nil, application.NewNotFoundError("User")
		}
		return nil, application.NewInternalError(err)
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
