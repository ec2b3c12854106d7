package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"jenga/database/repository"
	userRepo "jenga/database/repository/user"
	"jenga/models"
	"jenga/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

// DefaultUserService is the production UserService implementation.
type DefaultUserService struct {
	Repo userRepo.UserRepository
}

func (s *DefaultUserService) Register(ctx context.Context, email, password, name, role string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	name = strings.TrimSpace(name)

	if email == "" || !strings.Contains(email, "@") {
		return nil, utils.ValidationError("a valid email is required")
	}
	if len(password) < minPasswordLength {
		return nil, utils.ValidationError("password must be at least %d characters", minPasswordLength)
	}
	if name == "" {
		return nil, utils.ValidationError("name is required")
	}
	if !models.IsValidRole(role) {
		return nil, utils.ValidationError("role must be CLIENT or PROVIDER")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, utils.WrapInternal("failed to hash password", err)
	}

	now := time.Now().UTC()
	account := &models.User{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         name,
		Role:         role,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.Repo.Create(ctx, account); err != nil {
		if errors.Is(err, userRepo.ErrDuplicateEmail) {
			return nil, utils.ConflictError("an account with that email already exists")
		}
		return nil, utils.WrapInternal("failed to create user", err)
	}

	token, err := utils.GenerateToken(account.ID, account.Role, account.Name)
	if err != nil {
		return nil, err
	}

	utils.GetLogger().Info("user registered",
		zap.String("userId", account.ID),
		zap.String("role", account.Role))
	return &AuthResult{Token: token, User: account}, nil
}

func (s *DefaultUserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, utils.ValidationError("email and password are required")
	}

	account, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, utils.WrapInternal("failed to fetch user", err)
	}
	// Same rejection for unknown email and bad password.
	if account == nil {
		return nil, utils.AuthorizationError("invalid credentials")
	}
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return nil, utils.AuthorizationError("invalid credentials")
	}

	token, err := utils.GenerateToken(account.ID, account.Role, account.Name)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: account}, nil
}

func (s *DefaultUserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	if id == "" {
		return nil, utils.ValidationError("user ID is required")
	}
	account, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, utils.WrapInternal("failed to fetch user", err)
	}
	if account == nil {
		return nil, utils.NotFoundError("user not found")
	}
	return account, nil
}

func (s *DefaultUserService) UpdateName(ctx context.Context, id, name string) (*models.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, utils.ValidationError("name is required")
	}
	if err := s.Repo.UpdateName(ctx, id, name); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NotFoundError("user not found")
		}
		return nil, utils.WrapInternal("failed to update user", err)
	}
	return s.GetByID(ctx, id)
}

func (s *DefaultUserService) List(ctx context.Context, page models.PageOptions) ([]models.User, models.Pagination, error) {
	page, ok := page.Normalized()
	if !ok {
		return nil, models.Pagination{}, utils.ValidationError("limit must be between 1 and 100")
	}

	users, hasMore, err := s.Repo.List(ctx, page)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidCursor) {
			return nil, models.Pagination{}, utils.ValidationError("invalid startAfter parameter")
		}
		return nil, models.Pagination{}, utils.WrapInternal("failed to list users", err)
	}

	p := models.Pagination{Limit: page.Limit, HasMore: hasMore}
	if hasMore && len(users) > 0 {
		p.NextPageStartAfter = users[len(users)-1].ID
	}
	return users, p, nil
}
