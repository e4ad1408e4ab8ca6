package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/minimal-api/internal/model"
	"github.com/minimal-api/internal/storage"
)

// AdministratorService owns credential handling for administrators:
// passwords are only ever stored and compared as bcrypt hashes.
type AdministratorService struct {
	store storage.AdministratorStore
	cost  int
}

type Option func(*AdministratorService)

// WithBcryptCost overrides bcrypt.DefaultCost. Tests use bcrypt.MinCost.
func WithBcryptCost(cost int) Option {
	return func(s *AdministratorService) {
		s.cost = cost
	}
}

func NewAdministratorService(store storage.AdministratorStore, opts ...Option) *AdministratorService {
	s := &AdministratorService{store: store, cost: bcrypt.DefaultCost}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Login returns the administrator whose email matches exactly and whose
// password hash matches password. A nil administrator with a nil error means
// the credentials were rejected; callers must not reveal which part failed.
func (s *AdministratorService) Login(ctx context.Context, email, password string) (*model.Administrator, error) {
	if email == "" || password == "" {
		return nil, nil
	}

	admin, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("login lookup: %w", err)
	}
	if admin == nil {
		return nil, nil
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, nil
	}
	return admin, nil
}

// Create hashes the password and stores a new administrator. The request is
// expected to have passed validation already.
func (s *AdministratorService) Create(ctx context.Context, req model.AdministratorRequest) (*model.Administrator, error) {
	role := model.RoleEditor
	if req.Role != nil {
		if parsed, ok := model.ParseRole(*req.Role); ok {
			role = parsed
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &model.Administrator{
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.store.Create(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}

func (s *AdministratorService) List(ctx context.Context, page int) ([]model.Administrator, error) {
	return s.store.FindPage(ctx, page)
}

func (s *AdministratorService) Get(ctx context.Context, id int64) (*model.Administrator, error) {
	return s.store.FindByID(ctx, id)
}

// EnsureSeed creates the bootstrap Adm account unless one with that email
// already exists. It reports whether a record was created.
func (s *AdministratorService) EnsureSeed(ctx context.Context, email, password string) (bool, error) {
	existing, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		return false, fmt.Errorf("seed lookup: %w", err)
	}
	if existing != nil {
		return false, nil
	}

	role := model.RoleAdmin.String()
	_, err = s.Create(ctx, model.AdministratorRequest{Email: email, Password: password, Role: &role})
	if errors.Is(err, storage.ErrDuplicateEmail) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("seed create: %w", err)
	}
	return true, nil
}
