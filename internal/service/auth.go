package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/msomdec/lotes-map/internal/domain"
	"github.com/msomdec/lotes-map/internal/repository"
)

// DemoUser is the account available before anyone registers.
var DemoUser = domain.User{Email: "demo@demo.com", Password: "demo", Name: "Lucas"}

// AuthService handles user registration and credential checks.
type AuthService struct {
	users *repository.Collection[domain.User]
	mu    sync.Mutex
}

// NewAuthService creates a new AuthService. Until the users collection is
// first saved, it contains only DemoUser.
func NewAuthService(store domain.RecordStore) *AuthService {
	return &AuthService{
		users: repository.NewCollection(store, domain.CollectionUsers, func() []domain.User {
			return []domain.User{DemoUser}
		}),
	}
}

// List returns all registered users.
func (s *AuthService) List(ctx context.Context) []domain.User {
	return s.users.Load(ctx)
}

// FindByEmail looks up a user by normalized email.
func (s *AuthService) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	email = domain.NormalizeEmail(email)
	for _, u := range s.users.Load(ctx) {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

// Register creates a new account and returns the identity to sign in as.
func (s *AuthService) Register(ctx context.Context, email, password, name string) (*domain.Identity, error) {
	email = domain.NormalizeEmail(email)
	name = strings.TrimSpace(name)
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users := s.users.Load(ctx)
	for _, u := range users {
		if u.Email == email {
			return nil, domain.ErrDuplicateEmail
		}
	}

	if name == "" {
		name = domain.DefaultUserName(email)
	}
	user := domain.User{Email: email, Password: password, Name: name}

	users = append(users, user)
	if err := s.users.Save(ctx, users); err != nil {
		return nil, fmt.Errorf("save users: %w", err)
	}

	id := user.Identity()
	return &id, nil
}

// Authenticate checks the credentials. Unknown emails and wrong passwords
// both return domain.ErrUnauthorized.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*domain.Identity, error) {
	email = domain.NormalizeEmail(email)
	for _, u := range s.users.Load(ctx) {
		if u.Email == email && u.Password == password {
			id := u.Identity()
			return &id, nil
		}
	}
	return nil, domain.ErrUnauthorized
}
