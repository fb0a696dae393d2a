package service_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/msomdec/lotes-map/internal/domain"
	"github.com/msomdec/lotes-map/internal/repository/jsonfile"
	"github.com/msomdec/lotes-map/internal/repository/memory"
	"github.com/msomdec/lotes-map/internal/service"
)

func newTestAuthService(t *testing.T) *service.AuthService {
	t.Helper()
	return service.NewAuthService(memory.New())
}

func TestAuthService_List_SeedsDemoUser(t *testing.T) {
	auth := newTestAuthService(t)

	users := auth.List(context.Background())
	if len(users) != 1 || users[0] != service.DemoUser {
		t.Fatalf("expected only the demo user, got %+v", users)
	}
}

func TestAuthService_Authenticate_DemoUser(t *testing.T) {
	auth := newTestAuthService(t)

	id, err := auth.Authenticate(context.Background(), " DEMO@demo.com ", "demo")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if id.Email != "demo@demo.com" || id.Name != "Lucas" {
		t.Fatalf("unexpected identity %+v", id)
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	auth := newTestAuthService(t)
	ctx := context.Background()

	id, err := auth.Register(ctx, "  New@Example.com", "secret", "")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if id.Email != "new@example.com" {
		t.Fatalf("expected normalized email, got %q", id.Email)
	}
	if id.Name != "new" {
		t.Fatalf("expected name from local part, got %q", id.Name)
	}

	users := auth.List(ctx)
	if len(users) != 2 {
		t.Fatalf("expected demo user plus new user, got %+v", users)
	}
	if users[1].Password != "secret" {
		t.Fatalf("expected password stored as given, got %q", users[1].Password)
	}
}

func TestAuthService_Register_KeepsGivenName(t *testing.T) {
	auth := newTestAuthService(t)

	id, err := auth.Register(context.Background(), "ana@x.com", "pw", "  Ana María ")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if id.Name != "Ana María" {
		t.Fatalf("expected trimmed name, got %q", id.Name)
	}
}

func TestAuthService_Register_NoAtSign(t *testing.T) {
	auth := newTestAuthService(t)

	id, err := auth.Register(context.Background(), "localonly", "pw", "")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if id.Name != "Usuario" {
		t.Fatalf("expected Usuario, got %q", id.Name)
	}
}

func TestAuthService_Register_DuplicateEmailCaseInsensitive(t *testing.T) {
	auth := newTestAuthService(t)
	ctx := context.Background()

	if _, err := auth.Register(ctx, "a@x.com", "one", ""); err != nil {
		t.Fatalf("first register: %v", err)
	}

	_, err := auth.Register(ctx, "A@X.com", "two", "")
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestAuthService_Register_DemoEmailTaken(t *testing.T) {
	auth := newTestAuthService(t)

	_, err := auth.Register(context.Background(), "demo@demo.com", "x", "")
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestAuthService_Register_EmptyFields(t *testing.T) {
	auth := newTestAuthService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"empty email", "", "pw"},
		{"blank email", "   ", "pw"},
		{"empty password", "a@b.com", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := auth.Register(ctx, tc.email, tc.password, "")
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestAuthService_Authenticate_FailuresLookAlike(t *testing.T) {
	auth := newTestAuthService(t)
	ctx := context.Background()

	if _, err := auth.Register(ctx, "who@x.com", "right", ""); err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, wrongPassword := auth.Authenticate(ctx, "who@x.com", "wrong")
	_, unknownEmail := auth.Authenticate(ctx, "nobody@x.com", "right")

	if !errors.Is(wrongPassword, domain.ErrUnauthorized) || !errors.Is(unknownEmail, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for both, got %v and %v", wrongPassword, unknownEmail)
	}
	if wrongPassword.Error() != unknownEmail.Error() {
		t.Fatalf("errors should be indistinguishable: %q vs %q", wrongPassword, unknownEmail)
	}
}

func TestAuthService_FindByEmail(t *testing.T) {
	auth := newTestAuthService(t)
	ctx := context.Background()

	u, err := auth.FindByEmail(ctx, "Demo@Demo.com")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if u.Name != "Lucas" {
		t.Fatalf("expected Lucas, got %q", u.Name)
	}

	if _, err := auth.FindByEmail(ctx, "missing@x.com"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAuthService_PersistsAcrossInstances(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	ctx := context.Background()

	if _, err := service.NewAuthService(jsonfile.New(dir)).Register(ctx, "p@x.com", "pw", "P"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	id, err := service.NewAuthService(jsonfile.New(dir)).Authenticate(ctx, "p@x.com", "pw")
	if err != nil {
		t.Fatalf("Authenticate after reopen: %v", err)
	}
	if id.Name != "P" {
		t.Fatalf("expected P, got %q", id.Name)
	}
}
