package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/sakif/portfolio-api/internal/apperror"
	"github.com/sakif/portfolio-api/internal/auth"
	"github.com/sakif/portfolio-api/internal/repository/memory"
)

// newTestAuthService wires an AuthService against the in-memory store.
// bcrypt cost 4 keeps each test fast; the hashing logic is identical.
func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()

	tokens, err := auth.NewTokenService("test-secret-at-least-16-chars!!", 0)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	return NewAuthService(memory.New(), tokens, auth.NewPasswordServiceForTest(4), logger)
}

// =========================================================================
// REGISTER TESTS
// =========================================================================

func TestRegister(t *testing.T) {
	s := newTestAuthService(t)

	result, err := s.Register(context.Background(), "alice", "p@ss")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if result.Token == "" {
		t.Error("Register() did not issue a token")
	}
	if result.User.ID == "" {
		t.Error("Register() user has no ID")
	}
	if result.User.Username != "alice" {
		t.Errorf("Username = %q, want %q", result.User.Username, "alice")
	}
	if result.User.PasswordHash == "p@ss" {
		t.Error("Register() stored the plaintext password")
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	s := newTestAuthService(t)
	ctx := context.Background()

	if _, err := s.Register(ctx, "alice", "p@ss"); err != nil {
		t.Fatalf("first Register() error = %v", err)
	}

	_, err := s.Register(ctx, "alice", "other-password")
	if !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("Register() duplicate error = %v, want ErrConflict", err)
	}
}

func TestRegister_EmptyFields(t *testing.T) {
	s := newTestAuthService(t)
	ctx := context.Background()

	if _, err := s.Register(ctx, "", "p@ss"); !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("Register() with empty username error = %v, want ErrValidation", err)
	}
	if _, err := s.Register(ctx, "alice", ""); !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("Register() with empty password error = %v, want ErrValidation", err)
	}
}

// =========================================================================
// LOGIN TESTS
// =========================================================================

func TestLogin(t *testing.T) {
	s := newTestAuthService(t)
	ctx := context.Background()

	registered, err := s.Register(ctx, "alice", "p@ss")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	result, err := s.Login(ctx, "alice", "p@ss")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if result.Token == "" {
		t.Error("Login() did not issue a token")
	}
	if result.User.ID != registered.User.ID {
		t.Errorf("Login() user ID = %q, want %q", result.User.ID, registered.User.ID)
	}
}

// Unknown username and wrong password must be indistinguishable: same error
// value, same message — the 401 body the handler emits is byte-identical.
func TestLogin_EnumerationResistance(t *testing.T) {
	s := newTestAuthService(t)
	ctx := context.Background()

	if _, err := s.Register(ctx, "alice", "p@ss"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	_, errNoUser := s.Login(ctx, "nobody", "p@ss")
	_, errBadPass := s.Login(ctx, "alice", "wrong")

	if !errors.Is(errNoUser, apperror.ErrInvalidCredentials) {
		t.Errorf("unknown-user error = %v, want ErrInvalidCredentials", errNoUser)
	}
	if !errors.Is(errBadPass, apperror.ErrInvalidCredentials) {
		t.Errorf("wrong-password error = %v, want ErrInvalidCredentials", errBadPass)
	}
	if errNoUser.Error() != errBadPass.Error() {
		t.Errorf("error messages differ: %q vs %q — username enumeration leak",
			errNoUser.Error(), errBadPass.Error())
	}
}
