package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/taskbloc/taskbloc-go/internal/crypto"
	"github.com/taskbloc/taskbloc-go/internal/model"
	"github.com/taskbloc/taskbloc-go/internal/repository"
	"github.com/taskbloc/taskbloc-go/internal/validate"
)

var (
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrWeakPassword       = errors.New("password does not meet minimum strength")
	ErrEmailTaken         = errors.New("email already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrTooManyAttempts    = errors.New("too many login attempts")

	// ErrUnexpected stands in for any storage fault. Raw database errors are
	// logged here and never shown to the caller.
	ErrUnexpected = errors.New("unexpected error")
)

// AuthService implements registration and login on top of the user store.
// It holds no session state; the returned Session is the caller's proof of
// login for the lifetime of the process.
type AuthService struct {
	users         *repository.UserRepository
	sessionSecret string
	sessionExpiry time.Duration

	// allowLegacyPlaintext enables the pre-hash compatibility path where a
	// stored credential equal to the submitted password authenticates. Off
	// unless the deployment still carries unmigrated rows.
	allowLegacyPlaintext bool

	attempts *loginThrottle
}

// NewAuthService creates a new AuthService.
func NewAuthService(users *repository.UserRepository, secret string, expiry time.Duration, allowLegacyPlaintext bool) *AuthService {
	return &AuthService{
		users:                users,
		sessionSecret:        secret,
		sessionExpiry:        expiry,
		allowLegacyPlaintext: allowLegacyPlaintext,
		attempts:             newLoginThrottle(1, 5),
	}
}

// Register creates a new account and returns a live session for it.
func (s *AuthService) Register(ctx context.Context, email, password, name string) (model.Session, error) {
	email = validate.NormalizeEmail(email)
	if !validate.IsValidEmail(email) {
		return model.Session{}, ErrInvalidEmail
	}
	if !validate.IsStrongPassword(password) {
		return model.Session{}, ErrWeakPassword
	}

	user := &model.User{
		Email:      email,
		Name:       strings.TrimSpace(name),
		Credential: crypto.HashPassword(password),
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return model.Session{}, ErrEmailTaken
		}
		slog.Error("create user failed", "error", err)
		return model.Session{}, ErrUnexpected
	}

	return s.newSession(user)
}

// Login authenticates an existing account. Unknown user and bad password are
// deliberately indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (model.Session, error) {
	email = validate.NormalizeEmail(email)
	if validate.IsBlank(email) {
		return model.Session{}, ErrInvalidCredentials
	}
	if !s.attempts.allow(email) {
		return model.Session{}, ErrTooManyAttempts
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.Session{}, ErrInvalidCredentials
		}
		slog.Error("load user failed", "error", err)
		return model.Session{}, ErrUnexpected
	}

	if !crypto.VerifyPassword(password, user.Credential) {
		if !s.allowLegacyPlaintext || !crypto.LegacyPlaintextMatch(password, user.Credential) {
			return model.Session{}, ErrInvalidCredentials
		}
	}

	return s.newSession(user)
}

// VerifySession checks a session token the caller holds and returns the
// account email it was issued for. Anything invalid or expired is rejected
// the same way a bad credential is.
func (s *AuthService) VerifySession(token string) (string, error) {
	claims, err := crypto.ValidateToken(token, s.sessionSecret)
	if err != nil {
		return "", ErrInvalidCredentials
	}
	return claims.Email, nil
}

// Profile loads the display fields for an account, credential excluded.
func (s *AuthService) Profile(ctx context.Context, email string) (model.User, error) {
	user, err := s.users.GetByEmail(ctx, validate.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.User{}, ErrInvalidCredentials
		}
		slog.Error("load profile failed", "error", err)
		return model.User{}, ErrUnexpected
	}

	user.Credential = ""
	return *user, nil
}

func (s *AuthService) newSession(user *model.User) (model.Session, error) {
	token, err := crypto.GenerateToken(user.Email, s.sessionSecret, s.sessionExpiry)
	if err != nil {
		slog.Error("sign session token failed", "error", err)
		return model.Session{}, ErrUnexpected
	}

	return model.Session{
		Token: token,
		Email: user.Email,
		Name:  user.Name,
	}, nil
}
