package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"hostel_booking/internal/apperrors"
	"hostel_booking/internal/domain"
	"hostel_booking/internal/repository"
	"hostel_booking/internal/utils"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const invalidCredentials = "Invalid username or password"

// dummyHash is compared against when the username is unknown so both
// failure paths cost one bcrypt comparison.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("hostel-timing-equalizer"), bcrypt.DefaultCost)

// SessionStore tracks issued sessions so they can be revoked.
type SessionStore interface {
	Create(ctx context.Context, id string, userID uint, ttl time.Duration) error
	Lookup(ctx context.Context, id string) (uint, error)
	Revoke(ctx context.Context, id string) error
}

// AuthService registers users, verifies credentials and resolves session tokens.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Authenticate(ctx context.Context, username, password string) (*Session, error)
	CurrentUser(ctx context.Context, token string) (*domain.User, error)
	Logout(ctx context.Context, token string) error
}

type RegisterInput struct {
	Username string `validate:"required,alphanum,min=3,max=80"`
	Email    string `validate:"required,email,max=120"`
	Password string `validate:"required,min=8,max=72"`
}

// Session is what a successful login hands back to the client.
type Session struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *domain.User `json:"user"`
}

type authService struct {
	users    repository.UserRepository
	sessions SessionStore
	secret   string
	ttl      time.Duration
	cost     int
}

func NewAuthService(users repository.UserRepository, sessions SessionStore, secret string, ttl time.Duration) AuthService {
	return &authService{users: users, sessions: sessions, secret: secret, ttl: ttl, cost: bcrypt.DefaultCost}
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	in.Username = strings.ToLower(strings.TrimSpace(in.Username))
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := validate.Struct(in); err != nil {
		return nil, apperrors.FromValidator(err)
	}

	if _, err := s.users.FindByUsername(ctx, in.Username); err == nil {
		return nil, apperrors.Conflict("Username already exists")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.Internal("Failed to register", err)
	}
	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		return nil, apperrors.Conflict("Email already registered")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.Internal("Failed to register", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, apperrors.Internal("Failed to hash password", err)
	}
	user := &domain.User{Username: in.Username, Email: in.Email, Password: string(hash)}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// lost a race with a concurrent registration
			return nil, apperrors.Conflict("Username already exists")
		}
		return nil, apperrors.Internal("Failed to register", err)
	}

	logrus.WithFields(logrus.Fields{"user_id": user.ID, "username": user.Username}).Info("User registered")
	return user, nil
}

func (s *authService) Authenticate(ctx context.Context, username, password string) (*Session, error) {
	user, err := s.users.FindByUsername(ctx, strings.ToLower(strings.TrimSpace(username)))
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.Internal("Failed to authenticate", err)
		}
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, apperrors.Unauthorized(invalidCredentials)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperrors.Unauthorized(invalidCredentials)
	}

	token, claims, err := utils.GenerateJWT(user.ID, s.secret, s.ttl)
	if err != nil {
		return nil, apperrors.Internal("Failed to generate token", err)
	}
	if err := s.sessions.Create(ctx, claims.ID, user.ID, s.ttl); err != nil {
		return nil, apperrors.Internal("Failed to start session", err)
	}
	return &Session{Token: token, ExpiresAt: claims.ExpiresAt.Time, User: user}, nil
}

func (s *authService) CurrentUser(ctx context.Context, token string) (*domain.User, error) {
	claims, err := utils.ParseJWT(token, s.secret)
	if err != nil {
		return nil, apperrors.Unauthorized("Invalid or expired token")
	}
	owner, err := s.sessions.Lookup(ctx, claims.ID)
	if errors.Is(err, utils.ErrSessionNotFound) || (err == nil && owner != claims.UserID) {
		return nil, apperrors.Unauthorized("Session expired, please log in again")
	} else if err != nil {
		return nil, apperrors.Internal("Failed to load session", err)
	}
	user, err := s.users.FindByID(ctx, claims.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.Unauthorized("Account no longer exists")
	} else if err != nil {
		return nil, apperrors.Internal("Failed to load user", err)
	}
	return user, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	claims, err := utils.ParseJWT(token, s.secret)
	if err != nil {
		return apperrors.Unauthorized("Invalid or expired token")
	}
	if err := s.sessions.Revoke(ctx, claims.ID); err != nil {
		return apperrors.Internal("Failed to end session", err)
	}
	return nil
}
