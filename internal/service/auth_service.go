package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/career-compass/internal/auth"
	"github.com/spec-kit/career-compass/internal/config"
	"github.com/spec-kit/career-compass/internal/domain"
	"github.com/spec-kit/career-compass/internal/repository"
	apperrors "github.com/spec-kit/career-compass/pkg/util"
)

// AuthService coordinates registration, login and session teardown.
type AuthService struct {
	users      repository.UserRepository
	codec      *auth.TokenCodec
	revoked    auth.TokenRevoker
	bcryptCost int
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Revocation auth.TokenRevoker
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		codec:      auth.NewTokenCodec(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		revoked:    deps.Revocation,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Register creates a new account. Duplicate emails surface as a 400 conflict.
func (s *AuthService) Register(ctx context.Context, email, password, displayName string, role domain.UserRole) (*domain.User, error) {
	if role == "" {
		role = domain.RoleJobSeeker
	}
	if !domain.ValidRole(role) {
		return nil, apperrors.NewValidationError("unknown role")
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("Email already registered")
	} else if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		DisplayName:  displayName,
		Role:         role,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// The pre-check races with concurrent registrations; the UNIQUE
		// constraint is the real arbiter.
		if isUniqueViolation(err) {
			return nil, apperrors.NewConflict("Email already registered")
		}
		return nil, err
	}
	return user, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// Login authenticates a user and issues a session credential. Both unknown
// email and wrong password collapse into the same failure so the response
// does not reveal which one happened.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("Login failed")
		}
		return nil, "", time.Time{}, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("Login failed")
	}

	token, expiresAt, err := s.codec.Encode(user)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, expiresAt, nil
}

// Logout revokes the presented credential until its natural expiry.
func (s *AuthService) Logout(ctx context.Context, identity *auth.Identity) error {
	if identity == nil {
		return nil
	}
	return s.revoked.Revoke(ctx, identity.TokenID, identity.ExpiresAt)
}

// CurrentUser loads the account behind the authenticated identity.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user")
		}
		return nil, err
	}
	return user, nil
}

// Codec exposes the token codec for middleware wiring.
func (s *AuthService) Codec() *auth.TokenCodec {
	return s.codec
}
