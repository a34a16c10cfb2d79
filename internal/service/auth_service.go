package service

import (
	"context"
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/token-gate/internal/auth"
	"github.com/spec-kit/token-gate/internal/domain"
	"github.com/spec-kit/token-gate/internal/repository"
)

// ErrInvalidCredentials hides whether the username or the password was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

// LoginInput carries the credentials presented to Login.
type LoginInput struct {
	Username string
	Password string
}

// Validate checks the credentials are present.
func (in LoginInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Username, validation.Required, validation.Length(1, 200)),
		validation.Field(&in.Password, validation.Required, validation.Length(1, 72)),
	)
}

// IssuedToken is the result of a successful login.
type IssuedToken struct {
	Token     string
	ExpiresAt time.Time
	ExpiresIn int64
	Identity  domain.UserIdentity
}

// BootstrapUser describes an account created at startup when absent.
type BootstrapUser struct {
	Username string
	Password string
	Roles    []string
}

// Validate checks the account can be stored and later log in.
func (b BootstrapUser) Validate() error {
	return validation.ValidateStruct(&b,
		validation.Field(&b.Username, validation.Required, validation.Length(1, 200)),
		validation.Field(&b.Password, validation.Required, validation.Length(1, 72)),
	)
}

// AuthService exchanges credentials for bearer tokens.
type AuthService struct {
	users      repository.UserRepository
	tokens     *auth.TokenManager
	bcryptCost int
	logger     *zap.Logger
}

// NewAuthService builds the service. bcryptCost applies to passwords hashed
// by EnsureUser.
func NewAuthService(users repository.UserRepository, tokens *auth.TokenManager, bcryptCost int, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{users: users, tokens: tokens, bcryptCost: bcryptCost, logger: logger}
}

// EnsureUser stores the account unless a user with the same name exists.
// It reports whether a user was created.
func (s *AuthService) EnsureUser(ctx context.Context, in BootstrapUser) (bool, error) {
	if err := in.Validate(); err != nil {
		return false, err
	}

	existing, err := s.users.GetByUsername(ctx, in.Username)
	if err == nil {
		s.logger.Debug("bootstrap user present", zap.String("user_id", existing.ID))
		return false, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return false, err
	}

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return false, err
	}
	user := &domain.User{
		Username:     in.Username,
		PasswordHash: hash,
		Roles:        in.Roles,
		Active:       true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return false, err
	}
	s.logger.Info("bootstrap user created", zap.String("user_id", user.ID), zap.Strings("roles", user.Roles))
	return true, nil
}

// Login verifies the credentials and issues a token for the user's identity.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*IssuedToken, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	user, err := s.users.GetByUsername(ctx, in.Username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.Active {
		s.logger.Info("login for inactive user", zap.String("user_id", user.ID))
		return nil, ErrInvalidCredentials
	}

	ok, err := auth.VerifyPassword(user.PasswordHash, in.Password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	identity := user.Identity()
	token, expiresAt, err := s.tokens.Issue(identity)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("token issued", zap.String("user_id", user.ID), zap.Time("expires_at", expiresAt))
	return &IssuedToken{
		Token:     token,
		ExpiresAt: expiresAt,
		ExpiresIn: s.tokens.Config().ExpiryInSeconds(),
		Identity:  identity,
	}, nil
}
