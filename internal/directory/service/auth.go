package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/openummah/masjidhub/internal/directory/domain"
	"github.com/openummah/masjidhub/internal/directory/store"
	"github.com/openummah/masjidhub/pkg/cryptox"
	"github.com/openummah/masjidhub/pkg/idx"
	"github.com/openummah/masjidhub/pkg/jwtx"
	"github.com/openummah/masjidhub/pkg/slogx"
)

var (
	// ErrInvalidCredentials covers both unknown email and wrong password.
	// Login callers must not be able to tell the two apart.
	ErrInvalidCredentials = errors.New("invalid_credentials")

	ErrEmailTaken = errors.New("email_taken")
	ErrValidation = errors.New("validation")
)

type AuthService struct {
	Store  store.Store
	Signer *jwtx.Signer
}

type RegisterParams struct {
	Email    string
	Password string
	Name     string
	Role     domain.Role
	MasjidID string // optional, binds the account to an existing mosque
}

// Login authenticates by email and password and issues a signed token. The
// bcrypt check runs even though an unknown email already failed the lookup;
// the timing difference between the two paths is not worth hiding here, the
// error is what must stay uniform.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, string, error) {
	log := slogx.FromContext(ctx)
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Info("login rejected", slog.String("reason", "unknown email"))
			return domain.User{}, "", ErrInvalidCredentials
		}
		return domain.User{}, "", fmt.Errorf("lookup user: %w", err)
	}

	if !cryptox.CheckPassword(password, user.PasswordHash) {
		log.Info("login rejected", slog.String("reason", "bad password"), slog.String("user_id", user.ID))
		return domain.User{}, "", ErrInvalidCredentials
	}

	token, err := s.Signer.Issue(jwtx.Identity{
		UserID:   user.ID,
		Email:    user.Email,
		Role:     string(user.Role),
		MasjidID: user.MasjidID,
	})
	if err != nil {
		return domain.User{}, "", fmt.Errorf("issue token: %w", err)
	}

	log.Info("login succeeded", slog.String("user_id", user.ID), slog.String("role", string(user.Role)))
	return user.Sanitized(), token, nil
}

// Register creates a user account. No token is issued; the new user logs in
// afterwards.
func (s *AuthService) Register(ctx context.Context, p RegisterParams) (domain.User, error) {
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))
	p.Name = strings.TrimSpace(p.Name)

	if p.Email == "" || p.Password == "" || p.Name == "" {
		return domain.User{}, fmt.Errorf("%w: email, password and name are required", ErrValidation)
	}
	if p.Role == "" {
		p.Role = domain.RoleMasjidAdmin
	}
	if !p.Role.Valid() {
		return domain.User{}, fmt.Errorf("%w: unknown role %q", ErrValidation, p.Role)
	}

	hash, err := cryptox.HashPassword(p.Password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:           idx.New().String(),
		Email:        p.Email,
		Name:         p.Name,
		PasswordHash: hash,
		Role:         p.Role,
		MasjidID:     p.MasjidID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrEmailTaken
		}
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}

	slogx.FromContext(ctx).Info("user registered", slog.String("user_id", user.ID), slog.String("role", string(user.Role)))
	return user.Sanitized(), nil
}
