package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/harborlight/backend/internal/auth"
	"github.com/harborlight/backend/internal/models"
	"github.com/harborlight/backend/internal/storage"
)

// ErrInvalidCredentials is returned for both an unknown email and a wrong
// password, so the login response never reveals which one it was.
var ErrInvalidCredentials = errors.New("Invalid email or password")

var ErrEmailTaken = errors.New("email already in use")

var ErrInvalidRole = errors.New("invalid role")

type AuthService struct {
	users  storage.UserStore
	tokens *auth.TokenManager
}

func NewAuthService(users storage.UserStore, tokens *auth.TokenManager) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Login authenticates a user and returns the user record plus a signed
// session token. Emails are matched lowercase. A successful login stamps the
// user's last-login time; failure to record it does not fail the login.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}
	if !user.Active || !auth.VerifyPassword(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID.Hex(), user.Email, user.Role)
	if err != nil {
		return nil, "", err
	}

	now := time.Now()
	if err := s.users.RecordLogin(ctx, user.ID.Hex(), now); err != nil {
		log.Printf("failed to record login for %s: %v", user.ID.Hex(), err)
	} else {
		user.LastLoginAt = &now
	}

	return user, token, nil
}

// CreateUser registers a new account with a validated role and a normalized,
// unique email.
func (s *AuthService) CreateUser(ctx context.Context, email, name, password, role string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !models.ValidRole(role) {
		return nil, ErrInvalidRole
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &models.User{
		Email:        email,
		Name:         name,
		Role:         role,
		PasswordHash: hash,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return user, nil
}

// SeedAdmin creates the bootstrap administrator when the user collection is
// empty and seed credentials are configured.
func (s *AuthService) SeedAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}
	count, err := s.users.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	_, err = s.CreateUser(ctx, email, "Administrator", password, models.RoleAdmin)
	if err != nil {
		return err
	}
	log.Printf("seeded admin user %s", email)
	return nil
}
