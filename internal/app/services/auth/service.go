// Package auth implements user registration and login.
package auth

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/feliks3/asset-finance-backend/internal/app/domain/user"
	"github.com/feliks3/asset-finance-backend/internal/app/storage"
	"github.com/feliks3/asset-finance-backend/internal/errors"
	"github.com/feliks3/asset-finance-backend/internal/logging"
	"github.com/feliks3/asset-finance-backend/internal/token"
)

const bcryptCost = 10

// Service registers and authenticates users.
type Service struct {
	users  storage.UserStore
	issuer *token.Issuer
	log    *logging.Logger
}

// New creates an auth Service.
func New(users storage.UserStore, issuer *token.Issuer, log *logging.Logger) *Service {
	return &Service{users: users, issuer: issuer, log: log}
}

// Register creates an account for email and returns a signed session token.
func (s *Service) Register(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", errors.Validation("Email and password are required")
	}

	if _, err := s.users.GetUserByEmail(ctx, email); err == nil {
		return "", errors.DuplicateUser()
	} else if err != storage.ErrUserNotFound {
		return "", errors.Internal("Error registering user", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", errors.Internal("Error registering user", err)
	}

	created, err := s.users.CreateUser(ctx, user.User{Email: email, PasswordHash: string(hash)})
	if err != nil {
		if err == storage.ErrDuplicateEmail {
			return "", errors.DuplicateUser()
		}
		return "", errors.Internal("Error registering user", err)
	}

	signed, err := s.issuer.Issue(created.ID)
	if err != nil {
		return "", errors.Internal("Error registering user", err)
	}

	s.log.WithContext(ctx).WithField("user_id", created.ID).Info("user registered")
	return signed, nil
}

// Login checks the credentials for email and returns a signed session token.
// Unknown emails and wrong passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(email)

	u, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if err == storage.ErrUserNotFound {
			return "", errors.InvalidCredentials()
		}
		return "", errors.Internal("Error logging in user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", errors.InvalidCredentials()
	}

	signed, err := s.issuer.Issue(u.ID)
	if err != nil {
		return "", errors.Internal("Error logging in user", err)
	}

	s.log.WithContext(ctx).WithField("user_id", u.ID).Info("user logged in")
	return signed, nil
}
