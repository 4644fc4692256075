package storage

import (
	"context"
	"errors"

	"github.com/feliks3/asset-finance-backend/internal/app/domain/application"
	"github.com/feliks3/asset-finance-backend/internal/app/domain/user"
)

// Sentinel errors shared by every store implementation.
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrDuplicateEmail      = errors.New("email already registered")
	ErrApplicationNotFound = errors.New("application not found")
)

// Query describes a filtered application listing. A zero Field means no
// search constraint beyond owner and deletion state. Count queries reuse the
// same shape with Skip and Limit ignored.
type Query struct {
	OwnerID        string
	IncludeDeleted bool

	Field      application.SearchField
	Text       string
	Number     float64
	Comparison application.Comparison

	Skip  int
	Limit int
}

// UserStore persists credential records and enforces email uniqueness.
type UserStore interface {
	CreateUser(ctx context.Context, u user.User) (user.User, error)
	GetUserByEmail(ctx context.Context, email string) (user.User, error)
}

// ApplicationStore persists finance application records.
type ApplicationStore interface {
	CreateApplication(ctx context.Context, app application.Application) (application.Application, error)
	GetApplication(ctx context.Context, id string) (application.Application, error)
	UpdateApplication(ctx context.Context, app application.Application) (application.Application, error)
	ListApplications(ctx context.Context, q Query) ([]application.Application, error)
	CountApplications(ctx context.Context, q Query) (int, error)
}
