package storage

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/feliks3/asset-finance-backend/internal/app/domain/application"
	"github.com/feliks3/asset-finance-backend/internal/app/domain/user"
)

// Memory is a thread-safe in-memory persistence layer implementing the storage
// interfaces defined in this package. It is intended for tests and prototyping
// and deliberately keeps the implementation simple.
type Memory struct {
	mu           sync.RWMutex
	nextID       int64
	users        map[string]user.User
	applications map[string]application.Application
	appOrder     []string
}

var _ UserStore = (*Memory)(nil)
var _ ApplicationStore = (*Memory)(nil)

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		nextID:       1,
		users:        make(map[string]user.User),
		applications: make(map[string]application.Application),
	}
}

func (m *Memory) nextIDLocked() string {
	id := m.nextID
	m.nextID++
	return fmt.Sprintf("%d", id)
}

// UserStore implementation ----------------------------------------------------

func (m *Memory) CreateUser(_ context.Context, u user.User) (user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.users {
		if existing.Email == u.Email {
			return user.User{}, ErrDuplicateEmail
		}
	}

	if u.ID == "" {
		u.ID = m.nextIDLocked()
	} else if _, exists := m.users[u.ID]; exists {
		return user.User{}, fmt.Errorf("user %s already exists", u.ID)
	}

	m.users[u.ID] = u
	return u, nil
}

func (m *Memory) GetUserByEmail(_ context.Context, email string) (user.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, ErrUserNotFound
}

// ApplicationStore implementation ----------------------------------------------

func (m *Memory) CreateApplication(_ context.Context, app application.Application) (application.Application, error) {
	if err := app.Validate(); err != nil {
		return application.Application{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if app.ID == "" {
		app.ID = m.nextIDLocked()
	} else if _, exists := m.applications[app.ID]; exists {
		return application.Application{}, fmt.Errorf("application %s already exists", app.ID)
	}

	now := time.Now().UTC()
	app.CreatedAt = now
	app.UpdatedAt = now

	m.applications[app.ID] = app
	m.appOrder = append(m.appOrder, app.ID)
	return app, nil
}

func (m *Memory) GetApplication(_ context.Context, id string) (application.Application, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	app, ok := m.applications[id]
	if !ok {
		return application.Application{}, ErrApplicationNotFound
	}
	return app, nil
}

func (m *Memory) UpdateApplication(_ context.Context, app application.Application) (application.Application, error) {
	if err := app.Validate(); err != nil {
		return application.Application{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	original, ok := m.applications[app.ID]
	if !ok {
		return application.Application{}, ErrApplicationNotFound
	}

	app.OwnerID = original.OwnerID
	app.CreatedAt = original.CreatedAt
	app.UpdatedAt = time.Now().UTC()

	m.applications[app.ID] = app
	return app, nil
}

// ListApplications returns matching records in insertion order, which stands
// in for the natural store order pagination relies on.
func (m *Memory) ListApplications(_ context.Context, q Query) ([]application.Application, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]application.Application, 0)
	skipped := 0
	for _, id := range m.appOrder {
		app := m.applications[id]
		if !matches(q, app) {
			continue
		}
		if skipped < q.Skip {
			skipped++
			continue
		}
		result = append(result, app)
		if q.Limit > 0 && len(result) == q.Limit {
			break
		}
	}
	return result, nil
}

func (m *Memory) CountApplications(_ context.Context, q Query) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, app := range m.applications {
		if matches(q, app) {
			count++
		}
	}
	return count, nil
}

func matches(q Query, app application.Application) bool {
	if !q.IncludeDeleted && app.IsDeleted {
		return false
	}
	if q.OwnerID != "" && app.OwnerID != q.OwnerID {
		return false
	}
	if q.Field == "" {
		return true
	}
	if q.Field.Numeric() {
		return q.Comparison.Matches(numericValue(app, q.Field), q.Number)
	}
	return strings.Contains(strings.ToLower(textValue(app, q.Field)), strings.ToLower(q.Text))
}

func numericValue(app application.Application, field application.SearchField) float64 {
	switch field {
	case application.FieldIncome:
		return app.Income
	case application.FieldExpenses:
		return app.Expenses
	case application.FieldAssets:
		return app.Assets
	case application.FieldLiabilities:
		return app.Liabilities
	}
	return 0
}

func textValue(app application.Application, field application.SearchField) string {
	switch field {
	case application.FieldName:
		return app.Name
	case application.FieldDescription:
		return app.Description
	case application.FieldPersonalDetails:
		return app.PersonalDetails
	}
	return ""
}
