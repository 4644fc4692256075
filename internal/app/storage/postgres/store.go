// Package postgres implements the storage interfaces backed by PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/feliks3/asset-finance-backend/internal/app/domain/application"
	"github.com/feliks3/asset-finance-backend/internal/app/domain/user"
	"github.com/feliks3/asset-finance-backend/internal/app/storage"
)

// Store implements the storage interfaces backed by PostgreSQL.
type Store struct {
	db *sql.DB
}

var _ storage.UserStore = (*Store)(nil)
var _ storage.ApplicationStore = (*Store)(nil)

// uniqueViolation is the PostgreSQL error code for unique constraint failures.
const uniqueViolation = "23505"

// New creates a Store using the provided database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// --- UserStore --------------------------------------------------------------

func (s *Store) CreateUser(ctx context.Context, u user.User) (user.User, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, email, password_hash)
		VALUES ($1, $2, $3)
	`, u.ID, u.Email, u.PasswordHash)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return user.User{}, storage.ErrDuplicateEmail
		}
		return user.User{}, err
	}
	return u, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash
		FROM users
		WHERE email = $1
	`, email)

	var u user.User
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return user.User{}, storage.ErrUserNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

// --- ApplicationStore -------------------------------------------------------

const applicationColumns = `id, name, description, personal_details, income, expenses, assets, liabilities, owner_id, is_deleted, created_at, updated_at`

func (s *Store) CreateApplication(ctx context.Context, app application.Application) (application.Application, error) {
	if err := app.Validate(); err != nil {
		return application.Application{}, err
	}

	if app.ID == "" {
		app.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	app.CreatedAt = now
	app.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO applications (`+applicationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, app.ID, app.Name, app.Description, app.PersonalDetails,
		app.Income, app.Expenses, app.Assets, app.Liabilities,
		app.OwnerID, app.IsDeleted, app.CreatedAt, app.UpdatedAt)
	if err != nil {
		return application.Application{}, err
	}
	return app, nil
}

func (s *Store) GetApplication(ctx context.Context, id string) (application.Application, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+applicationColumns+`
		FROM applications
		WHERE id = $1
	`, id)

	app, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return application.Application{}, storage.ErrApplicationNotFound
		}
		return application.Application{}, err
	}
	return app, nil
}

func (s *Store) UpdateApplication(ctx context.Context, app application.Application) (application.Application, error) {
	if err := app.Validate(); err != nil {
		return application.Application{}, err
	}

	existing, err := s.GetApplication(ctx, app.ID)
	if err != nil {
		return application.Application{}, err
	}

	app.OwnerID = existing.OwnerID
	app.CreatedAt = existing.CreatedAt
	app.UpdatedAt = time.Now().UTC()

	result, err := s.db.ExecContext(ctx, `
		UPDATE applications
		SET name = $2, description = $3, personal_details = $4, income = $5,
		    expenses = $6, assets = $7, liabilities = $8, is_deleted = $9, updated_at = $10
		WHERE id = $1
	`, app.ID, app.Name, app.Description, app.PersonalDetails,
		app.Income, app.Expenses, app.Assets, app.Liabilities,
		app.IsDeleted, app.UpdatedAt)
	if err != nil {
		return application.Application{}, err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return application.Application{}, storage.ErrApplicationNotFound
	}
	return app, nil
}

func (s *Store) ListApplications(ctx context.Context, q storage.Query) ([]application.Application, error) {
	where, args := buildWhere(q)

	query := `SELECT ` + applicationColumns + ` FROM applications ` + where + ` ORDER BY created_at`
	if q.Limit > 0 {
		args = append(args, q.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if q.Skip > 0 {
		args = append(args, q.Skip)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []application.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, app)
	}
	return result, rows.Err()
}

func (s *Store) CountApplications(ctx context.Context, q storage.Query) (int, error) {
	where, args := buildWhere(q)

	var count int
	row := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM applications `+where, args...)
	if err := row.Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// buildWhere translates a storage.Query into a WHERE clause. Field and
// comparison values come from closed enums validated upstream, so only
// placeholder arguments carry caller input.
func buildWhere(q storage.Query) (string, []interface{}) {
	clauses := make([]string, 0, 3)
	args := make([]interface{}, 0, 3)

	if !q.IncludeDeleted {
		clauses = append(clauses, "is_deleted = FALSE")
	}
	if q.OwnerID != "" {
		args = append(args, q.OwnerID)
		clauses = append(clauses, fmt.Sprintf("owner_id = $%d", len(args)))
	}

	if q.Field != "" {
		column := columnFor(q.Field)
		if q.Field.Numeric() {
			args = append(args, q.Number)
			clauses = append(clauses, fmt.Sprintf("%s %s $%d", column, operatorFor(q.Comparison), len(args)))
		} else {
			args = append(args, "%"+escapeLike(q.Text)+"%")
			clauses = append(clauses, fmt.Sprintf("%s ILIKE $%d", column, len(args)))
		}
	}

	if len(clauses) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(clauses, " AND "), args
}

func columnFor(field application.SearchField) string {
	switch field {
	case application.FieldPersonalDetails:
		return "personal_details"
	default:
		return string(field)
	}
}

func operatorFor(c application.Comparison) string {
	switch c {
	case application.CompareGT:
		return ">"
	case application.CompareGTE:
		return ">="
	case application.CompareLT:
		return "<"
	case application.CompareLTE:
		return "<="
	case application.CompareEQ:
		return "="
	case application.CompareNE:
		return "<>"
	}
	return ">="
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	return strings.ReplaceAll(s, `_`, `\_`)
}

type scannable interface {
	Scan(dest ...interface{}) error
}

func scanApplication(row scannable) (application.Application, error) {
	var app application.Application
	err := row.Scan(&app.ID, &app.Name, &app.Description, &app.PersonalDetails,
		&app.Income, &app.Expenses, &app.Assets, &app.Liabilities,
		&app.OwnerID, &app.IsDeleted, &app.CreatedAt, &app.UpdatedAt)
	if err != nil {
		return application.Application{}, err
	}
	app.CreatedAt = app.CreatedAt.UTC()
	app.UpdatedAt = app.UpdatedAt.UTC()
	return app, nil
}
