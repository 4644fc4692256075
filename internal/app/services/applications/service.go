// Package applications implements the finance application workflows:
// filtered listing, creation, soft deletion and full-record updates.
package applications

import (
	"context"
	"strconv"

	"github.com/feliks3/asset-finance-backend/internal/app/domain/application"
	"github.com/feliks3/asset-finance-backend/internal/app/storage"
	"github.com/feliks3/asset-finance-backend/internal/errors"
	"github.com/feliks3/asset-finance-backend/internal/logging"
)

const (
	defaultPage  = 1
	defaultLimit = 5
)

// ListParams are the raw query-string inputs of the listing endpoint.
// Zero values take the documented defaults.
type ListParams struct {
	Page       int
	Limit      int
	Search     string
	Filter     string
	Comparison string
}

// Page is one page of listing results.
type Page struct {
	Applications []application.Application `json:"applications"`
	TotalPages   int                       `json:"totalPages"`
	CurrentPage  int                       `json:"currentPage"`
}

// Service owns the application record workflows. Every operation is scoped
// to the authenticated owner.
type Service struct {
	store storage.ApplicationStore
	log   *logging.Logger
}

// New creates an applications Service.
func New(store storage.ApplicationStore, log *logging.Logger) *Service {
	return &Service{store: store, log: log}
}

// List returns one page of the owner's live applications, optionally
// filtered on a single field.
func (s *Service) List(ctx context.Context, ownerID string, p ListParams) (Page, error) {
	if p.Page < 1 {
		p.Page = defaultPage
	}
	if p.Limit < 1 {
		p.Limit = defaultLimit
	}
	if p.Filter == "" {
		p.Filter = string(application.FieldName)
	}
	if p.Comparison == "" {
		p.Comparison = string(application.CompareGTE)
	}

	field, ok := application.ParseSearchField(p.Filter)
	if !ok {
		return Page{}, errors.Validation("Invalid filter field.")
	}
	comparison, ok := application.ParseComparison(p.Comparison)
	if !ok {
		return Page{}, errors.Validation("Invalid comparison operator.")
	}

	q := storage.Query{
		OwnerID: ownerID,
		Skip:    (p.Page - 1) * p.Limit,
		Limit:   p.Limit,
	}
	if p.Search != "" {
		q.Field = field
		q.Comparison = comparison
		if field.Numeric() {
			number, err := strconv.ParseFloat(p.Search, 64)
			if err != nil {
				return Page{}, errors.Validation("Invalid search value for numeric field.")
			}
			q.Number = number
		} else {
			q.Text = p.Search
		}
	}

	apps, err := s.store.ListApplications(ctx, q)
	if err != nil {
		return Page{}, errors.Internal("Failed to retrieve applications", err)
	}
	count, err := s.store.CountApplications(ctx, q)
	if err != nil {
		return Page{}, errors.Internal("Failed to retrieve applications", err)
	}

	if apps == nil {
		apps = []application.Application{}
	}
	return Page{
		Applications: apps,
		TotalPages:   (count + p.Limit - 1) / p.Limit,
		CurrentPage:  p.Page,
	}, nil
}

// Create persists a new application owned by ownerID.
func (s *Service) Create(ctx context.Context, ownerID string, app application.Application) (application.Application, error) {
	app.ID = ""
	app.OwnerID = ownerID
	app.IsDeleted = false

	created, err := s.store.CreateApplication(ctx, app)
	if err != nil {
		return application.Application{}, errors.Internal("Failed to create application", err)
	}

	s.log.WithContext(ctx).WithField("application_id", created.ID).Info("application created")
	return created, nil
}

// Delete soft-deletes the owner's application. A missing record and a
// record owned by someone else are indistinguishable to the caller.
func (s *Service) Delete(ctx context.Context, ownerID, id string) error {
	app, err := s.store.GetApplication(ctx, id)
	if err != nil {
		if err == storage.ErrApplicationNotFound {
			return errors.NotFound("Application not found or unauthorized to delete")
		}
		return errors.Internal("Failed to delete application", err)
	}
	if app.OwnerID != ownerID || app.IsDeleted {
		return errors.NotFound("Application not found or unauthorized to delete")
	}

	app.IsDeleted = true
	if _, err := s.store.UpdateApplication(ctx, app); err != nil {
		return errors.Internal("Failed to delete application", err)
	}

	s.log.WithContext(ctx).WithField("application_id", id).Info("application soft-deleted")
	return nil
}

// Update replaces every updatable field of the owner's application. The
// same 404 collapse as Delete applies.
func (s *Service) Update(ctx context.Context, ownerID, id string, fields application.Application) (application.Application, error) {
	existing, err := s.store.GetApplication(ctx, id)
	if err != nil {
		if err == storage.ErrApplicationNotFound {
			return application.Application{}, errors.NotFound("Application not found or unauthorized to update")
		}
		return application.Application{}, errors.Internal("Failed to update application", err)
	}
	if existing.OwnerID != ownerID || existing.IsDeleted {
		return application.Application{}, errors.NotFound("Application not found or unauthorized to update")
	}

	fields.ID = existing.ID
	fields.OwnerID = existing.OwnerID
	fields.IsDeleted = existing.IsDeleted
	fields.CreatedAt = existing.CreatedAt

	updated, err := s.store.UpdateApplication(ctx, fields)
	if err != nil {
		return application.Application{}, errors.Internal("Failed to update application", err)
	}
	return updated, nil
}
