package storage

import (
	"context"
	"fmt"
	"testing"

	"github.com/feliks3/asset-finance-backend/internal/app/domain/application"
	"github.com/feliks3/asset-finance-backend/internal/app/domain/user"
)

func seedApplications(t *testing.T, m *Memory, ownerID string, n int) []application.Application {
	t.Helper()
	apps := make([]application.Application, 0, n)
	for i := 0; i < n; i++ {
		app, err := m.CreateApplication(context.Background(), application.Application{
			Name:            fmt.Sprintf("app-%02d", i),
			Description:     "seed",
			PersonalDetails: "details",
			Income:          float64(100 * (i + 1)),
			OwnerID:         ownerID,
		})
		if err != nil {
			t.Fatalf("CreateApplication: %v", err)
		}
		apps = append(apps, app)
	}
	return apps
}

func TestCreateUserAssignsIDAndRejectsDuplicates(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	u, err := m.CreateUser(ctx, user.User{Email: "alice@example.com", PasswordHash: "h"})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if u.ID == "" {
		t.Fatal("expected generated id")
	}

	if _, err := m.CreateUser(ctx, user.User{Email: "alice@example.com", PasswordHash: "h"}); err != ErrDuplicateEmail {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}

	if _, err := m.GetUserByEmail(ctx, "nobody@example.com"); err != ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestCreateApplicationValidates(t *testing.T) {
	m := NewMemory()

	_, err := m.CreateApplication(context.Background(), application.Application{
		Name:    "incomplete",
		OwnerID: "owner-1",
	})
	if err == nil {
		t.Fatal("expected validation error for missing fields")
	}
}

func TestListApplicationsPaginationIsStable(t *testing.T) {
	m := NewMemory()
	apps := seedApplications(t, m, "owner-1", 7)

	first, err := m.ListApplications(context.Background(), Query{OwnerID: "owner-1", Limit: 5})
	if err != nil {
		t.Fatalf("ListApplications: %v", err)
	}
	second, err := m.ListApplications(context.Background(), Query{OwnerID: "owner-1", Skip: 5, Limit: 5})
	if err != nil {
		t.Fatalf("ListApplications: %v", err)
	}

	if len(first) != 5 || len(second) != 2 {
		t.Fatalf("page sizes = %d, %d", len(first), len(second))
	}
	for i, app := range append(first, second...) {
		if app.ID != apps[i].ID {
			t.Fatalf("position %d: got %s, want %s", i, app.ID, apps[i].ID)
		}
	}
}

func TestQueryFiltering(t *testing.T) {
	m := NewMemory()
	seedApplications(t, m, "owner-1", 3) // incomes 100, 200, 300
	seedApplications(t, m, "owner-2", 1)

	tests := []struct {
		name string
		q    Query
		want int
	}{
		{
			name: "owner scope",
			q:    Query{OwnerID: "owner-1"},
			want: 3,
		},
		{
			name: "numeric gte",
			q: Query{
				OwnerID:    "owner-1",
				Field:      application.FieldIncome,
				Number:     200,
				Comparison: application.CompareGTE,
			},
			want: 2,
		},
		{
			name: "text contains is case-insensitive",
			q: Query{
				OwnerID: "owner-1",
				Field:   application.FieldName,
				Text:    "APP-01",
			},
			want: 1,
		},
		{
			name: "no match",
			q: Query{
				OwnerID: "owner-1",
				Field:   application.FieldDescription,
				Text:    "missing",
			},
			want: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			count, err := m.CountApplications(context.Background(), tt.q)
			if err != nil {
				t.Fatalf("CountApplications: %v", err)
			}
			if count != tt.want {
				t.Fatalf("count = %d, want %d", count, tt.want)
			}
		})
	}
}

func TestUpdateApplicationPreservesOwnerAndCreatedAt(t *testing.T) {
	m := NewMemory()
	apps := seedApplications(t, m, "owner-1", 1)

	modified := apps[0]
	modified.Name = "renamed"
	modified.OwnerID = "intruder"

	updated, err := m.UpdateApplication(context.Background(), modified)
	if err != nil {
		t.Fatalf("UpdateApplication: %v", err)
	}
	if updated.OwnerID != "owner-1" {
		t.Fatalf("owner changed to %q", updated.OwnerID)
	}
	if !updated.CreatedAt.Equal(apps[0].CreatedAt) {
		t.Fatal("createdAt changed on update")
	}
	if updated.Name != "renamed" {
		t.Fatalf("name = %q", updated.Name)
	}
}

func TestSoftDeletedExcludedUnlessRequested(t *testing.T) {
	m := NewMemory()
	apps := seedApplications(t, m, "owner-1", 2)

	apps[0].IsDeleted = true
	if _, err := m.UpdateApplication(context.Background(), apps[0]); err != nil {
		t.Fatalf("UpdateApplication: %v", err)
	}

	live, err := m.CountApplications(context.Background(), Query{OwnerID: "owner-1"})
	if err != nil {
		t.Fatalf("CountApplications: %v", err)
	}
	if live != 1 {
		t.Fatalf("live count = %d, want 1", live)
	}

	all, err := m.CountApplications(context.Background(), Query{OwnerID: "owner-1", IncludeDeleted: true})
	if err != nil {
		t.Fatalf("CountApplications: %v", err)
	}
	if all != 2 {
		t.Fatalf("all count = %d, want 2", all)
	}
}

func TestGetApplicationNotFound(t *testing.T) {
	m := NewMemory()
	if _, err := m.GetApplication(context.Background(), "missing"); err != ErrApplicationNotFound {
		t.Fatalf("expected ErrApplicationNotFound, got %v", err)
	}
}
