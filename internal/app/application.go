// Package app assembles the services and their storage into one unit.
package app

import (
	"github.com/feliks3/asset-finance-backend/internal/app/services/applications"
	"github.com/feliks3/asset-finance-backend/internal/app/services/auth"
	"github.com/feliks3/asset-finance-backend/internal/app/storage"
	"github.com/feliks3/asset-finance-backend/internal/logging"
	"github.com/feliks3/asset-finance-backend/internal/token"
)

// Stores collects the storage dependencies. A nil field falls back to the
// shared in-memory store, which keeps tests and local runs self-contained.
type Stores struct {
	Users        storage.UserStore
	Applications storage.ApplicationStore
}

// Application is the composition root used by the server and by tests.
type Application struct {
	Auth         *auth.Service
	Applications *applications.Service
}

// New wires the services. Missing stores default to a single in-memory
// instance shared by both services.
func New(stores Stores, issuer *token.Issuer, log *logging.Logger) *Application {
	if stores.Users == nil || stores.Applications == nil {
		mem := storage.NewMemory()
		if stores.Users == nil {
			stores.Users = mem
		}
		if stores.Applications == nil {
			stores.Applications = mem
		}
	}

	return &Application{
		Auth:         auth.New(stores.Users, issuer, log),
		Applications: applications.New(stores.Applications, log),
	}
}
