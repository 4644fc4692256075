// Package httpapi exposes the REST surface: /api/auth for registration and
// login, /api/applications for the finance application records.
package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/feliks3/asset-finance-backend/internal/app/domain/application"
	"github.com/feliks3/asset-finance-backend/internal/app/services/applications"
	"github.com/feliks3/asset-finance-backend/internal/app/services/auth"
	"github.com/feliks3/asset-finance-backend/internal/errors"
	"github.com/feliks3/asset-finance-backend/internal/httputil"
	"github.com/feliks3/asset-finance-backend/internal/logging"
	"github.com/feliks3/asset-finance-backend/internal/metrics"
)

// Handler wires the services into the router.
type Handler struct {
	auth         *auth.Service
	applications *applications.Service
	log          *logging.Logger
}

// New creates a Handler.
func New(authSvc *auth.Service, appSvc *applications.Service, log *logging.Logger) *Handler {
	return &Handler{auth: authSvc, applications: appSvc, log: log}
}

// Register mounts every route on r.
func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/api/auth/register", h.handleRegister).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/login", h.handleLogin).Methods(http.MethodPost)

	r.HandleFunc("/api/applications", h.handleList).Methods(http.MethodGet)
	r.HandleFunc("/api/applications", h.handleCreate).Methods(http.MethodPost)
	r.HandleFunc("/api/applications/{id}", h.handleUpdate).Methods(http.MethodPut)
	r.HandleFunc("/api/applications/{id}", h.handleDelete).Methods(http.MethodDelete)

	r.HandleFunc("/healthz", h.handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := httputil.DecodeJSON(r, &creds); err != nil {
		httputil.WriteServiceError(w, errors.Validation("Invalid request body"))
		return
	}

	signed, err := h.auth.Register(r.Context(), creds.Email, creds.Password)
	if err != nil {
		httputil.WriteServiceError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, map[string]string{
		"message": "User registered successfully",
		"token":   signed,
	})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := httputil.DecodeJSON(r, &creds); err != nil {
		httputil.WriteServiceError(w, errors.Validation("Invalid request body"))
		return
	}

	signed, err := h.auth.Login(r.Context(), creds.Email, creds.Password)
	if err != nil {
		httputil.WriteServiceError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{"token": signed})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	params := applications.ListParams{
		Search:     r.URL.Query().Get("search"),
		Filter:     r.URL.Query().Get("filter"),
		Comparison: r.URL.Query().Get("comparison"),
	}
	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			params.Page = n
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			params.Limit = n
		}
	}

	page, err := h.applications.List(r.Context(), h.userID(r), params)
	if err != nil {
		httputil.WriteServiceError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, page)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var app application.Application
	if err := httputil.DecodeJSON(r, &app); err != nil {
		httputil.WriteServiceError(w, errors.Validation("Invalid request body"))
		return
	}

	created, err := h.applications.Create(r.Context(), h.userID(r), app)
	if err != nil {
		httputil.WriteServiceError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var app application.Application
	if err := httputil.DecodeJSON(r, &app); err != nil {
		httputil.WriteServiceError(w, errors.Validation("Invalid request body"))
		return
	}

	updated, err := h.applications.Update(r.Context(), h.userID(r), mux.Vars(r)["id"], app)
	if err != nil {
		httputil.WriteServiceError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.applications.Delete(r.Context(), h.userID(r), mux.Vars(r)["id"]); err != nil {
		httputil.WriteServiceError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "Application marked as deleted"})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// userID reads the authenticated user set by the auth middleware.
func (h *Handler) userID(r *http.Request) string {
	return logging.GetUserID(r.Context())
}
