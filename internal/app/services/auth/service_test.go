package auth

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/feliks3/asset-finance-backend/internal/app/storage"
	svcerr "github.com/feliks3/asset-finance-backend/internal/errors"
	"github.com/feliks3/asset-finance-backend/internal/logging"
	"github.com/feliks3/asset-finance-backend/internal/token"
)

func newService(t *testing.T) (*Service, *token.Issuer) {
	t.Helper()
	issuer := token.NewIssuer([]byte("test-secret"), "asset-finance", time.Hour)
	return New(storage.NewMemory(), issuer, logging.NewDefault("test")), issuer
}

func TestRegisterIssuesVerifiableToken(t *testing.T) {
	svc, issuer := newService(t)

	signed, err := svc.Register(context.Background(), "alice@example.com", "hunter22")
	require.NoError(t, err)

	claims, err := issuer.Verify(signed)
	require.NoError(t, err)
	require.NotEmpty(t, claims.UserID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice@example.com", "hunter22")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "alice@example.com", "different")
	serviceErr := svcerr.GetServiceError(err)
	require.NotNil(t, serviceErr)
	require.Equal(t, http.StatusBadRequest, serviceErr.HTTPStatus)
	require.Equal(t, "User already exists", serviceErr.Message)
}

func TestRegisterRequiresEmailAndPassword(t *testing.T) {
	svc, _ := newService(t)

	for _, tc := range []struct{ email, password string }{
		{"", "hunter22"},
		{"alice@example.com", ""},
		{"   ", "hunter22"},
	} {
		_, err := svc.Register(context.Background(), tc.email, tc.password)
		serviceErr := svcerr.GetServiceError(err)
		require.NotNil(t, serviceErr, "email=%q password=%q", tc.email, tc.password)
		require.Equal(t, http.StatusBadRequest, serviceErr.HTTPStatus)
	}
}

func TestLogin(t *testing.T) {
	svc, issuer := newService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice@example.com", "hunter22")
	require.NoError(t, err)

	signed, err := svc.Login(ctx, "alice@example.com", "hunter22")
	require.NoError(t, err)

	claims, err := issuer.Verify(signed)
	require.NoError(t, err)
	require.NotEmpty(t, claims.UserID)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice@example.com", "hunter22")
	require.NoError(t, err)

	// Unknown email and wrong password produce the same error.
	for _, tc := range []struct{ email, password string }{
		{"nobody@example.com", "hunter22"},
		{"alice@example.com", "wrong"},
	} {
		_, err := svc.Login(ctx, tc.email, tc.password)
		serviceErr := svcerr.GetServiceError(err)
		require.NotNil(t, serviceErr)
		require.Equal(t, http.StatusUnauthorized, serviceErr.HTTPStatus)
		require.Equal(t, "Email or password is incorrect", serviceErr.Message)
	}
}

func TestRegisterStoresHashedPassword(t *testing.T) {
	store := storage.NewMemory()
	issuer := token.NewIssuer([]byte("test-secret"), "asset-finance", time.Hour)
	svc := New(store, issuer, logging.NewDefault("test"))

	_, err := svc.Register(context.Background(), "alice@example.com", "hunter22")
	require.NoError(t, err)

	u, err := store.GetUserByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	require.NotEqual(t, "hunter22", u.PasswordHash)
	require.NotEmpty(t, u.PasswordHash)
}
