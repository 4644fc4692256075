// Command server runs the asset finance backend API.
package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/feliks3/asset-finance-backend/internal/app"
	"github.com/feliks3/asset-finance-backend/internal/app/httpapi"
	"github.com/feliks3/asset-finance-backend/internal/app/storage/postgres"
	"github.com/feliks3/asset-finance-backend/internal/config"
	"github.com/feliks3/asset-finance-backend/internal/logging"
	"github.com/feliks3/asset-finance-backend/internal/middleware"
	"github.com/feliks3/asset-finance-backend/internal/platform/migrations"
	"github.com/feliks3/asset-finance-backend/internal/token"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.NewDefault("server").WithError(err).Error("invalid configuration")
		os.Exit(1)
	}

	log := logging.New("asset-finance-backend", cfg.LogLevel, cfg.LogFormat)
	issuer := token.NewIssuer([]byte(cfg.JWTSecret), "asset-finance-backend", cfg.Duration())

	stores := app.Stores{}
	var db *sql.DB
	if cfg.DatabaseURL != "" {
		db, err = sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			log.WithError(err).Error("failed to open database")
			os.Exit(1)
		}
		defer db.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := migrations.Apply(ctx, db); err != nil {
			cancel()
			log.WithError(err).Error("failed to apply migrations")
			os.Exit(1)
		}
		cancel()

		store := postgres.New(db)
		stores.Users = store
		stores.Applications = store
		log.Info("using postgres storage")
	} else {
		log.Warn("DATABASE_URL not set, using in-memory storage")
	}

	application := app.New(stores, issuer, log)

	router := mux.NewRouter()
	router.Use(middleware.Metrics)
	httpapi.New(application.Auth, application.Applications, log).Register(router)

	var handler http.Handler = router
	handler = middleware.Auth(issuer, log)(handler)
	handler = middleware.RequestLogging(log)(handler)
	handler = middleware.CORS(cfg.CORSOrigins)(handler)

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", server.Addr).Info("server listening")
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("server failed")
			os.Exit(1)
		}
	case sig := <-stop:
		log.WithField("signal", sig.String()).Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.WithError(err).Error("graceful shutdown failed")
		}
	}
}
