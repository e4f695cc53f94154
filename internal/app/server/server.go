package server

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"

	"kyronix/internal/domain/document"
	"kyronix/internal/domain/paystub"
	"kyronix/internal/platform/config"
	cryptoutil "kyronix/internal/platform/crypto"
	"kyronix/internal/platform/db"
	"kyronix/internal/platform/email"
	"kyronix/internal/platform/jobs"
	"kyronix/internal/platform/metrics"
	adminhandler "kyronix/internal/transport/http/handlers/admin"
	authhandler "kyronix/internal/transport/http/handlers/auth"
	documentshandler "kyronix/internal/transport/http/handlers/documents"
	employeeshandler "kyronix/internal/transport/http/handlers/employees"
	paystubshandler "kyronix/internal/transport/http/handlers/paystubs"
	verificationhandler "kyronix/internal/transport/http/handlers/verification"
	"kyronix/internal/transport/http/middleware"
)

func Run() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config invalid: %v", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, "migrations"); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	}

	cryptoSvc, err := cryptoutil.New(cfg.DataEncryptionKey)
	if err != nil {
		log.Fatalf("encryption key invalid: %v", err)
	}
	mailer := email.New(cfg)
	collector := metrics.New()

	engine := paystub.NewEngine(paystub.TaxYear2025())
	renderer := paystub.NewRenderer(paystub.CompanyInfo{
		Name:                cfg.EmployerLegalName,
		Address:             cfg.CompanyAddress,
		PayrollContactEmail: cfg.PayrollContactEmail,
	})
	paystubService := paystub.NewService(engine, renderer, paystub.NewStore(pool), cryptoSvc)
	documentService := document.NewService(document.NewStore(pool), cryptoSvc, cfg.DocumentDir)

	jobs.New(pool, cfg).Start(ctx)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(collector))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Auth(cfg.JWTSecret))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		authHandler := authhandler.NewHandler(pool, cfg, mailer)
		r.Post("/auth/login", authHandler.HandleLogin)
		r.Post("/auth/logout", authHandler.HandleLogout)
		r.Post("/auth/request-reset", authHandler.HandleRequestReset)
		r.Post("/auth/reset", authHandler.HandleResetPassword)

		employeeshandler.NewHandler(pool).RegisterRoutes(r)
		paystubshandler.NewHandler(pool, paystubService, cryptoSvc, collector).RegisterRoutes(r)
		documentshandler.NewHandler(pool, documentService).RegisterRoutes(r)
		verificationhandler.NewHandler(pool, cfg, mailer).RegisterRoutes(r)
		adminhandler.NewHandler(pool, collector).RegisterRoutes(r)
	})

	slog.Info("paystub portal listening", "addr", cfg.Addr, "env", cfg.Environment)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
