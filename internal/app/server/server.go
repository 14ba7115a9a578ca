package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"hrms/internal/domain/attendance"
	"hrms/internal/domain/audit"
	"hrms/internal/domain/auth"
	"hrms/internal/domain/currency"
	"hrms/internal/domain/employee"
	"hrms/internal/domain/gratuity"
	"hrms/internal/domain/payroll"
	"hrms/internal/platform/config"
	"hrms/internal/platform/db"
	"hrms/internal/platform/jobs"
	"hrms/internal/platform/metrics"
	attendancehandler "hrms/internal/transport/http/handlers/attendance"
	audithandler "hrms/internal/transport/http/handlers/audit"
	currencyhandler "hrms/internal/transport/http/handlers/currency"
	gratuityhandler "hrms/internal/transport/http/handlers/gratuity"
	payrollhandler "hrms/internal/transport/http/handlers/payroll"
	"hrms/internal/transport/http/middleware"
)

const (
	devJWTSecret      = "dev-only-secret"
	redisRetries      = 5
	redisRetryBackoff = 2 * time.Second
	shutdownTimeout   = 10 * time.Second
)

// Services are the domain services the router exposes.
type Services struct {
	Currency   *currency.Registry
	Gratuity   *gratuity.Service
	Payroll    *payroll.Service
	Attendance *attendance.Service
	Jobs       *jobs.Service
	Audit      *audit.Service
	Perms      middleware.PermissionStore
	Metrics    *metrics.Collector
	Ready      func(ctx context.Context) error
}

type App struct {
	Config   config.Config
	Logger   *slog.Logger
	DB       *pgxpool.Pool
	Redis    *redis.Client
	Services Services
	Router   http.Handler
}

// New connects storage, builds the services and the router. Without
// DATABASE_URL every store runs in memory on the demo workforce.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	app := &App{Config: cfg, Logger: logger}
	if cfg.JWTSecret == "" {
		logger.Warn("JWT_SECRET not set, using development secret")
		app.Config.JWTSecret = devJWTSecret
	}

	var (
		employees     employee.StoreAPI
		gratuityStore gratuity.StoreAPI
		runStore      jobs.RunStore
		auditStore    audit.StoreAPI
	)
	if cfg.DatabaseURL != "" {
		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("db connect: %w", err)
		}
		app.DB = pool
		if cfg.RunMigrations {
			if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
				app.Close()
				return nil, fmt.Errorf("migrations: %w", err)
			}
		}
		employees = employee.NewStore(pool)
		gratuityStore = gratuity.NewStore(pool)
		runStore = jobs.NewStore(pool)
		auditStore = audit.NewStore(pool)
		if cfg.RunSeed {
			if err := db.Seed(ctx, employees); err != nil {
				app.Close()
				return nil, fmt.Errorf("seed: %w", err)
			}
		}
	} else {
		logger.Warn("DATABASE_URL not set, using in-memory stores")
		employees = employee.NewMemoryStore(employee.Fixtures()...)
		gratuityStore = gratuity.NewMemoryStore()
		runStore = jobs.NewMemoryStore()
		auditStore = audit.NewMemoryStore()
	}

	catalog := currency.DefaultCatalog()
	if cfg.CurrencyCatalogFile != "" {
		loaded, err := currency.LoadCatalogFile(cfg.CurrencyCatalogFile)
		if err != nil {
			app.Close()
			return nil, err
		}
		catalog = loaded
	}

	var selection currency.Store
	switch cfg.CurrencyStore {
	case config.CurrencyStorePostgres:
		selection = currency.NewPostgresStore(app.DB)
	case config.CurrencyStoreRedis:
		client, err := db.ConnectRedis(ctx, cfg, redisRetries, redisRetryBackoff)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("redis connect: %w", err)
		}
		app.Redis = client
		selection = currency.NewRedisStore(client)
	default:
		selection = currency.NewMemoryStore()
	}
	registry := currency.NewRegistry(catalog, selection, cfg.CurrencySettingsKey)
	if err := registry.Init(ctx); err != nil {
		logger.Warn("currency selection unavailable, using default", "err", err)
	}

	enforcer, err := auth.NewEnforcer()
	if err != nil {
		app.Close()
		return nil, err
	}

	collector := metrics.New()
	calc := gratuity.NewCalculator(gratuity.Options{ApplyCap: cfg.GratuityApplyCap})
	gratuitySvc := gratuity.NewService(gratuityStore, employees, calc)
	gratuitySvc.Observer = collector
	jobsSvc := jobs.New(runStore, gratuitySvc, cfg.GratuityAccrualInterval)
	jobsSvc.Observer = collector

	app.Services = Services{
		Currency:   registry,
		Gratuity:   gratuitySvc,
		Payroll:    payroll.NewService(employees, gratuitySvc, payroll.DefaultDeductions(cfg.PayrollHealthInsurance)),
		Attendance: attendance.NewService(employees),
		Jobs:       jobsSvc,
		Audit:      audit.New(auditStore),
		Perms:      enforcer,
		Metrics:    collector,
		Ready:      app.ready,
	}
	app.Router = NewRouter(app.Config, logger, app.Services)
	return app, nil
}

func (a *App) ready(ctx context.Context) error {
	if a.DB != nil {
		if err := a.DB.Ping(ctx); err != nil {
			return fmt.Errorf("db: %w", err)
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
	}
	return nil
}

func (a *App) Close() {
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	if a.DB != nil {
		a.DB.Close()
	}
}

func NewRouter(cfg config.Config, logger *slog.Logger, svc Services) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "X-Total-Count", "Content-Disposition"},
		MaxAge:           300,
	}))
	if cfg.MetricsEnabled && svc.Metrics != nil {
		router.Use(middleware.Metrics(svc.Metrics))
		router.Handle("/metrics", svc.Metrics.Handler())
	}

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := svc.Ready(ctx); err != nil {
				http.Error(w, "not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
		r.Use(middleware.Auth(cfg.JWTSecret))
		r.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))
		r.Use(middleware.SensitiveMutationRateLimit(cfg.RateLimitPerMinute, time.Minute))

		currencyHandler := currencyhandler.NewHandler(svc.Currency, svc.Perms)
		currencyHandler.Audit = svc.Audit
		currencyHandler.RegisterRoutes(r)

		gratuityHandler := gratuityhandler.NewHandler(svc.Gratuity, svc.Currency, svc.Jobs, svc.Perms)
		gratuityHandler.Audit = svc.Audit
		gratuityHandler.RegisterRoutes(r)

		payrollhandler.NewHandler(svc.Payroll, svc.Currency, svc.Perms).RegisterRoutes(r)
		attendancehandler.NewHandler(svc.Attendance, svc.Perms).RegisterRoutes(r)
		audithandler.NewHandler(svc.Audit, svc.Perms).RegisterRoutes(r)
	})

	return router
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func Run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	app, err := New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer app.Close()

	app.Services.Jobs.Start(ctx)

	srv := &http.Server{
		Addr:              app.Config.Addr,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("HRMS server listening", "addr", app.Config.Addr, "env", app.Config.Environment)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	logger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}
