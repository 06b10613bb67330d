package server

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"peopledesk/internal/domain/hr"
	"peopledesk/internal/domain/reports"
	"peopledesk/internal/domain/workflow"
	"peopledesk/internal/platform/config"
	"peopledesk/internal/platform/metrics"
	"peopledesk/internal/platform/seed"
	authhandler "peopledesk/internal/transport/http/handlers/auth"
	benefithandler "peopledesk/internal/transport/http/handlers/benefits"
	contracthandler "peopledesk/internal/transport/http/handlers/contracts"
	dashboardhandler "peopledesk/internal/transport/http/handlers/dashboard"
	employeehandler "peopledesk/internal/transport/http/handlers/employees"
	orghandler "peopledesk/internal/transport/http/handlers/org"
	userhandler "peopledesk/internal/transport/http/handlers/users"
	workflowhandler "peopledesk/internal/transport/http/handlers/workflows"
	"peopledesk/internal/transport/http/middleware"
)

type App struct {
	Config config.Config
	Store  *hr.Store
	Router http.Handler
}

// New builds the store, optionally loads the sample dataset and wires up the
// full route table.
func New(cfg config.Config) (*App, error) {
	store, err := hr.NewStore()
	if err != nil {
		return nil, fmt.Errorf("create store: %w", err)
	}
	if cfg.RunSeed {
		if err := seed.Load(store); err != nil {
			return nil, fmt.Errorf("seed store: %w", err)
		}
	}

	engine := workflow.NewEngine(store)
	reporter := reports.NewService(store)
	collector := metrics.New()

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(collector))
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Get("/metricsz", collector.ServeHTTP)

	router.Route("/api", func(r chi.Router) {
		authhandler.NewHandler(store, cfg.JWTSecret, cfg.TokenTTL).RegisterRoutes(r)
		orghandler.NewHandler(store).RegisterRoutes(r)
		employeehandler.NewHandler(store, reporter).RegisterRoutes(r)
		contracthandler.NewHandler(store).RegisterRoutes(r)
		benefithandler.NewHandler(store).RegisterRoutes(r)
		workflowhandler.NewHandler(store, engine).RegisterRoutes(r)
		dashboardhandler.NewHandler(store).RegisterRoutes(r)
		userhandler.NewHandler(store).RegisterRoutes(r)
	})

	router.Mount("/", spaHandler{staticPath: cfg.FrontendDir, indexPath: "index.html"})

	return &App{Config: cfg, Store: store, Router: router}, nil
}

func (a *App) Run() error {
	log.Printf("peopledesk server listening on %s", a.Config.Addr)
	return http.ListenAndServe(a.Config.Addr, a.Router)
}

// spaHandler serves the built frontend, falling back to index.html so
// client-side routes resolve after a refresh.
type spaHandler struct {
	staticPath string
	indexPath  string
}

func (h spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	path := filepath.Join(h.staticPath, r.URL.Path)
	_, err := os.Stat(path)
	if err == nil {
		http.FileServer(http.Dir(h.staticPath)).ServeHTTP(w, r)
		return
	}

	if os.IsNotExist(err) {
		http.ServeFile(w, r, filepath.Join(h.staticPath, h.indexPath))
		return
	}

	http.NotFound(w, r)
}
