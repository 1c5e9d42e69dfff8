package application

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/eugenenazirov/knapsack/internal/api"
	"github.com/eugenenazirov/knapsack/internal/config"
	"github.com/eugenenazirov/knapsack/internal/itemsource"
	"github.com/eugenenazirov/knapsack/internal/metrics"
	"github.com/eugenenazirov/knapsack/internal/runner"
	"github.com/eugenenazirov/knapsack/internal/storage"
)

// App encapsulates the application dependencies and HTTP server.
type App struct {
	storage storage.Storage
	runner  *runner.Runner
	metrics *metrics.Collector
	handler *api.Handler
	router  http.Handler
	logger  *zap.Logger
	server  *http.Server
}

// NewRunner builds the solver runner shared by the CLI and the HTTP service.
func NewRunner(cfg config.Config, logger *zap.Logger, recorder runner.Recorder) *runner.Runner {
	opts := []runner.Option{
		runner.WithLogger(logger),
		runner.WithBacktrackLimit(cfg.MaxBacktrackItems),
		runner.WithCapacityLimit(cfg.MaxCapacity),
		runner.WithTableLimit(cfg.MaxTableCells),
	}
	if recorder != nil {
		opts = append(opts, runner.WithRecorder(recorder))
	}
	return runner.New(opts...)
}

// New initializes the application with all dependencies from the provided configuration.
func New(cfg config.Config, logger *zap.Logger) (*App, error) {
	store := storage.NewMemoryStorage()
	if err := seedItems(store, cfg, logger); err != nil {
		return nil, fmt.Errorf("failed to seed item sizes: %w", err)
	}

	collector := metrics.NewCollector()
	run := NewRunner(cfg, logger, collector)
	handler := api.NewHandler(run, store)
	apiRouter := api.NewRouter(handler, logger,
		api.WithLogging(cfg.EnableRequestLogging),
		api.WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
		api.WithRequestObserver(collector),
	)

	return &App{
		storage: store,
		runner:  run,
		metrics: collector,
		handler: handler,
		router:  apiRouter,
		logger:  logger,
		server:  NewServer(cfg, BuildRootHandler(apiRouter, collector.Handler())),
	}, nil
}

// seedItems replaces the default item set with the configured items file when
// that file exists. A file that exists but cannot be parsed is an error.
func seedItems(store storage.Storage, cfg config.Config, logger *zap.Logger) error {
	if cfg.ItemsFile == "" {
		return nil
	}

	path, err := ResolveProjectPath(cfg.ItemsFile)
	if err != nil {
		logger.Info("items file not found, serving default item set", zap.String("items_file", cfg.ItemsFile))
		return nil
	}

	items, err := itemsource.LoadFile(path, cfg.ItemCount)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		logger.Info("items file is empty, serving default item set", zap.String("items_file", path))
		return nil
	}

	sizes := make([]int, len(items))
	for i, item := range items {
		sizes[i] = item.Size
	}
	if err := store.SetItemSizes(sizes); err != nil {
		return err
	}

	logger.Info("item set loaded", zap.String("items_file", path), zap.Int("items", len(sizes)))
	return nil
}

// BuildRootHandler constructs the root HTTP handler that serves metrics and routes API requests.
func BuildRootHandler(apiHandler, metricsHandler http.Handler) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/api/", apiHandler)
	mux.Handle("GET /metrics", metricsHandler)
	mux.Handle("/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		http.Redirect(w, r, "/api/health", http.StatusTemporaryRedirect)
	}))
	return mux
}

// NewServer creates and configures an HTTP server from the provided configuration.
func NewServer(cfg config.Config, handler http.Handler) *http.Server {
	addr := cfg.Port
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}

	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
}

// Start starts the HTTP server in a goroutine and logs the listening address.
func (a *App) Start() error {
	go func() {
		a.logger.Info("server listening", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Fatal("server error", zap.Error(err))
		}
	}()
	return nil
}

// Server returns the HTTP server instance for shutdown handling.
func (a *App) Server() *http.Server {
	return a.server
}

// ResolveProjectPath locates a file or directory by walking up the directory
// tree from the working directory. Absolute paths are only checked for existence.
func ResolveProjectPath(relative string) (string, error) {
	if filepath.IsAbs(relative) {
		if _, err := os.Stat(relative); err != nil {
			return "", fmt.Errorf("unable to locate %s: %w", relative, err)
		}
		return relative, nil
	}

	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		candidate := filepath.Join(dir, relative)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("unable to locate %s", relative)
}
