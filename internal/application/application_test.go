package application

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/eugenenazirov/knapsack/internal/config"
	"github.com/eugenenazirov/knapsack/internal/knapsack"
	"github.com/eugenenazirov/knapsack/internal/storage"
)

func TestNewInitializesDependencies(t *testing.T) {
	cfg := baseTestConfig(":8085")
	logger := zaptest.NewLogger(t)

	app, err := New(cfg, logger)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	sizes, err := app.storage.GetItemSizes()
	if err != nil {
		t.Fatalf("GetItemSizes returned error: %v", err)
	}
	if want := storage.DefaultItemSizes(); !slices.Equal(sizes, want) {
		t.Fatalf("expected item sizes %v, got %v", want, sizes)
	}
	if app.server == nil || app.router == nil || app.handler == nil || app.runner == nil || app.metrics == nil {
		t.Fatalf("expected server, router, handler, runner, and metrics to be initialized")
	}
	if app.Server() != app.server {
		t.Fatalf("Server accessor did not return underlying instance")
	}
}

func TestNewSeedsItemsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "knapsack.txt")
	if err := os.WriteFile(path, []byte("9\n4\n6\n2\n"), 0o600); err != nil {
		t.Fatalf("write items: %v", err)
	}

	cfg := baseTestConfig(":0")
	cfg.ItemsFile = path
	cfg.ItemCount = 3

	app, err := New(cfg, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	sizes, err := app.storage.GetItemSizes()
	if err != nil {
		t.Fatalf("GetItemSizes returned error: %v", err)
	}
	if want := []int{9, 4, 6}; !slices.Equal(sizes, want) {
		t.Fatalf("expected item sizes %v, got %v", want, sizes)
	}
}

func TestNewReturnsErrorForMalformedItemsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "knapsack.txt")
	if err := os.WriteFile(path, []byte("9\nnine\n"), 0o600); err != nil {
		t.Fatalf("write items: %v", err)
	}

	cfg := baseTestConfig(":0")
	cfg.ItemsFile = path

	if _, err := New(cfg, zaptest.NewLogger(t)); err == nil {
		t.Fatalf("expected error for malformed items file")
	}
}

func TestNewRunnerAppliesConfiguredLimits(t *testing.T) {
	run := NewRunner(baseTestConfig(":0"), zaptest.NewLogger(t), nil)

	if err := run.Check(1000, 10_000, knapsack.DynamicProgramming); !errors.Is(err, knapsack.ErrCapacityTooLarge) {
		t.Fatalf("expected table limit to reject 1000 items x 10000 capacity, got %v", err)
	}
	if err := run.Check(99, 9_999, knapsack.DynamicProgramming); err != nil {
		t.Fatalf("expected 100x10000 cells to fit the table limit, got %v", err)
	}
	if err := run.Check(17, 10, knapsack.Backtracking); !errors.Is(err, knapsack.ErrTooManyItems) {
		t.Fatalf("expected backtracking limit to apply, got %v", err)
	}
	if err := run.Check(1, 10_001, knapsack.Backtracking); !errors.Is(err, knapsack.ErrCapacityTooLarge) {
		t.Fatalf("expected capacity limit to apply, got %v", err)
	}
}

func TestNewServerAppliesConfig(t *testing.T) {
	cfg := baseTestConfig("9090")
	handler := http.NewServeMux()

	server := NewServer(cfg, handler)
	if server.Addr != ":9090" {
		t.Fatalf("expected address :9090, got %s", server.Addr)
	}
	if server.Handler != handler {
		t.Fatalf("expected handler to be applied")
	}
	if server.ReadHeaderTimeout != cfg.ReadHeaderTimeout ||
		server.WriteTimeout != cfg.WriteTimeout ||
		server.IdleTimeout != cfg.IdleTimeout {
		t.Fatalf("server timeouts do not match configuration")
	}
}

func TestBuildRootHandler(t *testing.T) {
	apiInvoked := false
	apiHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/health" {
			t.Fatalf("unexpected path passed to API handler: %s", r.URL.Path)
		}
		apiInvoked = true
		w.WriteHeader(http.StatusNoContent)
	})
	metricsHandler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})

	handler := BuildRootHandler(apiHandler, metricsHandler)

	cases := []struct {
		target string
		want   int
	}{
		{"/", http.StatusTemporaryRedirect},
		{"/unknown", http.StatusNotFound},
		{"/metrics", http.StatusAccepted},
		{"/api/health", http.StatusNoContent},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.target, nil))
		if rec.Code != tc.want {
			t.Fatalf("%s: expected status %d, got %d", tc.target, tc.want, rec.Code)
		}
	}
	if !apiInvoked {
		t.Fatalf("expected API handler to be invoked")
	}
}

func TestResolveProjectPathFindsGoMod(t *testing.T) {
	path, err := ResolveProjectPath("go.mod")
	if err != nil {
		t.Fatalf("ResolveProjectPath returned error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected go.mod to exist at %s: %v", path, err)
	}
}

func TestResolveProjectPathUnknownTarget(t *testing.T) {
	if _, err := ResolveProjectPath("definitely-not-a-real-file"); err == nil {
		t.Fatalf("expected error for missing resource")
	}
	if _, err := ResolveProjectPath(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Fatalf("expected error for missing absolute path")
	}
}

func baseTestConfig(port string) config.Config {
	return config.Config{
		Port:                 port,
		ItemsFile:            "",
		ItemCount:            -1,
		Capacity:             10,
		MaxBacktrackItems:    16,
		MaxCapacity:          10_000,
		MaxTableCells:        1_000_000,
		LogLevel:             "info",
		ShutdownGracePeriod:  50 * time.Millisecond,
		ReadHeaderTimeout:    20 * time.Millisecond,
		WriteTimeout:         30 * time.Millisecond,
		IdleTimeout:          40 * time.Millisecond,
		EnableRequestLogging: false,
		RateLimitRPS:         0,
		RateLimitBurst:       0,
	}
}
