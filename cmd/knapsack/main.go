package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/eugenenazirov/knapsack/internal/application"
	"github.com/eugenenazirov/knapsack/internal/config"
	"github.com/eugenenazirov/knapsack/internal/itemsource"
	"github.com/eugenenazirov/knapsack/internal/logging"
)

var signalNotify = signal.Notify

const unsetCount = "-2"

// flags collects the raw command line values. Empty strings and values below
// the valid range mean "not given". Count uses -2 because -1 means every line.
type flags struct {
	configFile        string
	logLevel          string
	itemsFile         string
	count             int
	capacity          int
	maxBacktrackItems int
	interactive       bool
	sizes             string
	port              string
	rateLimitRPS      float64
	rateLimitBurst    int
}

func main() {
	var f flags

	kingpinApp := kingpin.New("knapsack", "0/1 knapsack solver - compares dynamic programming against exhaustive backtracking")
	kingpinApp.Flag("config", "Path to YAML configuration file").StringVar(&f.configFile)
	kingpinApp.Flag("log-level", "Log level (debug, info, warn, error)").StringVar(&f.logLevel)

	runCmd := kingpinApp.Command("run", "Solve the items file with every algorithm and print a timing report").Default()
	runCmd.Flag("items-file", "File with one item size per line").StringVar(&f.itemsFile)
	runCmd.Flag("count", "Number of items to read (N), -1 reads every line").Default(unsetCount).IntVar(&f.count)
	runCmd.Flag("capacity", "Knapsack capacity (K)").Default("-1").IntVar(&f.capacity)
	runCmd.Flag("max-backtrack-items", "Largest item count the backtracking solver accepts (0 disables the limit)").Default("-1").IntVar(&f.maxBacktrackItems)
	runCmd.Flag("sizes", "Comma-separated item sizes used instead of the items file").StringVar(&f.sizes)
	runCmd.Flag("interactive", "Prompt for N and K on standard input").BoolVar(&f.interactive)

	serveCmd := kingpinApp.Command("serve", "Expose the solvers over HTTP")
	serveCmd.Flag("port", "HTTP port exposed by the service").StringVar(&f.port)
	serveCmd.Flag("rate-limit-rps", "Requests per second allowed (set 0 to disable)").Default("-1").Float64Var(&f.rateLimitRPS)
	serveCmd.Flag("rate-limit-burst", "Burst capacity for rate limiter (set 0 to disable)").Default("-1").IntVar(&f.rateLimitBurst)

	command := kingpin.MustParse(kingpinApp.Parse(os.Args[1:]))

	cfg, err := config.Load(f.overrides())
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer func() {
		_ = logger.Sync()
	}()

	switch command {
	case serveCmd.FullCommand():
		serve(cfg, logger)
	default:
		if err := runCompare(cfg, logger, os.Stdin, os.Stdout, runOptions{interactive: f.interactive, sizes: f.sizes}); err != nil {
			logger.Fatal("solve failed", zap.Error(err))
		}
	}
}

func (f flags) overrides() *config.CLIOverrides {
	overrides := &config.CLIOverrides{
		ConfigFile: f.configFile,
	}

	if f.logLevel != "" {
		overrides.LogLevel = &f.logLevel
	}
	if f.itemsFile != "" {
		overrides.ItemsFile = &f.itemsFile
	}
	if f.count >= itemsource.AllItems {
		overrides.ItemCount = &f.count
	}
	if f.capacity >= 0 {
		overrides.Capacity = &f.capacity
	}
	if f.maxBacktrackItems >= 0 {
		overrides.MaxBacktrackItems = &f.maxBacktrackItems
	}
	if f.port != "" {
		overrides.Port = &f.port
	}
	if f.rateLimitRPS >= 0 {
		overrides.RateLimitRPS = &f.rateLimitRPS
	}
	if f.rateLimitBurst >= 0 {
		overrides.RateLimitBurst = &f.rateLimitBurst
	}

	return overrides
}

func serve(cfg config.Config, logger *zap.Logger) {
	app, err := application.New(cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize application", zap.Error(err))
	}

	if err := app.Start(); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}

	shutdown(app.Server(), cfg.ShutdownGracePeriod, logger)
}

func shutdown(server *http.Server, timeout time.Duration, logger *zap.Logger) {
	quit := make(chan os.Signal, 1)
	signalNotify(quit, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
		if closeErr := server.Close(); closeErr != nil {
			logger.Error("forced close failed", zap.Error(closeErr))
		}
	}
}
