// Package application provides application initialization and dependency wiring.
// It creates the item storage, solver runner, metrics collector, handlers,
// routers, and HTTP server instances, keeping the main package focused on
// CLI parsing and orchestration.
package application
