package main

import (
	"testing"
)

func TestOverridesSkipsUnsetFlags(t *testing.T) {
	t.Parallel()

	f := flags{
		configFile:        "config.yaml",
		count:             -2,
		capacity:          -1,
		maxBacktrackItems: -1,
		rateLimitRPS:      -1,
		rateLimitBurst:    -1,
	}

	overrides := f.overrides()
	if overrides.ConfigFile != "config.yaml" {
		t.Fatalf("expected config file to be forwarded, got %q", overrides.ConfigFile)
	}
	if overrides.LogLevel != nil || overrides.ItemsFile != nil || overrides.ItemCount != nil ||
		overrides.Capacity != nil || overrides.MaxBacktrackItems != nil || overrides.Port != nil ||
		overrides.RateLimitRPS != nil || overrides.RateLimitBurst != nil {
		t.Fatalf("expected unset flags to leave overrides nil: %+v", overrides)
	}
}

func TestOverridesForwardsSetFlags(t *testing.T) {
	t.Parallel()

	f := flags{
		logLevel:          "debug",
		itemsFile:         "items.txt",
		count:             -1,
		capacity:          0,
		maxBacktrackItems: 0,
		port:              "9090",
		rateLimitRPS:      0,
		rateLimitBurst:    5,
	}

	overrides := f.overrides()
	if overrides.LogLevel == nil || *overrides.LogLevel != "debug" {
		t.Fatalf("expected log level override")
	}
	if overrides.ItemsFile == nil || *overrides.ItemsFile != "items.txt" {
		t.Fatalf("expected items file override")
	}
	if overrides.ItemCount == nil || *overrides.ItemCount != -1 {
		t.Fatalf("expected count -1 to be forwarded as all items")
	}
	if overrides.Capacity == nil || *overrides.Capacity != 0 {
		t.Fatalf("expected zero capacity to be forwarded")
	}
	if overrides.MaxBacktrackItems == nil || *overrides.MaxBacktrackItems != 0 {
		t.Fatalf("expected zero backtrack limit to be forwarded")
	}
	if overrides.Port == nil || *overrides.Port != "9090" {
		t.Fatalf("expected port override")
	}
	if overrides.RateLimitRPS == nil || *overrides.RateLimitRPS != 0 {
		t.Fatalf("expected zero rps to be forwarded")
	}
	if overrides.RateLimitBurst == nil || *overrides.RateLimitBurst != 5 {
		t.Fatalf("expected burst override")
	}
}
