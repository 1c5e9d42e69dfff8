package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/eugenenazirov/knapsack/internal/application"
	"github.com/eugenenazirov/knapsack/internal/config"
	"github.com/eugenenazirov/knapsack/internal/itemsource"
	"github.com/eugenenazirov/knapsack/internal/knapsack"
	"github.com/eugenenazirov/knapsack/internal/report"
)

var errNoInput = errors.New("unexpected end of input")

// runOptions carries the run command flags that are not part of Config.
type runOptions struct {
	interactive bool
	sizes       string
}

// runCompare loads the configured items, solves them with every algorithm and
// writes the report to out. In interactive mode N and K are read from in first.
func runCompare(cfg config.Config, logger *zap.Logger, in io.Reader, out io.Writer, opts runOptions) error {
	if opts.interactive {
		count, capacity, err := promptInstance(in, out)
		if err != nil {
			return err
		}
		cfg.ItemCount = count
		cfg.Capacity = capacity
	}

	items, err := loadItems(cfg, opts.sizes)
	if err != nil {
		return err
	}
	logger.Debug("items loaded", zap.Int("items", len(items)), zap.Int("capacity", cfg.Capacity))

	results, err := application.NewRunner(cfg, logger, nil).Run(items, cfg.Capacity)
	if err != nil {
		return err
	}

	return report.Write(out, results)
}

// loadItems reads the first cfg.ItemCount sizes from the inline list when one
// is given, otherwise from the configured items file.
func loadItems(cfg config.Config, inline string) ([]knapsack.Item, error) {
	if inline == "" {
		path, err := application.ResolveProjectPath(cfg.ItemsFile)
		if err != nil {
			return nil, fmt.Errorf("items file: %w", err)
		}
		return itemsource.LoadFile(path, cfg.ItemCount)
	}

	sizes, err := itemsource.ParseSizes(inline)
	if err != nil {
		return nil, fmt.Errorf("sizes: %w", err)
	}
	if cfg.ItemCount != itemsource.AllItems {
		if len(sizes) < cfg.ItemCount {
			return nil, fmt.Errorf("%w: want %d, found %d", itemsource.ErrNotEnoughItems, cfg.ItemCount, len(sizes))
		}
		sizes = sizes[:cfg.ItemCount]
	}
	return knapsack.NewItems(sizes), nil
}

// promptInstance asks for the item count and the capacity, one per line.
func promptInstance(in io.Reader, out io.Writer) (int, int, error) {
	scanner := bufio.NewScanner(in)

	count, err := promptInt(scanner, out, "Number of Items(N): ")
	if err != nil {
		return 0, 0, fmt.Errorf("item count: %w", err)
	}
	capacity, err := promptInt(scanner, out, "Capacity of Knapsack(K): ")
	if err != nil {
		return 0, 0, fmt.Errorf("capacity: %w", err)
	}

	return count, capacity, nil
}

func promptInt(scanner *bufio.Scanner, out io.Writer, label string) (int, error) {
	if _, err := io.WriteString(out, label); err != nil {
		return 0, err
	}
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return 0, err
		}
		return 0, errNoInput
	}

	value, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil {
		return 0, fmt.Errorf("%q is not an integer", scanner.Text())
	}
	if value < 0 {
		return 0, fmt.Errorf("must be >= 0, got %d", value)
	}
	return value, nil
}
