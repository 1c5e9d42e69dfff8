// Package itemsource reads knapsack item sizes from plain-text sources, one
// positive integer per line, and assigns ids in line order starting at 1.
package itemsource

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/eugenenazirov/knapsack/internal/knapsack"
)

// AllItems asks Parse to read every size in the source.
const AllItems = -1

var (
	// ErrMalformedSize is returned when a line does not hold an integer.
	ErrMalformedSize = errors.New("item size is not an integer")
	// ErrNonPositiveSize is returned when a size is zero or negative.
	ErrNonPositiveSize = errors.New("item size must be positive")
	// ErrNotEnoughItems is returned when the source holds fewer sizes than requested.
	ErrNotEnoughItems = errors.New("not enough item sizes in source")
	// ErrInvalidLimit is returned when the requested item count is negative.
	ErrInvalidLimit = errors.New("item count must be a non-negative integer")
)

// LoadFile opens path and parses up to limit item sizes from it.
func LoadFile(path string, limit int) ([]knapsack.Item, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open items file: %w", err)
	}
	defer f.Close()

	items, err := Parse(f, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return items, nil
}

// Parse reads limit sizes from r, or every size when limit is AllItems.
// Blank lines are skipped and surrounding whitespace is ignored.
func Parse(r io.Reader, limit int) ([]knapsack.Item, error) {
	if limit < AllItems {
		return nil, ErrInvalidLimit
	}

	sizes := make([]int, 0, max(limit, 0))
	scanner := bufio.NewScanner(r)
	line := 0
	for (limit == AllItems || len(sizes) < limit) && scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		size, err := parseSize(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		sizes = append(sizes, size)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read items: %w", err)
	}

	if limit != AllItems && len(sizes) < limit {
		return nil, fmt.Errorf("%w: want %d, found %d", ErrNotEnoughItems, limit, len(sizes))
	}

	return knapsack.NewItems(sizes), nil
}

// ParseSizes parses a comma-separated list of item sizes.
func ParseSizes(raw string) ([]int, error) {
	parts := strings.Split(raw, ",")
	sizes := make([]int, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		size, err := parseSize(part)
		if err != nil {
			return nil, err
		}
		sizes = append(sizes, size)
	}
	if len(sizes) == 0 {
		return nil, fmt.Errorf("no item sizes provided")
	}
	return sizes, nil
}

func parseSize(text string) (int, error) {
	value, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedSize, text)
	}
	if value <= 0 {
		return 0, fmt.Errorf("%w, got %d", ErrNonPositiveSize, value)
	}
	return value, nil
}
