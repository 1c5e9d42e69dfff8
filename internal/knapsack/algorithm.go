package knapsack

import (
	"fmt"
	"strings"
)

// Algorithm names a solving strategy.
type Algorithm string

const (
	DynamicProgramming Algorithm = "dp"
	Backtracking       Algorithm = "backtracking"
)

// Algorithms returns every supported algorithm in reporting order.
func Algorithms() []Algorithm {
	return []Algorithm{DynamicProgramming, Backtracking}
}

// Label returns the human readable name used in reports.
func (a Algorithm) Label() string {
	switch a {
	case DynamicProgramming:
		return "Dynamic Programming"
	case Backtracking:
		return "Backtracking"
	default:
		return string(a)
	}
}

// ParseAlgorithm resolves an algorithm from its name, ignoring case and surrounding space.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch Algorithm(strings.ToLower(strings.TrimSpace(name))) {
	case DynamicProgramming:
		return DynamicProgramming, nil
	case Backtracking:
		return Backtracking, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
}

// NewSolver creates the Solver implementing the given algorithm.
func NewSolver(a Algorithm) (Solver, error) {
	switch a {
	case DynamicProgramming:
		return NewDP(), nil
	case Backtracking:
		return NewBacktracking(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, string(a))
	}
}

func validate(items []Item, capacity int) error {
	if capacity < 0 {
		return ErrInvalidCapacity
	}
	for _, item := range items {
		if item.Size <= 0 {
			return fmt.Errorf("%w: item %d has size %d", ErrInvalidItemSize, item.ID, item.Size)
		}
	}
	return nil
}
