package knapsack

import "errors"

var (
	// ErrInvalidCapacity is returned when the knapsack capacity is negative.
	ErrInvalidCapacity = errors.New("capacity must be a non-negative integer")
	// ErrInvalidItemSize is returned when an item has a size that is not a positive integer.
	ErrInvalidItemSize = errors.New("item sizes must be positive integers")
	// ErrUnknownAlgorithm is returned when an algorithm name is not recognised.
	ErrUnknownAlgorithm = errors.New("unknown algorithm")
	// ErrTooManyItems is returned when an instance is too large for exhaustive search.
	ErrTooManyItems = errors.New("too many items for backtracking")
	// ErrCapacityTooLarge is returned when the capacity exceeds the configured table limit.
	ErrCapacityTooLarge = errors.New("capacity exceeds the configured limit")
)
