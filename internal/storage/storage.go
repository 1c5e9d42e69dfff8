package storage

import (
	"errors"
	"slices"
	"sync"
)

const maxItems = 1000

var (
	// ErrInvalidItemSizes indicates the provided item sizes violate validation rules.
	ErrInvalidItemSizes = errors.New("item sizes must contain between 1 and 1000 positive integers")
)

// defaultItemSizes is a small demonstration instance that backtracking
// finishes instantly.
var defaultItemSizes = []int{12, 7, 11, 8, 9, 5, 14, 3, 10, 6}

// Storage provides access to the item set solved by the HTTP service.
type Storage interface {
	GetItemSizes() ([]int, error)
	SetItemSizes(sizes []int) error
}

// MemoryStorage keeps item sizes in-memory and guards access with a RWMutex.
// Order is significant: the position of a size defines the item id.
type MemoryStorage struct {
	mu        sync.RWMutex
	itemSizes []int
}

// NewMemoryStorage initialises storage with a copy of the default item sizes.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		itemSizes: slices.Clone(defaultItemSizes),
	}
}

// DefaultItemSizes returns a copy of the default item sizes slice.
func DefaultItemSizes() []int {
	return slices.Clone(defaultItemSizes)
}

// GetItemSizes returns a copy of the currently configured item sizes.
func (s *MemoryStorage) GetItemSizes() ([]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.itemSizes), nil
}

// SetItemSizes validates and stores the provided item sizes, keeping their order.
func (s *MemoryStorage) SetItemSizes(sizes []int) error {
	if err := validateItemSizes(sizes); err != nil {
		return err
	}

	cloned := slices.Clone(sizes)
	s.mu.Lock()
	s.itemSizes = cloned
	s.mu.Unlock()

	return nil
}

func validateItemSizes(sizes []int) error {
	if len(sizes) == 0 || len(sizes) > maxItems {
		return ErrInvalidItemSizes
	}
	for _, size := range sizes {
		if size <= 0 {
			return ErrInvalidItemSizes
		}
	}
	return nil
}
