package knapsack

import "slices"

// Item is a single indivisible unit that is either fully taken or left out.
// ID is the 1-based position of the item in the original input order.
type Item struct {
	ID   int `json:"id"`
	Size int `json:"size"`
}

// NewItems assigns sequential ids starting at 1 to the provided sizes.
func NewItems(sizes []int) []Item {
	items := make([]Item, len(sizes))
	for i, size := range sizes {
		items[i] = Item{ID: i + 1, Size: size}
	}
	return items
}

// Solution is an ordered selection of items together with their total size.
// Items are kept in the order the solver discovered them, which is not
// necessarily input order. The zero value is the empty solution.
type Solution struct {
	items     []Item
	totalSize int
}

// add appends an item and keeps totalSize in step with the member sizes.
func (s *Solution) add(item Item) {
	s.items = append(s.items, item)
	s.totalSize += item.Size
}

// Items returns a copy of the selected items in discovery order.
func (s Solution) Items() []Item {
	return slices.Clone(s.items)
}

// TotalSize returns the sum of the sizes of the selected items.
func (s Solution) TotalSize() int {
	return s.totalSize
}

// Len returns the number of selected items.
func (s Solution) Len() int {
	return len(s.items)
}

// Contains reports whether the item with the given id was selected.
func (s Solution) Contains(id int) bool {
	return slices.ContainsFunc(s.items, func(item Item) bool {
		return item.ID == id
	})
}

// IDs returns the ids of the selected items in discovery order.
func (s Solution) IDs() []int {
	ids := make([]int, len(s.items))
	for i, item := range s.items {
		ids[i] = item.ID
	}
	return ids
}

// Solver describes the behaviour required from a knapsack solver.
type Solver interface {
	Solve(items []Item, capacity int) (Solution, error)
}
