package knapsack

type backtrackSolver struct{}

// NewBacktracking creates a Solver that enumerates all 2^n include/exclude
// assignments and keeps the first feasible assignment with the largest total.
// Cost is O(2^n * n); callers are expected to bound n.
func NewBacktracking() Solver {
	return &backtrackSolver{}
}

func (s *backtrackSolver) Solve(items []Item, capacity int) (Solution, error) {
	if err := validate(items, capacity); err != nil {
		return Solution{}, err
	}
	if len(items) == 0 {
		return Solution{}, nil
	}

	search := newSearch(items, capacity)
	search.enumerate(0)
	return search.best, nil
}

// search holds the state of one enumeration: the assignment under
// construction and the incumbent. It lives for exactly one Solve call.
type search struct {
	items      []Item
	capacity   int
	assignment []bool
	best       Solution
	leaves     int
}

func newSearch(items []Item, capacity int) *search {
	return &search{
		items:      items,
		capacity:   capacity,
		assignment: make([]bool, len(items)),
	}
}

// enumerate fixes item depth to excluded, then included, and recurses.
func (s *search) enumerate(depth int) {
	if depth == len(s.items) {
		s.consider()
		return
	}
	for _, include := range [...]bool{false, true} {
		s.assignment[depth] = include
		s.enumerate(depth + 1)
	}
}

// consider materialises the current assignment and replaces the incumbent
// only on a strictly larger feasible total, so ties keep the earlier one.
func (s *search) consider() {
	s.leaves++

	var candidate Solution
	for i, include := range s.assignment {
		if include {
			candidate.add(s.items[i])
		}
	}

	if candidate.totalSize <= s.capacity && candidate.totalSize > s.best.totalSize {
		s.best = candidate
	}
}
