package knapsack

type dpSolver struct{}

// NewDP creates a Solver that fills a subset-sum feasibility table.
// Time and space are O(n*k).
func NewDP() Solver {
	return &dpSolver{}
}

func (s *dpSolver) Solve(items []Item, capacity int) (Solution, error) {
	if err := validate(items, capacity); err != nil {
		return Solution{}, err
	}
	if len(items) == 0 || capacity == 0 {
		return Solution{}, nil
	}

	exist, chosen := fillTables(items, capacity)
	return traceBack(exist, chosen, items, capacity), nil
}

// fillTables builds the (n+1)x(k+1) exist and chosen tables. Row r describes
// items[r-1]; row 0 is the empty prefix where only column 0 is reachable.
// When a cell is reachable without item r it is never marked as chosen.
func fillTables(items []Item, capacity int) (exist, chosen [][]bool) {
	rows := len(items) + 1
	exist = make([][]bool, rows)
	chosen = make([][]bool, rows)
	for r := range rows {
		exist[r] = make([]bool, capacity+1)
		chosen[r] = make([]bool, capacity+1)
	}
	exist[0][0] = true

	for r := 1; r < rows; r++ {
		size := items[r-1].Size
		for c := 0; c <= capacity; c++ {
			switch {
			case exist[r-1][c]:
				exist[r][c] = true
			case c-size >= 0 && exist[r-1][c-size]:
				exist[r][c] = true
				chosen[r][c] = true
			}
		}
	}

	return exist, chosen
}

// traceBack walks from the largest reachable column in the last row up to
// row 0, collecting every item whose cell was marked as chosen.
func traceBack(exist, chosen [][]bool, items []Item, capacity int) Solution {
	row := len(items)
	col := capacity
	for !exist[row][col] {
		col--
	}

	var solution Solution
	for ; row > 0; row-- {
		if !chosen[row][col] {
			continue
		}
		item := items[row-1]
		solution.add(item)
		col -= item.Size
	}

	return solution
}
