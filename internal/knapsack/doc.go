// Package knapsack solves the 0/1 knapsack decision variant in which an
// item's value equals its size: select items whose total size is as large as
// possible without exceeding a capacity. Two independent solvers are
// provided, a dynamic-programming feasibility table and an exhaustive
// backtracking enumeration, so their results and running times can be
// compared on the same input.
package knapsack
