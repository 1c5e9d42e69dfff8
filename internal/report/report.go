// Package report renders solver results as plain text.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/eugenenazirov/knapsack/internal/knapsack"
	"github.com/eugenenazirov/knapsack/internal/runner"
)

// Separator is printed between the reports of consecutive solvers.
const Separator = "---------------------------------"

// Format renders a solution under the given algorithm label.
func Format(label string, solution knapsack.Solution) string {
	var b strings.Builder
	b.WriteString(label)
	b.WriteString(":\n")
	for _, item := range solution.Items() {
		fmt.Fprintf(&b, "Item = %d, Size = %d\n", item.ID, item.Size)
	}
	fmt.Fprintf(&b, "Total Size = %d", solution.TotalSize())
	return b.String()
}

// Write prints every result followed by its elapsed time in nanoseconds.
func Write(w io.Writer, results []runner.Result) error {
	for i, res := range results {
		if i > 0 {
			if _, err := fmt.Fprintln(w, Separator); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "%s\nTime = %d\n", Format(res.Label, res.Solution), res.Elapsed.Nanoseconds()); err != nil {
			return err
		}
	}
	return nil
}
