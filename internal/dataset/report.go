package dataset

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

// TableCount is one line of the run report.
type TableCount struct {
	Table string
	Rows  int
}

// Report computes per-table row counts in export order.
func (d *Dataset) Report() []TableCount {
	counts := make([]TableCount, 0, 7)
	for _, t := range d.Tables() {
		counts = append(counts, TableCount{Table: t.Name, Rows: len(t.Rows)})
	}
	return counts
}

// RenderReport writes the run report as an ASCII table.
func RenderReport(w io.Writer, counts []TableCount) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Table", "Rows"})

	total := 0
	for _, c := range counts {
		table.Append([]string{c.Table, strconv.Itoa(c.Rows)})
		total += c.Rows
	}
	table.SetFooter([]string{"Total", strconv.Itoa(total)})
	table.Render()
}
