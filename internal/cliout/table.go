// Package cliout renders tabular CLI output for the mxd command line.
package cliout

import (
	"io"

	"github.com/olekukonko/tablewriter"
)

// TableRenderer is implemented by types that can render themselves as a
// table.
type TableRenderer interface {
	Headers() []string
	Rows() [][]string
}

// PrintTable writes data as a formatted table to w.
func PrintTable(w io.Writer, data TableRenderer) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(data.Headers())
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)

	for _, row := range data.Rows() {
		table.Append(row)
	}
	table.Render()
}
