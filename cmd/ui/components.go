package ui

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
)

// ErrorMessage formats an error message in red
func ErrorMessage(message string) string {
	return Red(message)
}

// WarningMessage formats a warning message in yellow
func WarningMessage(message string) string {
	return fmt.Sprintf("%s %s", Yellow(IconWarning), Yellow(message))
}

// FileDigest is one row of the checksummed-files table.
type FileDigest struct {
	Path   string
	Digest string
}

// RenderFileTable writes files as a numbered table, in the order given,
// with total as the footer digest.
func RenderFileTable(w io.Writer, files []FileDigest, total string) {
	fmt.Fprintln(w, Section(fmt.Sprintf("%s Checksummed files", IconFile)))
	fmt.Fprintln(w)

	table := tablewriter.NewWriter(w)
	table.Header("#", "Path", "MD5")

	for i, f := range files {
		table.Append(
			fmt.Sprintf("%d", i+1),
			Cyan(f.Path),
			Magenta(f.Digest),
		)
	}

	table.Footer("", fmt.Sprintf("%d files", len(files)), Yellow(total))
	table.Render()
}
