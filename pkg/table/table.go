// Package table wraps pterm's table renderer with the spacing used across
// the CLI's list views.
package table

import (
	"github.com/pterm/pterm"
)

// PrintTableNoPad renders data without pterm's default left padding so table
// output lines up with the surrounding pterm prefixes.
func PrintTableNoPad(data pterm.TableData, hasHeader bool) {
	t := pterm.DefaultTable.WithData(data).WithLeftAlignment()
	if hasHeader {
		t = t.WithHasHeader()
	}
	if err := t.Render(); err != nil {
		pterm.Error.Println(err)
	}
}
