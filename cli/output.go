package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	bold    = color.New(color.Bold)
	success = color.New(color.FgGreen)
	info    = color.New(color.FgCyan)
	warning = color.New(color.FgYellow)
)

func printSuccess(w io.Writer, format string, args ...any) {
	success.Fprintf(w, "✓ "+format+"\n", args...)
}

func printInfo(w io.Writer, format string, args ...any) {
	info.Fprintf(w, format+"\n", args...)
}

func printWarning(w io.Writer, format string, args ...any) {
	warning.Fprintf(w, "! "+format+"\n", args...)
}

// printField prints an indented "label = value" line
func printField(w io.Writer, label string, value any) {
	fmt.Fprintf(w, "  %s = %v\n", bold.Sprint(label), value)
}
