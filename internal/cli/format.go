package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"dispatch-generator/internal/diagnostic"
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	infoColor    = color.New(color.FgCyan)
	headerColor  = color.New(color.FgBlue, color.Bold)
	dimColor     = color.New(color.FgHiBlack)
)

// printDiagnostics writes every diagnostic with a colored severity label,
// errors first.
func printDiagnostics(w io.Writer, diags *diagnostic.Diagnostics) {
	for _, d := range diags.All() {
		fmt.Fprintf(w, "%s %s\n", severityLabel(d.Severity), d.String())
	}
}

// severityLabel renders a fixed-width colored severity tag.
func severityLabel(s diagnostic.Severity) string {
	switch s {
	case diagnostic.SeverityError:
		return errorColor.Sprint("error:")
	case diagnostic.SeverityWarning:
		return warningColor.Sprint("warning:")
	default:
		return infoColor.Sprint("info:")
	}
}

// printSummary reports how many containers produced output and how many were
// skipped. The action names what happened to the produced output, e.g.
// "generated" for gen and "analyzed" for check.
func printSummary(w io.Writer, action string, produced, skipped int) {
	if produced > 0 {
		fmt.Fprintf(w, "%s %d container(s) %s\n", successColor.Sprint("ok:"), produced, action)
	}

	if skipped > 0 {
		fmt.Fprintf(w, "%s %d container(s) skipped\n", dimColor.Sprint("--"), skipped)
	}
}
