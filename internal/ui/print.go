package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"buildjar/internal/diag"
)

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	noteStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	plainStyle   = lipgloss.NewStyle()
	posStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
)

func kindStyle(k diag.Kind) lipgloss.Style {
	switch k {
	case diag.KindError:
		return errorStyle
	case diag.KindWarning:
		return warningStyle
	case diag.KindNote:
		return noteStyle
	}
	return plainStyle
}

// PrintDiagnostics writes one line per diagnostic in emission order. When
// colored is false the plain Format rendering is used, suitable for pipes
// and logs.
func PrintDiagnostics(w io.Writer, diags []diag.Diagnostic, colored bool) {
	for _, d := range diags {
		if !colored {
			fmt.Fprintln(w, d.Format())
			continue
		}
		label := kindStyle(d.Kind).Render(d.Kind.String())
		if d.Pos.IsValid() || d.Pos.Path != "" {
			fmt.Fprintf(w, "%s: %s: %s\n", label, posStyle.Render(d.Pos.String()), d.Message)
		} else {
			fmt.Fprintf(w, "%s: %s\n", label, d.Message)
		}
	}
}

// Summary renders a one-line outcome for the invocation.
func Summary(ok bool, diags []diag.Diagnostic, colored bool) string {
	errs, warns := 0, 0
	for _, d := range diags {
		switch d.Kind {
		case diag.KindError:
			errs++
		case diag.KindWarning:
			warns++
		}
	}
	text := fmt.Sprintf("compilation failed: %d error(s), %d warning(s)", errs, warns)
	if ok {
		text = fmt.Sprintf("compilation succeeded: %d warning(s)", warns)
	}
	if !colored {
		return text
	}
	if ok {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Render(text)
	}
	return errorStyle.Render(text)
}
