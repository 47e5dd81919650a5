package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"firewall-auditor/internal/model"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	highStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	mediumStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	lowStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
)

func severityStyle(s model.Severity) lipgloss.Style {
	switch s {
	case model.SeverityHigh:
		return highStyle
	case model.SeverityMedium:
		return mediumStyle
	default:
		return lowStyle
	}
}

// Summary renders the terminal result block: per-kind counts colored by
// severity and a verdict line.
func Summary(audit Audit) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Audit results"))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render(fmt.Sprintf("%d rules analyzed", len(audit.Rules))))
	b.WriteString("\n")

	for _, s := range sectionTitles {
		count := len(audit.ByKind(s.Kind))
		line := fmt.Sprintf("  %-24s %d", s.Title, count)
		if count > 0 {
			line = severityStyle(model.SeverityOf(s.Kind)).Render(line)
		} else {
			line = labelStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if len(audit.Anomalies) == 0 {
		b.WriteString(okStyle.Render("No anomalies detected."))
	} else {
		b.WriteString(highStyle.Render(fmt.Sprintf("%d anomalies detected. See the generated reports.", len(audit.Anomalies))))
	}
	return b.String()
}

// Details renders up to max anomalies per kind for verbose output.
func Details(audit Audit, max int) string {
	var b strings.Builder
	for _, s := range sectionTitles {
		anomalies := audit.ByKind(s.Kind)
		if len(anomalies) == 0 {
			continue
		}
		b.WriteString(titleStyle.Render(s.Title))
		b.WriteString("\n")
		for i, an := range anomalies {
			if i == max {
				b.WriteString(labelStyle.Render(fmt.Sprintf("  ... and %d more", len(anomalies)-max)))
				b.WriteString("\n")
				break
			}
			for _, r := range an.Reasons {
				b.WriteString(fmt.Sprintf("  [%s] %s\n", severityStyle(an.Severity).Render(string(an.Severity)), r.Detail))
			}
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
