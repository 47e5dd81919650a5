package report

import (
	"fmt"
	"html/template"
	"io"
	"path/filepath"
	"strings"
	"time"

	_ "embed"

	"firewall-auditor/internal/model"
)

//go:embed report.html.tmpl
var reportTemplate string

var htmlTmpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"join": strings.Join,
}).Parse(reportTemplate))

type kindSection struct {
	Kind      model.AnomalyKind
	Title     string
	Severity  model.Severity
	Anomalies []model.Anomaly
}

type htmlData struct {
	GeneratedAt string
	Rules       []model.Rule
	Total       int
	Sections    []kindSection
}

var sectionTitles = []struct {
	Kind  model.AnomalyKind
	Title string
}{
	{model.KindShadowed, "Shadowed rules"},
	{model.KindRedundant, "Redundant rules"},
	{model.KindPermissive, "Overly permissive rules"},
	{model.KindUnused, "Unused rules"},
}

// WriteHTML renders the full audit report: executive summary, anomaly
// details per kind, and the complete rule table.
func WriteHTML(w io.Writer, audit Audit) error {
	data := htmlData{
		GeneratedAt: audit.GeneratedAt.Format("2006-01-02 15:04:05"),
		Rules:       audit.Rules,
		Total:       len(audit.Anomalies),
	}
	for _, s := range sectionTitles {
		data.Sections = append(data.Sections, kindSection{
			Kind:      s.Kind,
			Title:     s.Title,
			Severity:  model.SeverityOf(s.Kind),
			Anomalies: audit.ByKind(s.Kind),
		})
	}
	return htmlTmpl.Execute(w, data)
}

// HTMLPath returns the timestamped report path inside dir.
func HTMLPath(dir string, t time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("firewall_audit_%s.html", t.Format("20060102_150405")))
}
