// Package report renders audit results: an HTML report, an anomaly CSV
// export, and a styled terminal summary. It consumes the engine's output
// whole and never feeds anything back into it.
package report

import (
	"time"

	"firewall-auditor/internal/model"
)

// Audit bundles everything a renderer needs: the anomalies plus the full
// input rule table, in declaration order.
type Audit struct {
	GeneratedAt time.Time
	Rules       []model.Rule
	Anomalies   []model.Anomaly
}

func NewAudit(rules []model.Rule, anomalies []model.Anomaly) Audit {
	return Audit{
		GeneratedAt: time.Now(),
		Rules:       rules,
		Anomalies:   anomalies,
	}
}

// ByKind returns the anomalies of one kind, preserving the aggregator's
// order.
func (a Audit) ByKind(kind model.AnomalyKind) []model.Anomaly {
	var out []model.Anomaly
	for _, an := range a.Anomalies {
		if an.Kind == kind {
			out = append(out, an)
		}
	}
	return out
}
