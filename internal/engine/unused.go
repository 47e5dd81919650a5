package engine

import (
	"fmt"

	"firewall-auditor/internal/model"
)

// detectUnused flags rules whose hit count is zero. This is evidentiary:
// it reflects the observed traffic window, not a proof of dead config.
func (a *Analyzer) detectUnused() []model.Anomaly {
	var out []model.Anomaly
	for _, r := range a.ordered {
		if r.HitCount != 0 {
			continue
		}
		out = append(out, model.Anomaly{
			Kind:     model.KindUnused,
			Severity: model.SeverityOf(model.KindUnused),
			RuleID:   r.ID,
			Reasons: []model.Reason{{
				Code:   "zero-hit-count",
				Detail: fmt.Sprintf("rule %q matched no observed traffic", r.Name),
			}},
		})
	}
	return out
}
