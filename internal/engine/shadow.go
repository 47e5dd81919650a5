package engine

import (
	"fmt"

	"firewall-auditor/internal/match"
	"firewall-auditor/internal/model"
)

// shadowedAt checks whether the rule at evaluation position i can ever be
// reached. It is shadowed when an earlier rule with strictly lower numeric
// priority covers its whole traffic space; equal-priority rules never
// shadow each other. Exact duplicate pairs are left to the redundancy
// detector, the more specific diagnosis. When several earlier rules cover
// the rule, the earliest-evaluated one is reported.
func (a *Analyzer) shadowedAt(i int) *model.Anomaly {
	low := a.ordered[i]
	for j := 0; j < i; j++ {
		high := a.ordered[j]
		if high.Priority >= low.Priority {
			continue
		}
		if !match.Covers(high, low) {
			continue
		}
		if redundantPair(high, low) {
			continue
		}
		return &model.Anomaly{
			Kind:           model.KindShadowed,
			Severity:       model.SeverityOf(model.KindShadowed),
			RuleID:         low.ID,
			RelatedRuleIDs: []string{high.ID},
			Reasons: []model.Reason{{
				Code: "covered-by-earlier-rule",
				Detail: fmt.Sprintf(
					"rule %q (priority %d) is never reached: rule %q (priority %d) matches a superset of its source, destination, port and protocol",
					low.Name, low.Priority, high.Name, high.Priority),
			}},
		}
	}
	return nil
}
