package engine

import (
	"fmt"

	"firewall-auditor/internal/match"
	"firewall-auditor/internal/model"
)

// redundantPair reports whether two rules match an identical traffic space
// with the same action, making one of them removable.
func redundantPair(a, b *model.Rule) bool {
	return a.Action == b.Action && match.Covers(a, b) && match.Covers(b, a)
}

// redundantAt checks the rule at evaluation position i against all earlier
// rules. A duplicate is attributed to the later-evaluated rule, the one
// that is practically removable, with its earliest partner as the related
// rule.
func (a *Analyzer) redundantAt(i int) *model.Anomaly {
	later := a.ordered[i]
	for j := 0; j < i; j++ {
		earlier := a.ordered[j]
		if !redundantPair(earlier, later) {
			continue
		}
		return &model.Anomaly{
			Kind:           model.KindRedundant,
			Severity:       model.SeverityOf(model.KindRedundant),
			RuleID:         later.ID,
			RelatedRuleIDs: []string{earlier.ID},
			Reasons: []model.Reason{{
				Code: "duplicate-rule",
				Detail: fmt.Sprintf(
					"rule %q duplicates rule %q: identical traffic space and action %q, removable without behavior change",
					later.Name, earlier.Name, later.Action),
			}},
		}
	}
	return nil
}
