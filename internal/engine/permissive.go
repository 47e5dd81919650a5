package engine

import (
	"fmt"

	"firewall-auditor/internal/match"
	"firewall-auditor/internal/model"
	"firewall-auditor/pkg/wellknown"
)

// detectPermissive flags allow rules whose match criteria expose
// unintended traffic. Each rule is judged independently; all triggered
// conditions are aggregated into a single anomaly.
func (a *Analyzer) detectPermissive() []model.Anomaly {
	var out []model.Anomaly
	for _, r := range a.ordered {
		if r.Action != model.Allow {
			continue
		}

		var reasons []model.Reason
		if r.Source.Any && r.Destination.Any {
			reasons = append(reasons, model.Reason{
				Code:   "open-allow",
				Detail: fmt.Sprintf("rule %q allows traffic from any source to any destination", r.Name),
			})
		}
		if r.Source.Any {
			if port, ok := exposedSensitivePort(r.Port, a.cfg.SensitivePorts); ok {
				reasons = append(reasons, model.Reason{
					Code:   "sensitive-port-exposed",
					Detail: fmt.Sprintf("rule %q opens sensitive port %s to any source", r.Name, portLabel(port)),
				})
			}
			if r.Protocol == model.AnyProtocol {
				reasons = append(reasons, model.Reason{
					Code:   "any-protocol-from-any",
					Detail: fmt.Sprintf("rule %q allows every protocol from any source", r.Name),
				})
			}
			if r.Port.Any {
				reasons = append(reasons, model.Reason{
					Code:   "all-ports-from-any",
					Detail: fmt.Sprintf("rule %q opens all ports to any source", r.Name),
				})
			}
		}

		if len(reasons) == 0 {
			continue
		}
		out = append(out, model.Anomaly{
			Kind:     model.KindPermissive,
			Severity: model.SeverityOf(model.KindPermissive),
			RuleID:   r.ID,
			Reasons:  reasons,
		})
	}
	return out
}

// exposedSensitivePort returns the first configured sensitive port the
// spec matches. A wildcard port spec matches them all.
func exposedSensitivePort(spec model.PortSpec, sensitive []int) (int, bool) {
	for _, port := range sensitive {
		if match.PortIncludes(spec, port) {
			return port, true
		}
	}
	return 0, false
}

func portLabel(port int) string {
	if name := wellknown.ServiceName(port); name != "" {
		return fmt.Sprintf("%d (%s)", port, name)
	}
	return fmt.Sprintf("%d", port)
}
