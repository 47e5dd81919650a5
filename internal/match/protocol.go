package match

import "firewall-auditor/internal/model"

// ProtocolContains reports whether protocol spec a covers protocol spec b:
// "any" covers everything, otherwise containment is exact equality.
func ProtocolContains(a, b model.Protocol) bool {
	return a == model.AnyProtocol || a == b
}
