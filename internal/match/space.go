package match

import "firewall-auditor/internal/model"

// Covers reports whether any packet matched by rule b would also match
// rule a. Action plays no part: under first-match evaluation the action of
// an earlier rule is irrelevant to whether a later rule is ever reached.
// Covers is reflexive and not symmetric.
func Covers(a, b *model.Rule) bool {
	return AddressContains(a.Source, b.Source) &&
		AddressContains(a.Destination, b.Destination) &&
		PortContains(a.Port, b.Port) &&
		ProtocolContains(a.Protocol, b.Protocol)
}
