// Package match decides containment between the match criteria of two
// rules: addresses, ports, protocols, and their composition into full
// traffic spaces.
package match

import (
	"net"

	"firewall-auditor/internal/model"
)

// AddressContains reports whether every address matched by b is also
// matched by a. The wildcard is the universal superset. Non-wildcard specs
// are single-family networks, so they never contain the wildcard or a spec
// of the other family; 0.0.0.0/0 and ::/0 are folded into the wildcard at
// the parsing boundary and do not reach this code.
func AddressContains(a, b model.AddressSpec) bool {
	if a.Any {
		return true
	}
	if b.Any || a.IPNet == nil || b.IPNet == nil {
		return false
	}
	if !sameIPFamily(a.IPNet.IP, b.IPNet.IP) {
		return false
	}
	aOnes, _ := a.IPNet.Mask.Size()
	bOnes, _ := b.IPNet.Mask.Size()
	if aOnes > bOnes {
		return false
	}
	return a.IPNet.Contains(b.IPNet.IP)
}

func sameIPFamily(a, b net.IP) bool {
	return (a.To4() != nil) == (b.To4() != nil)
}
