package match

import "firewall-auditor/internal/model"

// PortContains reports whether every port matched by b is also matched by
// a. A single port is a degenerate range with Low == High; the explicit
// full range 0-65535 is wildcard-equivalent.
func PortContains(a, b model.PortSpec) bool {
	if fullPortRange(a) {
		return true
	}
	if fullPortRange(b) {
		return false
	}
	return a.Low <= b.Low && a.High >= b.High
}

// PortIncludes reports whether the spec matches one concrete port.
func PortIncludes(spec model.PortSpec, port int) bool {
	if spec.Any {
		return true
	}
	return port >= spec.Low && port <= spec.High
}

func fullPortRange(p model.PortSpec) bool {
	return p.Any || (p.Low == 0 && p.High == model.MaxPort)
}
