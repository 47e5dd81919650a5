package match

import (
	"testing"

	"firewall-auditor/internal/model"
)

func testRule(t *testing.T, id, src, dst string, port model.PortSpec, proto model.Protocol, action model.Action) *model.Rule {
	t.Helper()
	return &model.Rule{
		ID:          id,
		Name:        "rule-" + id,
		Source:      mustAddr(t, src),
		Destination: mustAddr(t, dst),
		Port:        port,
		Protocol:    proto,
		Action:      action,
		Priority:    1,
	}
}

func TestCoversIsReflexive(t *testing.T) {
	rules := []*model.Rule{
		testRule(t, "1", "*", "*", model.PortSpec{Any: true}, model.AnyProtocol, model.Allow),
		testRule(t, "2", "10.0.0.0/8", "192.168.1.0/24", model.PortSpec{Low: 22, High: 22}, model.TCP, model.Deny),
		testRule(t, "3", "10.0.1.5", "192.168.1.100", model.PortSpec{Low: 1000, High: 2000}, model.UDP, model.Allow),
	}
	for _, r := range rules {
		if !Covers(r, r) {
			t.Errorf("expected rule %s to cover itself", r.ID)
		}
	}
}

func TestCoversSupersetAndAsymmetry(t *testing.T) {
	broad := testRule(t, "broad", "10.0.0.0/8", "192.168.1.0/24", model.PortSpec{Any: true}, model.AnyProtocol, model.Allow)
	narrow := testRule(t, "narrow", "10.0.1.5", "192.168.1.100", model.PortSpec{Low: 22, High: 22}, model.TCP, model.Allow)

	if !Covers(broad, narrow) {
		t.Fatal("expected broad rule to cover narrow rule")
	}
	if Covers(narrow, broad) {
		t.Fatal("expected narrow rule not to cover broad rule")
	}
}

func TestCoversIgnoresAction(t *testing.T) {
	allow := testRule(t, "a", "10.0.0.0/8", "*", model.PortSpec{Any: true}, model.AnyProtocol, model.Allow)
	deny := testRule(t, "d", "10.0.1.0/24", "*", model.PortSpec{Low: 80, High: 80}, model.TCP, model.Deny)

	if !Covers(allow, deny) {
		t.Fatal("expected coverage to be independent of action")
	}
}

func TestCoversRequiresEveryDimension(t *testing.T) {
	base := testRule(t, "base", "10.0.0.0/8", "192.168.1.0/24", model.PortSpec{Low: 22, High: 22}, model.TCP, model.Allow)

	tests := []struct {
		name  string
		other *model.Rule
	}{
		{"source outside", testRule(t, "x", "172.16.0.0/12", "192.168.1.0/24", model.PortSpec{Low: 22, High: 22}, model.TCP, model.Allow)},
		{"destination outside", testRule(t, "x", "10.0.0.0/8", "192.168.2.0/24", model.PortSpec{Low: 22, High: 22}, model.TCP, model.Allow)},
		{"port outside", testRule(t, "x", "10.0.0.0/8", "192.168.1.0/24", model.PortSpec{Low: 23, High: 23}, model.TCP, model.Allow)},
		{"protocol differs", testRule(t, "x", "10.0.0.0/8", "192.168.1.0/24", model.PortSpec{Low: 22, High: 22}, model.UDP, model.Allow)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if Covers(base, tt.other) {
				t.Errorf("expected base not to cover rule with %s", tt.name)
			}
		})
	}
}

func TestProtocolContains(t *testing.T) {
	if !ProtocolContains(model.AnyProtocol, model.TCP) {
		t.Error("expected any to contain tcp")
	}
	if ProtocolContains(model.TCP, model.AnyProtocol) {
		t.Error("expected tcp not to contain any")
	}
	if !ProtocolContains(model.ICMP, model.ICMP) {
		t.Error("expected icmp to contain itself")
	}
	if ProtocolContains(model.TCP, model.UDP) {
		t.Error("expected tcp not to contain udp")
	}
}
