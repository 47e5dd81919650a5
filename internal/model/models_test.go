package model

import (
	"errors"
	"net"
	"testing"
)

func hostSpec(t *testing.T, s string) AddressSpec {
	t.Helper()
	ip := net.ParseIP(s)
	if ip == nil {
		t.Fatalf("bad IP in test: %s", s)
	}
	mask := net.CIDRMask(32, 32)
	if ip.To4() == nil {
		mask = net.CIDRMask(128, 128)
	}
	return AddressSpec{IPNet: &net.IPNet{IP: ip, Mask: mask}}
}

func validRule(t *testing.T) Rule {
	t.Helper()
	return Rule{
		ID:          "r1",
		Name:        "rule one",
		Source:      hostSpec(t, "10.0.1.5"),
		Destination: AddressSpec{Any: true},
		Port:        PortSpec{Low: 443, High: 443},
		Protocol:    TCP,
		Action:      Allow,
		Priority:    1,
		HitCount:    3,
	}
}

func TestRuleValidateAcceptsWellFormedRule(t *testing.T) {
	r := validRule(t)
	if err := r.Validate(); err != nil {
		t.Fatalf("expected valid rule, got %v", err)
	}
}

func TestRuleValidateRejectsEachBrokenField(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Rule)
		field  string
	}{
		{"empty id", func(r *Rule) { r.ID = "" }, "id"},
		{"unknown protocol", func(r *Rule) { r.Protocol = "gre" }, "protocol"},
		{"unknown action", func(r *Rule) { r.Action = "drop" }, "action"},
		{"negative priority", func(r *Rule) { r.Priority = -1 }, "priority"},
		{"negative hit count", func(r *Rule) { r.HitCount = -1 }, "hit_count"},
		{"source without network", func(r *Rule) { r.Source = AddressSpec{} }, "source"},
		{"destination without network", func(r *Rule) { r.Destination = AddressSpec{} }, "destination"},
		{"inverted port range", func(r *Rule) { r.Port = PortSpec{Low: 100, High: 50} }, "port"},
		{"port above maximum", func(r *Rule) { r.Port = PortSpec{Low: 1, High: 70000} }, "port"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRule(t)
			tt.mutate(&r)
			err := r.Validate()
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field != tt.field {
				t.Errorf("expected field %q, got %q (%v)", tt.field, verr.Field, verr)
			}
		})
	}
}

func TestSpecStrings(t *testing.T) {
	if got := (AddressSpec{Any: true}).String(); got != "*" {
		t.Errorf("expected wildcard address to render as *, got %s", got)
	}
	host := hostSpec(t, "10.0.1.5")
	if got := host.String(); got != "10.0.1.5" {
		t.Errorf("expected host to render without prefix, got %s", got)
	}
	_, ipnet, _ := net.ParseCIDR("10.0.0.0/8")
	if got := (AddressSpec{IPNet: ipnet}).String(); got != "10.0.0.0/8" {
		t.Errorf("expected CIDR rendering, got %s", got)
	}

	if got := (PortSpec{Any: true}).String(); got != "*" {
		t.Errorf("expected wildcard port to render as *, got %s", got)
	}
	if got := (PortSpec{Low: 22, High: 22}).String(); got != "22" {
		t.Errorf("expected single port rendering, got %s", got)
	}
	if got := (PortSpec{Low: 80, High: 90}).String(); got != "80-90" {
		t.Errorf("expected range rendering, got %s", got)
	}
}

func TestSeverityOfKind(t *testing.T) {
	tests := []struct {
		kind     AnomalyKind
		expected Severity
	}{
		{KindShadowed, SeverityHigh},
		{KindPermissive, SeverityHigh},
		{KindRedundant, SeverityMedium},
		{KindUnused, SeverityLow},
	}
	for _, tt := range tests {
		if got := SeverityOf(tt.kind); got != tt.expected {
			t.Errorf("SeverityOf(%s) = %s, expected %s", tt.kind, got, tt.expected)
		}
	}
	if SeverityHigh.Rank() <= SeverityMedium.Rank() || SeverityMedium.Rank() <= SeverityLow.Rank() {
		t.Error("expected severity ranks to be strictly ordered")
	}
}

func TestAnomalyKeyAndCodes(t *testing.T) {
	an := Anomaly{
		Kind:           KindShadowed,
		RuleID:         "2",
		RelatedRuleIDs: []string{"1"},
		Reasons: []Reason{
			{Code: "covered-by-earlier-rule", Detail: "never reached"},
		},
	}
	if an.Key() != "shadowed|2|1" {
		t.Errorf("unexpected anomaly key: %s", an.Key())
	}
	other := an
	other.RelatedRuleIDs = []string{"3"}
	if an.Key() == other.Key() {
		t.Error("expected different related rules to produce different keys")
	}
	if codes := an.Codes(); len(codes) != 1 || codes[0] != "covered-by-earlier-rule" {
		t.Errorf("unexpected codes: %v", codes)
	}
}
