package model

import "strings"

type AnomalyKind string

const (
	KindShadowed   AnomalyKind = "shadowed"
	KindRedundant  AnomalyKind = "redundant"
	KindPermissive AnomalyKind = "permissive"
	KindUnused     AnomalyKind = "unused"
)

type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// Rank orders severities for sorting; higher is more severe.
func (s Severity) Rank() int {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	}
	return 0
}

// SeverityOf returns the fixed severity for an anomaly kind.
func SeverityOf(kind AnomalyKind) Severity {
	switch kind {
	case KindShadowed, KindPermissive:
		return SeverityHigh
	case KindRedundant:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// Reason pairs a machine-checkable short code with a human-readable
// explanation. Permissive anomalies may carry several.
type Reason struct {
	Code   string `json:"code"`
	Detail string `json:"detail"`
}

// Anomaly is one finding about one rule. Produced by detectors, never
// mutated afterwards.
type Anomaly struct {
	Kind           AnomalyKind `json:"kind"`
	Severity       Severity    `json:"severity"`
	RuleID         string      `json:"primary_rule_id"`
	RelatedRuleIDs []string    `json:"related_rule_ids,omitempty"`
	Reasons        []Reason    `json:"reasons"`
}

// Key identifies an anomaly for deduplication: the same
// (kind, primary, related) tuple must never be reported twice.
func (a Anomaly) Key() string {
	return string(a.Kind) + "|" + a.RuleID + "|" + strings.Join(a.RelatedRuleIDs, ",")
}

// Codes returns the machine-checkable codes of all reasons, in order.
func (a Anomaly) Codes() []string {
	codes := make([]string, len(a.Reasons))
	for i, r := range a.Reasons {
		codes[i] = r.Code
	}
	return codes
}
