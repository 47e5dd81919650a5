package model

// ValidationError reports a rule that violates a construction-time
// constraint. The engine refuses to analyze a rule set containing one:
// partial results over a corrupt rule set would be misleading.
type ValidationError struct {
	RuleID string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	id := e.RuleID
	if id == "" {
		id = "?"
	}
	return "rule " + id + ": invalid " + e.Field + ": " + e.Reason
}

// InvariantError reports a detector or aggregator result that violates an
// internal invariant (duplicate anomaly tuple, unordered output). It marks a
// programming defect, not bad input.
type InvariantError struct {
	Detail string
}

func (e *InvariantError) Error() string {
	return "internal invariant violated: " + e.Detail
}
