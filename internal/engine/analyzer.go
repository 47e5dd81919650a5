// Package engine detects configuration anomalies in an ordered firewall
// rule set: shadowed rules, redundant rules, overly permissive rules, and
// rules that never matched observed traffic. The engine is a pure
// computation over an immutable rule snapshot; it holds no state across
// runs.
package engine

import (
	"runtime"
	"sort"
	"sync"

	"firewall-auditor/internal/model"
	"firewall-auditor/pkg/wellknown"
)

type Config struct {
	// SensitivePorts is the port set the permissiveness detector flags when
	// exposed to any source. Defaults to the wellknown registry.
	SensitivePorts []int
	// Workers bounds the goroutines used for the pairwise shadow/redundancy
	// scan. Defaults to NumCPU.
	Workers int
}

func DefaultConfig() Config {
	return Config{
		SensitivePorts: wellknown.SensitivePorts(),
		Workers:        runtime.NumCPU(),
	}
}

// Analyzer runs all detectors over one rule set.
type Analyzer struct {
	rules   []model.Rule
	ordered []*model.Rule // evaluation order: priority ascending, declaration order on ties
	evalPos map[string]int
	cfg     Config
}

// New validates the rule set and fixes its evaluation order. The input
// slice order is the declaration order and breaks priority ties. A
// *model.ValidationError is returned if any rule is invalid or two rules
// share an id.
func New(rules []model.Rule, cfg Config) (*Analyzer, error) {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.SensitivePorts == nil {
		cfg.SensitivePorts = wellknown.SensitivePorts()
	}

	seen := make(map[string]bool, len(rules))
	for i := range rules {
		if err := rules[i].Validate(); err != nil {
			return nil, err
		}
		if seen[rules[i].ID] {
			return nil, &model.ValidationError{RuleID: rules[i].ID, Field: "id", Reason: "duplicate rule id"}
		}
		seen[rules[i].ID] = true
	}

	ordered := make([]*model.Rule, len(rules))
	for i := range rules {
		ordered[i] = &rules[i]
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority < ordered[j].Priority
	})

	evalPos := make(map[string]int, len(ordered))
	for i, r := range ordered {
		evalPos[r.ID] = i
	}

	return &Analyzer{rules: rules, ordered: ordered, evalPos: evalPos, cfg: cfg}, nil
}

// Rules returns the rule set in declaration order, for report rendering.
func (a *Analyzer) Rules() []model.Rule {
	out := make([]model.Rule, len(a.rules))
	copy(out, a.rules)
	return out
}

// Run executes all detectors and returns the deduplicated anomaly list,
// ordered by severity (descending), then the primary rule's evaluation
// position, then kind.
func (a *Analyzer) Run() ([]model.Anomaly, error) {
	anomalies := a.detectPairwise()
	anomalies = append(anomalies, a.detectPermissive()...)
	anomalies = append(anomalies, a.detectUnused()...)

	out := dedupe(anomalies)
	a.sortAnomalies(out)
	if err := a.checkInvariants(out); err != nil {
		return nil, err
	}
	return out, nil
}

// detectPairwise runs the O(n^2) shadow and redundancy scans, partitioning
// the outer index across workers. Comparisons are read-only and
// independent; determinism comes from the final sort, whose key is total
// over the anomalies a single rule can produce.
func (a *Analyzer) detectPairwise() []model.Anomaly {
	n := len(a.ordered)
	workers := a.cfg.Workers
	if workers > n {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}

	results := make([][]model.Anomaly, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			var found []model.Anomaly
			for i := w; i < n; i += workers {
				if an := a.redundantAt(i); an != nil {
					found = append(found, *an)
				}
				if an := a.shadowedAt(i); an != nil {
					found = append(found, *an)
				}
			}
			results[w] = found
		}(w)
	}
	wg.Wait()

	var merged []model.Anomaly
	for _, part := range results {
		merged = append(merged, part...)
	}
	return merged
}

func dedupe(in []model.Anomaly) []model.Anomaly {
	seen := make(map[string]bool, len(in))
	out := make([]model.Anomaly, 0, len(in))
	for _, an := range in {
		key := an.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, an)
	}
	return out
}

func (a *Analyzer) sortAnomalies(list []model.Anomaly) {
	sort.SliceStable(list, func(i, j int) bool {
		if ri, rj := list[i].Severity.Rank(), list[j].Severity.Rank(); ri != rj {
			return ri > rj
		}
		if pi, pj := a.evalPos[list[i].RuleID], a.evalPos[list[j].RuleID]; pi != pj {
			return pi < pj
		}
		return list[i].Kind < list[j].Kind
	})
}

// checkInvariants asserts the aggregator's output contract: every anomaly
// names a known rule, no (kind, primary, related) tuple repeats, and the
// list follows the declared total order. A violation is a programming
// defect and fails the run.
func (a *Analyzer) checkInvariants(list []model.Anomaly) error {
	seen := make(map[string]bool, len(list))
	for i, an := range list {
		if _, ok := a.evalPos[an.RuleID]; !ok {
			return &model.InvariantError{Detail: "anomaly references unknown rule id " + an.RuleID}
		}
		key := an.Key()
		if seen[key] {
			return &model.InvariantError{Detail: "duplicate anomaly " + key}
		}
		seen[key] = true
		if i == 0 {
			continue
		}
		prev := list[i-1]
		if prev.Severity.Rank() < an.Severity.Rank() {
			return &model.InvariantError{Detail: "anomaly list not ordered by severity at " + key}
		}
	}
	return nil
}
