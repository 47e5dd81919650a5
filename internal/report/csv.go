package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"firewall-auditor/internal/model"
)

// WriteAnomaliesCSV writes one row per anomaly, in the aggregator's order.
// Multi-reason anomalies join their codes and details.
func WriteAnomaliesCSV(w io.Writer, anomalies []model.Anomaly) error {
	writer := csv.NewWriter(w)

	header := []string{"kind", "severity", "primary_rule_id", "related_rule_ids", "codes", "detail"}
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, an := range anomalies {
		details := make([]string, len(an.Reasons))
		for i, r := range an.Reasons {
			details[i] = r.Detail
		}
		record := []string{
			string(an.Kind),
			string(an.Severity),
			an.RuleID,
			strings.Join(an.RelatedRuleIDs, ";"),
			strings.Join(an.Codes(), ";"),
			strings.Join(details, "; "),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// CSVPath returns the timestamped anomaly export path inside dir.
func CSVPath(dir string, t time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("firewall_audit_%s.csv", t.Format("20060102_150405")))
}
