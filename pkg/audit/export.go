package audit

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

var csvHeader = []string{"id", "timestamp", "result", "rule", "reason", "score", "hash"}

// ExportCSV renders the in-memory entries as CSV with a fixed header; the
// Input and full Output payloads are not flattened, only the fields a human
// reviewer scanning a decision trail needs.
func (l *Log) ExportCSV() (string, error) {
	l.mu.Lock()
	snapshot := make([]Entry, len(l.entries))
	copy(snapshot, l.entries)
	l.mu.Unlock()

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return "", fmt.Errorf("audit: writing csv header: %w", err)
	}
	for _, e := range snapshot {
		ruleID := ""
		if e.Rule != nil {
			ruleID = e.Rule.ID
		}
		row := []string{
			e.ID,
			e.Timestamp,
			string(e.Output.Result),
			ruleID,
			e.Output.Reason,
			fmt.Sprintf("%d", e.Output.Score),
			e.Hash,
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("audit: writing csv row %s: %w", e.ID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("audit: flushing csv: %w", err)
	}
	return buf.String(), nil
}
