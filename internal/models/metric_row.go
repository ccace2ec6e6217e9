package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimestampLayout is the canonical log timestamp format (UTC).
const TimestampLayout = "2006-01-02 15:04:05"

// Metric names, in log column order.
const (
	MetricCopilotTotal  = "copilot_total"
	MetricCopilotMerged = "copilot_merged"
	MetricCodexTotal    = "codex_total"
	MetricCodexMerged   = "codex_merged"
	MetricDevinCommits  = "devin_commits"
	MetricJulesCommits  = "jules_commits"
)

// CSVHeader is the header row of the metric log file.
var CSVHeader = []string{
	"timestamp",
	MetricCopilotTotal,
	MetricCopilotMerged,
	MetricCodexTotal,
	MetricCodexMerged,
	MetricDevinCommits,
	MetricJulesCommits,
}

// MetricRow is one collection run: a UTC timestamp plus the six
// agent counts returned by the search API.
type MetricRow struct {
	Timestamp     time.Time `json:"timestamp"`
	CopilotTotal  int       `json:"copilot_total"`
	CopilotMerged int       `json:"copilot_merged"`
	CodexTotal    int       `json:"codex_total"`
	CodexMerged   int       `json:"codex_merged"`
	DevinCommits  int       `json:"devin_commits"`
	JulesCommits  int       `json:"jules_commits"`
}

// NewMetricRow builds a row from a metric-name-keyed count set.
// Missing metrics default to zero.
func NewMetricRow(timestamp time.Time, counts map[string]int) *MetricRow {
	return &MetricRow{
		Timestamp:     timestamp.UTC(),
		CopilotTotal:  counts[MetricCopilotTotal],
		CopilotMerged: counts[MetricCopilotMerged],
		CodexTotal:    counts[MetricCodexTotal],
		CodexMerged:   counts[MetricCodexMerged],
		DevinCommits:  counts[MetricDevinCommits],
		JulesCommits:  counts[MetricJulesCommits],
	}
}

// Record returns the row as a CSV record in header order.
func (r *MetricRow) Record() []string {
	return []string{
		r.Timestamp.UTC().Format(TimestampLayout),
		strconv.Itoa(r.CopilotTotal),
		strconv.Itoa(r.CopilotMerged),
		strconv.Itoa(r.CodexTotal),
		strconv.Itoa(r.CodexMerged),
		strconv.Itoa(r.DevinCommits),
		strconv.Itoa(r.JulesCommits),
	}
}

// ParseMetricRow parses a CSV record in header order.
func ParseMetricRow(record []string) (*MetricRow, error) {
	if len(record) != len(CSVHeader) {
		return nil, fmt.Errorf("expected %d fields, got %d", len(CSVHeader), len(record))
	}

	timestamp, err := ParseTimestamp(record[0])
	if err != nil {
		return nil, err
	}

	counts := make([]int, len(record)-1)
	for i, field := range record[1:] {
		value, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return nil, fmt.Errorf("invalid %s value %q: %w", CSVHeader[i+1], field, err)
		}
		counts[i] = value
	}

	return &MetricRow{
		Timestamp:     timestamp,
		CopilotTotal:  counts[0],
		CopilotMerged: counts[1],
		CodexTotal:    counts[2],
		CodexMerged:   counts[3],
		DevinCommits:  counts[4],
		JulesCommits:  counts[5],
	}, nil
}

// ParseTimestamp parses a log timestamp. Older rows contain U+2011
// non-breaking hyphens and some tooling wrote RFC3339; both are
// accepted and normalized.
func ParseTimestamp(value string) (time.Time, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(value), "‑", "-")

	if t, err := time.Parse(TimestampLayout, normalized); err == nil {
		return t.UTC(), nil
	}

	t, err := time.Parse(time.RFC3339, normalized)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", value, err)
	}
	return t.UTC(), nil
}

// MergeRate returns merged/total as a percentage, 0 when total is 0.
func MergeRate(merged, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(merged) / float64(total) * 100
}
