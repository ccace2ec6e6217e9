package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricRowRecordRoundTrip(t *testing.T) {
	timestamp := time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC)
	row := NewMetricRow(timestamp, map[string]int{
		MetricCopilotTotal:  14,
		MetricCopilotMerged: 9,
		MetricCodexTotal:    8,
		MetricCodexMerged:   4,
		MetricDevinCommits:  6,
		MetricJulesCommits:  2,
	})

	record := row.Record()
	assert.Equal(t, []string{"2024-06-01 12:30:00", "14", "9", "8", "4", "6", "2"}, record)

	parsed, err := ParseMetricRow(record)
	require.NoError(t, err)
	assert.Equal(t, row, parsed)
}

func TestParseMetricRowInvalid(t *testing.T) {
	testCases := []struct {
		name   string
		record []string
	}{
		{
			name:   "Wrong field count",
			record: []string{"2024-06-01 12:30:00", "1", "2"},
		},
		{
			name:   "Bad timestamp",
			record: []string{"yesterday", "1", "2", "3", "4", "5", "6"},
		},
		{
			name:   "Non-numeric count",
			record: []string{"2024-06-01 12:30:00", "1", "2", "x", "4", "5", "6"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseMetricRow(tc.record)
			assert.Error(t, err)
		})
	}
}

func TestParseTimestampFormats(t *testing.T) {
	testCases := []struct {
		name     string
		value    string
		expected time.Time
	}{
		{
			name:     "Canonical layout",
			value:    "2024-01-02 03:04:05",
			expected: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		},
		{
			name:     "Non-breaking hyphens from older rows",
			value:    "2024‑01‑02 03:04:05",
			expected: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		},
		{
			name:     "RFC3339",
			value:    "2024-01-02T00:00:00Z",
			expected: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			parsed, err := ParseTimestamp(tc.value)
			require.NoError(t, err)
			assert.True(t, tc.expected.Equal(parsed))
		})
	}
}

func TestMergeRate(t *testing.T) {
	assert.Equal(t, 0.0, MergeRate(0, 0), "zero total must not divide")
	assert.Equal(t, 0.0, MergeRate(5, 0))
	assert.InDelta(t, 50.0, MergeRate(4, 8), 1e-9)
	assert.InDelta(t, 64.285714, MergeRate(9, 14), 1e-6)
}

func TestAgentStats(t *testing.T) {
	row := &MetricRow{
		Timestamp:     time.Now().UTC(),
		CopilotTotal:  14,
		CopilotMerged: 9,
		CodexTotal:    8,
		CodexMerged:   4,
		DevinCommits:  6,
		JulesCommits:  2,
	}

	stats := row.AgentStats()
	require.Len(t, stats, 4)

	assert.Equal(t, AgentCopilot, stats[0].Service)
	assert.True(t, stats[0].HasPRs)
	assert.False(t, stats[0].HasCommits)
	assert.Equal(t, 14, stats[0].Total)
	assert.Equal(t, 9, stats[0].Merged)

	assert.Equal(t, AgentCodex, stats[1].Service)
	assert.InDelta(t, 50.0, stats[1].MergeRate(), 1e-9)

	assert.Equal(t, AgentDevin, stats[2].Service)
	assert.True(t, stats[2].HasCommits)
	assert.False(t, stats[2].HasPRs)
	assert.Equal(t, 6, stats[2].Commits)

	assert.Equal(t, AgentJules, stats[3].Service)
	assert.Equal(t, 2, stats[3].Commits)
}
