package repositories

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prwatcher/prwatcher/internal/models"
)

func testRow(hour int) *models.MetricRow {
	return &models.MetricRow{
		Timestamp:     time.Date(2024, 1, 1, hour, 0, 0, 0, time.UTC),
		CopilotTotal:  10 + hour,
		CopilotMerged: 5,
		CodexTotal:    8,
		CodexMerged:   2,
		DevinCommits:  3,
		JulesCommits:  1,
	}
}

func TestAppendCreatesFileWithHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	repo := NewMetricLogRepository(path)

	require.NoError(t, repo.Append(testRow(0)))

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(content), "\n"), "\n")
	require.Len(t, lines, 2, "header plus exactly one data row")
	assert.Equal(t, strings.Join(models.CSVHeader, ","), lines[0])
	assert.Equal(t, "2024-01-01 00:00:00,10,5,8,2,3,1", lines[1])
}

func TestAppendGrowsByOneRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	repo := NewMetricLogRepository(path)

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Append(testRow(i)))

		rows, err := repo.Load()
		require.NoError(t, err)
		assert.Len(t, rows, i+1)
	}
}

func TestAppendWritesHeaderIntoEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	repo := NewMetricLogRepository(path)
	require.NoError(t, repo.Append(testRow(0)))

	rows, err := repo.Load()
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestLoadMissingFile(t *testing.T) {
	repo := NewMetricLogRepository(filepath.Join(t.TempDir(), "missing.csv"))

	_, err := repo.Load()
	assert.ErrorIs(t, err, ErrMissingLog)
}

func TestLoadHeaderOnlyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(models.CSVHeader, ",")+"\n"), 0o644))

	repo := NewMetricLogRepository(path)
	_, err := repo.Load()
	assert.ErrorIs(t, err, ErrEmptyLog)
}

func TestLoadPreservesFileOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	repo := NewMetricLogRepository(path)

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Append(testRow(i)))
	}

	rows, err := repo.Load()
	require.NoError(t, err)
	require.Len(t, rows, 5)
	for i := 1; i < len(rows); i++ {
		assert.True(t, rows[i].Timestamp.After(rows[i-1].Timestamp))
	}
}

func TestLoadLegacyTimestampFormats(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	content := strings.Join(models.CSVHeader, ",") + "\n" +
		"2024‑01‑01 00:00:00,10,5,8,2,3,1\n" +
		"2024-01-02T00:00:00Z,14,9,8,4,6,2\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	repo := NewMetricLogRepository(path)
	rows, err := repo.Load()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 10, rows[0].CopilotTotal)
	assert.Equal(t, 14, rows[1].CopilotTotal)
}

func TestLatest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	repo := NewMetricLogRepository(path)

	require.NoError(t, repo.Append(testRow(0)))
	require.NoError(t, repo.Append(testRow(5)))

	latest, err := repo.Latest()
	require.NoError(t, err)
	assert.Equal(t, 15, latest.CopilotTotal)
}
