package services

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/prwatcher/prwatcher/internal/models"
)

func TestExportWritesWorkbook(t *testing.T) {
	rows := []*models.MetricRow{
		{
			Timestamp:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			CopilotTotal:  10,
			CopilotMerged: 5,
			CodexTotal:    8,
			CodexMerged:   2,
			DevinCommits:  3,
			JulesCommits:  1,
		},
		{
			Timestamp:     time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
			CopilotTotal:  14,
			CopilotMerged: 9,
			CodexTotal:    8,
			CodexMerged:   4,
			DevinCommits:  6,
			JulesCommits:  2,
		},
	}

	path := filepath.Join(t.TempDir(), "metrics.xlsx")
	require.NoError(t, NewExportService().Export(rows, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	sheetRows, err := f.GetRows(exportSheet)
	require.NoError(t, err)
	require.Len(t, sheetRows, 3, "header plus one row per metric row")

	assert.Equal(t, models.CSVHeader, sheetRows[0])
	assert.Equal(t, []string{"2024-01-01 00:00:00", "10", "5", "8", "2", "3", "1"}, sheetRows[1])
	assert.Equal(t, []string{"2024-01-02 00:00:00", "14", "9", "8", "4", "6", "2"}, sheetRows[2])
}

func TestExportEmptyLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metrics.xlsx")
	require.NoError(t, NewExportService().Export(nil, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	sheetRows, err := f.GetRows(exportSheet)
	require.NoError(t, err)
	require.Len(t, sheetRows, 1)
	assert.Equal(t, models.CSVHeader, sheetRows[0])
}
