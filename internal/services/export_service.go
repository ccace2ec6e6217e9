package services

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/prwatcher/prwatcher/internal/models"
)

const exportSheet = "Metrics"

// ExportService writes the full metric log to an Excel workbook, one
// row per collection run.
type ExportService struct{}

func NewExportService() *ExportService {
	return &ExportService{}
}

// Export writes the workbook to path.
func (s *ExportService) Export(rows []*models.MetricRow, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}

	header := make([]interface{}, len(models.CSVHeader))
	for i, name := range models.CSVHeader {
		header[i] = name
	}
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []interface{}{
			row.Timestamp.UTC().Format(models.TimestampLayout),
			row.CopilotTotal,
			row.CopilotMerged,
			row.CodexTotal,
			row.CodexMerged,
			row.DevinCommits,
			row.JulesCommits,
		}
		if err := f.SetSheetRow(exportSheet, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
