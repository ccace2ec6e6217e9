package repositories

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"

	"github.com/prwatcher/prwatcher/internal/models"
)

var (
	// ErrMissingLog means the metric log file does not exist yet.
	ErrMissingLog = errors.New("metric log not found")
	// ErrEmptyLog means the metric log exists but holds no data rows.
	ErrEmptyLog = errors.New("metric log contains no rows")
)

// MetricLogRepository is the append-only CSV store backing the
// pipeline. One file, one header row, one data row per collection
// run; rows are never mutated or deleted.
type MetricLogRepository struct {
	path string
}

func NewMetricLogRepository(path string) *MetricLogRepository {
	return &MetricLogRepository{path: path}
}

// Path returns the log file location.
func (r *MetricLogRepository) Path() string {
	return r.path
}

// Append appends a single row, creating the file and writing the
// header row first if the file does not exist yet.
func (r *MetricLogRepository) Append(row *models.MetricRow) error {
	writeHeader := false
	info, err := os.Stat(r.path)
	switch {
	case os.IsNotExist(err):
		writeHeader = true
	case err != nil:
		return fmt.Errorf("stat %s: %w", r.path, err)
	default:
		writeHeader = info.Size() == 0
	}

	file, err := os.OpenFile(r.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", r.path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if writeHeader {
		if err := writer.Write(models.CSVHeader); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	if err := writer.Write(row.Record()); err != nil {
		return fmt.Errorf("write row: %w", err)
	}

	writer.Flush()
	return writer.Error()
}

// Load reads the full log in file order, oldest first.
func (r *MetricLogRepository) Load() ([]*models.MetricRow, error) {
	file, err := os.Open(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrMissingLog, r.path)
		}
		return nil, fmt.Errorf("open %s: %w", r.path, err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", r.path, err)
	}

	rows := make([]*models.MetricRow, 0, len(records))
	for i, record := range records {
		if i == 0 && len(record) > 0 && record[0] == models.CSVHeader[0] {
			continue
		}
		row, err := models.ParseMetricRow(record)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", r.path, i+1, err)
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyLog, r.path)
	}
	return rows, nil
}

// Latest returns the most recent row in the log.
func (r *MetricLogRepository) Latest() (*models.MetricRow, error) {
	rows, err := r.Load()
	if err != nil {
		return nil, err
	}
	return rows[len(rows)-1], nil
}
