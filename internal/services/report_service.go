package services

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/prwatcher/prwatcher/internal/charts"
	"github.com/prwatcher/prwatcher/internal/models"
	"github.com/prwatcher/prwatcher/internal/repositories"
	"github.com/prwatcher/prwatcher/pkg/config"
)

// ErrMissingArtifact means a report artifact (README or status page)
// is absent. The artifact is skipped; the run continues.
var ErrMissingArtifact = errors.New("artifact not found")

// ReportService turns the metric log into the published artifacts:
// the chart image, the README table and the Pages status table.
type ReportService struct {
	repo      *repositories.MetricLogRepository
	readme    *ReadmeService
	pages     *PagesService
	export    *ExportService
	chartPath string
	docsDir   string
	log       *logrus.Entry
}

func NewReportService(
	cfg *config.Config,
	repo *repositories.MetricLogRepository,
	log *logrus.Entry,
) *ReportService {
	return &ReportService{
		repo:      repo,
		readme:    NewReadmeService(cfg.Paths.ReadmeFile),
		pages:     NewPagesService(cfg.Paths.PagesFile),
		export:    NewExportService(),
		chartPath: cfg.Paths.ChartFile,
		docsDir:   cfg.Paths.DocsDir,
		log:       log,
	}
}

// Run renders the chart and rewrites the text artifacts from the
// latest row. A missing or empty log fails the run; a missing
// artifact only skips that artifact. exportPath is optional.
func (s *ReportService) Run(style charts.Style, exportPath string) error {
	rows, err := s.repo.Load()
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrMissingLog):
			s.log.WithError(err).Error("no metric log found, run the collector first")
		case errors.Is(err, repositories.ErrEmptyLog):
			s.log.WithError(err).Error("metric log has no data")
		}
		return err
	}

	sample := models.Downsample(rows, models.MaxDisplayPoints)
	if len(sample) < len(rows) {
		s.log.Infof("Limited chart to %d data points evenly distributed across %d total points",
			len(sample), len(rows))
	}

	if err := charts.Render(sample, style, s.chartPath); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	s.log.Infof("Chart generated: %s", s.chartPath)

	if err := s.publishChart(); err != nil {
		return err
	}

	latest := rows[len(rows)-1]

	if err := s.readme.Update(latest); err != nil {
		if !errors.Is(err, ErrMissingArtifact) {
			return err
		}
		s.log.Warnf("%v, skipping README update", err)
	} else {
		s.log.Info("README updated with latest statistics")
	}

	if err := s.pages.Update(latest); err != nil {
		if !errors.Is(err, ErrMissingArtifact) {
			return err
		}
		s.log.Warnf("%v, skipping status page update", err)
	} else {
		s.log.Info("Status page updated with latest statistics")
	}

	if exportPath != "" {
		if err := s.export.Export(rows, exportPath); err != nil {
			s.log.WithError(err).Warn("workbook export failed")
		} else {
			s.log.Infof("Metric log exported: %s", exportPath)
		}
	}

	return nil
}

// publishChart duplicates the chart into the docs directory when that
// directory exists, which signals the Pages site is in use.
func (s *ReportService) publishChart() error {
	info, err := os.Stat(s.docsDir)
	if err != nil || !info.IsDir() {
		return nil
	}

	data, err := os.ReadFile(s.chartPath)
	if err != nil {
		return fmt.Errorf("read chart: %w", err)
	}
	dst := filepath.Join(s.docsDir, filepath.Base(s.chartPath))
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return fmt.Errorf("copy chart to %s: %w", dst, err)
	}

	s.log.Infof("Chart copied to %s", dst)
	return nil
}
