package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/prwatcher/prwatcher/internal/charts"
	"github.com/prwatcher/prwatcher/internal/repositories"
	"github.com/prwatcher/prwatcher/internal/services"
	"github.com/prwatcher/prwatcher/pkg/config"
	"github.com/prwatcher/prwatcher/pkg/logger"
)

// reporterCommand holds the flag values for the report entry point.
type reporterCommand struct {
	dataFile string
	style    string
	export   string
}

func newReporterCommand() *cobra.Command {
	rc := &reporterCommand{}

	cobraCmd := &cobra.Command{
		Use:           "reporter",
		Short:         "Render the metric chart and refresh the status artifacts",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          rc.run,
	}

	cobraCmd.Flags().StringVar(&rc.dataFile, "data", "", "Metric log path (default: DATA_FILE or data.csv)")
	cobraCmd.Flags().StringVar(&rc.style, "style", string(charts.StyleDetailed), "Chart style (detailed, volume)")
	cobraCmd.Flags().StringVar(&rc.export, "export", "", "Also export the full log to this XLSX workbook")

	return cobraCmd
}

func (rc *reporterCommand) run(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	style, err := charts.ParseStyle(rc.style)
	if err != nil {
		return err
	}

	dataFile := cfg.Paths.DataFile
	if rc.dataFile != "" {
		dataFile = rc.dataFile
	}

	repo := repositories.NewMetricLogRepository(dataFile)
	report := services.NewReportService(cfg, repo, logger.WithField("component", "reporter"))

	return report.Run(style, rc.export)
}

func main() {
	if err := newReporterCommand().Execute(); err != nil {
		logger.WithError(err).Error("report generation failed")
		os.Exit(1)
	}
}
