package main

import (
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/prwatcher/prwatcher/internal/repositories"
	"github.com/prwatcher/prwatcher/internal/services"
	"github.com/prwatcher/prwatcher/pkg/config"
	"github.com/prwatcher/prwatcher/pkg/logger"
)

// newCollectorCommand creates the collect entry point. It takes no
// arguments; an external scheduler invokes it once per run.
func newCollectorCommand() *cobra.Command {
	return &cobra.Command{
		Use:           "collector",
		Short:         "Collect agent PR and commit counts into the metric log",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			log := logger.WithField("run_id", uuid.New().String())

			client, err := services.NewGitHubClient(cmd.Context(), cfg.GitHub)
			if err != nil {
				return err
			}

			repo := repositories.NewMetricLogRepository(cfg.Paths.DataFile)
			collector := services.NewCollectorService(client, services.DefaultQueries(), repo, log)

			path, err := collector.Collect(cmd.Context())
			if err != nil {
				return err
			}

			log.Infof("Data collection complete: %s. Run the reporter to generate the chart.", path)
			return nil
		},
	}
}

func main() {
	if err := newCollectorCommand().Execute(); err != nil {
		logger.WithError(err).Error("collection failed")
		os.Exit(1)
	}
}
