package services

import (
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/prwatcher/prwatcher/internal/models"
)

// StatsHeading marks where the generated section of the README
// begins. Everything from the heading onward is owned by the tool.
const StatsHeading = "## Current Statistics"

// ReadmeService rewrites the README statistics section from the
// latest metric row. Content before the heading is preserved
// verbatim.
type ReadmeService struct {
	path string
}

func NewReadmeService(path string) *ReadmeService {
	return &ReadmeService{path: path}
}

// Update regenerates the statistics section. Returns
// ErrMissingArtifact when the README does not exist.
func (s *ReadmeService) Update(row *models.MetricRow) error {
	content, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrMissingArtifact, s.path)
		}
		return fmt.Errorf("read %s: %w", s.path, err)
	}

	section := StatsHeading + "\n\n" + renderStatsTable(row)

	document := string(content)
	var updated string
	if idx := strings.Index(document, StatsHeading); idx >= 0 {
		base := strings.TrimRight(document[:idx], " \t\n")
		updated = base + "\n\n" + section
	} else {
		updated = document + "\n\n" + section
	}

	if err := os.WriteFile(s.path, []byte(updated), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}

// renderStatsTable renders the per-agent Markdown table. PR agents
// show totals, merged counts and merge rate; commit agents show only
// their commit count.
func renderStatsTable(row *models.MetricRow) string {
	t := table.NewWriter()
	t.Style().Format.Header = text.FormatDefault
	t.AppendHeader(table.Row{"Service", "Total PRs", "Merged PRs", "Merge Rate", "Total Commits"})

	for _, agent := range row.AgentStats() {
		prs, merged, rate, commits := "N/A", "N/A", "N/A", "N/A"
		if agent.HasPRs {
			prs = humanize.Comma(int64(agent.Total))
			merged = humanize.Comma(int64(agent.Merged))
			rate = fmt.Sprintf("%.2f%%", agent.MergeRate())
		}
		if agent.HasCommits {
			commits = humanize.Comma(int64(agent.Commits))
		}
		t.AppendRow(table.Row{agent.Service, prs, merged, rate, commits})
	}

	return t.RenderMarkdown()
}
