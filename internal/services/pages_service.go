package services

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/prwatcher/prwatcher/internal/models"
)

// Patterns anchoring the editable parts of the status page. The rest
// of the hand-authored document is left untouched.
var (
	theadPattern       = regexp.MustCompile(`(?s)<thead>\s*<tr>.*?</tr>\s*</thead>`)
	lastUpdatedPattern = regexp.MustCompile(`<span id="last-updated">[^<]*</span>`)
)

// PagesService patches the GitHub Pages status table in place from
// the latest metric row: header replaced wholesale, one data row per
// agent keyed by service name, and the last-updated stamp.
type PagesService struct {
	path string
	now  func() time.Time
}

func NewPagesService(path string) *PagesService {
	return &PagesService{path: path, now: time.Now}
}

// pageRow is one table row of the status page, keyed by service.
type pageRow struct {
	service string
	prs     string
	commits string
}

func buildPageRows(row *models.MetricRow) []pageRow {
	stats := row.AgentStats()
	rows := make([]pageRow, 0, len(stats))
	for _, agent := range stats {
		r := pageRow{service: agent.Service, prs: "N/A", commits: "N/A"}
		if agent.HasPRs {
			r.prs = humanize.Comma(int64(agent.Total))
		}
		if agent.HasCommits {
			r.commits = humanize.Comma(int64(agent.Commits))
		}
		rows = append(rows, r)
	}
	return rows
}

func (r pageRow) html() string {
	return fmt.Sprintf("<tr>\n"+
		"                        <td>%s</td>\n"+
		"                        <td>%s</td>\n"+
		"                        <td>%s</td>\n"+
		"                    </tr>", r.service, r.prs, r.commits)
}

func rowPattern(service string) *regexp.Regexp {
	return regexp.MustCompile(`(?s)<tr>\s*<td>` + regexp.QuoteMeta(service) + `</td>.*?</tr>`)
}

const headerRowHTML = "<tr>\n" +
	"                        <th>Service</th>\n" +
	"                        <th>Total PRs</th>\n" +
	"                        <th>Total Commits</th>\n" +
	"                    </tr>"

// Update rewrites the status table and timestamp. Returns
// ErrMissingArtifact when the page does not exist. Re-running with
// the same row is a no-op byte-wise except for the timestamp.
func (s *PagesService) Update(row *models.MetricRow) error {
	content, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrMissingArtifact, s.path)
		}
		return fmt.Errorf("read %s: %w", s.path, err)
	}

	document := string(content)
	document = theadPattern.ReplaceAllLiteralString(document,
		"<thead>\n                    "+headerRowHTML+"\n                </thead>")

	for _, r := range buildPageRows(row) {
		pattern := rowPattern(r.service)
		if pattern.MatchString(document) {
			document = pattern.ReplaceAllLiteralString(document, r.html())
			continue
		}
		// Row not present yet: insert before the table's closing tag.
		if idx := strings.LastIndex(document, "</tbody>"); idx >= 0 {
			document = document[:idx] + r.html() + "\n                    " + document[idx:]
		}
	}

	stamp := s.now().Format("January 02, 2006 15:04") + " UTC"
	document = lastUpdatedPattern.ReplaceAllLiteralString(document,
		`<span id="last-updated">`+stamp+`</span>`)

	if err := os.WriteFile(s.path, []byte(document), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}
