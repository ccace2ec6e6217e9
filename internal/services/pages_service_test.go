package services

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPage = `<!DOCTYPE html>
<html>
<body>
    <h1>Agent PR Tracker</h1>
    <div class="stats">
        <table>
                <thead>
                    <tr>
                        <th>Service</th>
                        <th>Total PRs</th>
                    </tr>
                </thead>
                <tbody>
                    <tr>
                        <td>Copilot</td>
                        <td>0</td>
                    </tr>
                    <tr>
                        <td>Codex</td>
                        <td>0</td>
                    </tr>
                </tbody>
        </table>
    </div>
    <p>Last updated: <span id="last-updated">never</span></p>
</body>
</html>
`

func newTestPagesService(t *testing.T) (*PagesService, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "index.html")
	require.NoError(t, os.WriteFile(path, []byte(testPage), 0o644))

	svc := NewPagesService(path)
	svc.now = func() time.Time {
		return time.Date(2024, 6, 1, 14, 30, 0, 0, time.UTC)
	}
	return svc, path
}

func TestPagesUpdateRewritesTable(t *testing.T) {
	svc, path := newTestPagesService(t)
	require.NoError(t, svc.Update(latestRow()))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	updated := string(content)

	// Header reconciled to include the commits column.
	assert.Contains(t, updated, "<th>Total Commits</th>")

	// Existing rows replaced in place with fresh values.
	assert.Contains(t, updated, "<td>Copilot</td>\n                        <td>14</td>\n                        <td>N/A</td>")
	assert.Contains(t, updated, "<td>Codex</td>\n                        <td>8</td>\n                        <td>N/A</td>")
	assert.Equal(t, 1, strings.Count(updated, "<td>Copilot</td>"))

	// Missing agents inserted before the closing tag.
	assert.Contains(t, updated, "<td>Devin</td>\n                        <td>N/A</td>\n                        <td>6</td>")
	assert.Contains(t, updated, "<td>Jules</td>\n                        <td>N/A</td>\n                        <td>2</td>")

	// Timestamp rewritten with the UTC label.
	assert.Contains(t, updated, `<span id="last-updated">June 01, 2024 14:30 UTC</span>`)
	assert.NotContains(t, updated, "never")

	// Untouched parts of the page survive.
	assert.Contains(t, updated, "<h1>Agent PR Tracker</h1>")
}

func TestPagesUpdateIsIdempotent(t *testing.T) {
	svc, path := newTestPagesService(t)

	require.NoError(t, svc.Update(latestRow()))
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	require.NoError(t, svc.Update(latestRow()))
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))

	// Agents must not be duplicated on re-run.
	assert.Equal(t, 1, strings.Count(string(second), "<td>Jules</td>"))
}

func TestPagesUpdateOverwritesPriorValues(t *testing.T) {
	svc, path := newTestPagesService(t)
	require.NoError(t, svc.Update(latestRow()))

	newer := latestRow()
	newer.DevinCommits = 1234
	require.NoError(t, svc.Update(newer))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "<td>1,234</td>")
	assert.NotContains(t, string(content), "<td>6</td>")
}

func TestPagesUpdateMissingFile(t *testing.T) {
	svc := NewPagesService(filepath.Join(t.TempDir(), "index.html"))
	err := svc.Update(latestRow())
	assert.ErrorIs(t, err, ErrMissingArtifact)
}
