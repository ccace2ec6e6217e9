// Package charts renders the collected metric history as PNG bar
// charts, mirroring the layout of the hosted status chart.
package charts

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/prwatcher/prwatcher/internal/models"
)

// Style selects the chart variant.
type Style string

const (
	// StyleDetailed overlays merged bars inside totals and adds a
	// secondary merge-rate axis. Canonical default.
	StyleDetailed Style = "detailed"
	// StyleVolume is the plain four-bar count chart.
	StyleVolume Style = "volume"
)

// ErrNoRows is returned when there is nothing to render.
var ErrNoRows = errors.New("no rows to render")

// ParseStyle validates a style flag value.
func ParseStyle(value string) (Style, error) {
	switch Style(value) {
	case StyleDetailed, StyleVolume:
		return Style(value), nil
	default:
		return "", fmt.Errorf("unknown chart style %q (want detailed or volume)", value)
	}
}

// Bar palette, 70% opacity like the original chart.
var (
	colorCopilot = color.NRGBA{R: 0x87, G: 0xCE, B: 0xEB, A: 0xB3} // sky blue
	colorCodex   = color.NRGBA{R: 0xFF, G: 0xA0, B: 0x7A, A: 0xB3} // light salmon
	colorDevin   = color.NRGBA{R: 0x90, G: 0xEE, B: 0x90, A: 0xB3} // light green
	colorJules   = color.NRGBA{R: 0xDD, G: 0xA0, B: 0xDD, A: 0xB3} // plum

	colorCopilotMerged = color.NRGBA{R: 0x46, G: 0x82, B: 0xB4, A: 0xCC} // steel blue
	colorCodexMerged   = color.NRGBA{R: 0xCD, G: 0x5C, B: 0x5C, A: 0xCC} // indian red
)

// Render draws the chart for the (already downsampled) rows and
// writes a PNG to path. Figure size and resolution scale with the
// sample count.
func Render(rows []*models.MetricRow, style Style, path string) error {
	if len(rows) == 0 {
		return ErrNoRows
	}

	n := len(rows)
	width := math.Min(0.20, 0.8/(float64(n)*0.8))

	p := plot.New()
	p.X.Label.Text = "Data Points"
	p.Y.Label.Text = "Counts (PRs & Commits)"
	p.Legend.Top = true
	p.Legend.Left = true

	tickLabels := make([]string, n)
	for i, row := range rows {
		tickLabels[i] = row.Timestamp.Format("01-02 15:04")
	}
	p.NominalX(tickLabels...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter

	grid := plotter.NewGrid()
	grid.Vertical.Color = color.Gray{Y: 0xc0}
	grid.Vertical.Dashes = []vg.Length{vg.Points(2), vg.Points(2)}
	grid.Horizontal.Color = color.Gray{Y: 0xc0}
	grid.Horizontal.Dashes = []vg.Length{vg.Points(2), vg.Points(2)}
	p.Add(grid)

	var (
		rightMargin vg.Length
		xmax        float64
		err         error
	)
	switch style {
	case StyleVolume:
		p.Title.Text = "PR Analytics: Volume Comparison"
		xmax, err = addVolumeSeries(p, rows, width)
	case StyleDetailed:
		p.Title.Text = "PR Analytics: Volume & Merge Rate"
		rightMargin = vg.Points(40)
		xmax, err = addDetailedSeries(p, rows, width)
	default:
		return fmt.Errorf("unknown chart style %q", style)
	}
	if err != nil {
		return err
	}

	p.X.Min = -0.5
	p.X.Max = xmax

	return save(p, n, rightMargin, path)
}

// addVolumeSeries lays out the four raw-count bar groups at the
// offsets the original chart used: the commit agents sit to the right
// of the PR pair.
func addVolumeSeries(p *plot.Plot, rows []*models.MetricRow, width float64) (float64, error) {
	n := len(rows)
	groups := []struct {
		name   string
		values []float64
		offset float64
		color  color.Color
	}{
		{"Copilot Total", metricValues(rows, func(r *models.MetricRow) int { return r.CopilotTotal }), -0.5 * width, colorCopilot},
		{"Codex Total", metricValues(rows, func(r *models.MetricRow) int { return r.CodexTotal }), 0.5 * width, colorCodex},
		{"Devin Commits", metricValues(rows, func(r *models.MetricRow) int { return r.DevinCommits }), 1.5 * width, colorDevin},
		{"Jules Commits", metricValues(rows, func(r *models.MetricRow) int { return r.JulesCommits }), 2.5 * width, colorJules},
	}

	maxCount := 0.0
	for _, g := range groups {
		bars := newBarSeries(g.values, g.offset, width, g.color)
		maxCount = math.Max(maxCount, bars.max())
		p.Add(bars)
		p.Legend.Add(g.name, bars)

		lbls, err := barLabels(g.values, g.offset)
		if err != nil {
			return 0, err
		}
		p.Add(lbls)
	}

	setYRange(p, maxCount)
	return float64(n-1) + 0.5 + 2.5*width, nil
}

// addDetailedSeries overlays merged bars inside totals for the PR
// agents and plots each agent's merge rate on a secondary percentage
// axis.
func addDetailedSeries(p *plot.Plot, rows []*models.MetricRow, width float64) (float64, error) {
	n := len(rows)

	copilotTotal := metricValues(rows, func(r *models.MetricRow) int { return r.CopilotTotal })
	copilotMerged := metricValues(rows, func(r *models.MetricRow) int { return r.CopilotMerged })
	codexTotal := metricValues(rows, func(r *models.MetricRow) int { return r.CodexTotal })
	codexMerged := metricValues(rows, func(r *models.MetricRow) int { return r.CodexMerged })
	devinCommits := metricValues(rows, func(r *models.MetricRow) int { return r.DevinCommits })
	julesCommits := metricValues(rows, func(r *models.MetricRow) int { return r.JulesCommits })

	// Merged bars share the total bar's offset so they read as the
	// filled-in portion of the total.
	groups := []struct {
		name   string
		values []float64
		offset float64
		color  color.Color
		label  bool
	}{
		{"Copilot Total", copilotTotal, -1.5 * width, colorCopilot, true},
		{"Copilot Merged", copilotMerged, -1.5 * width, colorCopilotMerged, false},
		{"Codex Total", codexTotal, -0.5 * width, colorCodex, true},
		{"Codex Merged", codexMerged, -0.5 * width, colorCodexMerged, false},
		{"Devin Commits", devinCommits, 0.5 * width, colorDevin, true},
		{"Jules Commits", julesCommits, 1.5 * width, colorJules, true},
	}

	maxCount := 0.0
	for _, g := range groups {
		bars := newBarSeries(g.values, g.offset, width, g.color)
		maxCount = math.Max(maxCount, bars.max())
		p.Add(bars)
		p.Legend.Add(g.name, bars)

		if !g.label {
			continue
		}
		lbls, err := barLabels(g.values, g.offset)
		if err != nil {
			return 0, err
		}
		p.Add(lbls)
	}

	setYRange(p, maxCount)

	axis := &percentAxis{max: p.Y.Max}
	rateSeries := []struct {
		name   string
		total  []float64
		merged []float64
		color  color.Color
	}{
		{"Copilot Merge Rate", copilotTotal, copilotMerged, colorCopilotMerged},
		{"Codex Merge Rate", codexTotal, codexMerged, colorCodexMerged},
	}
	for _, s := range rateSeries {
		rates := make([]float64, n)
		xys := make(plotter.XYs, n)
		for i := range rates {
			rates[i] = models.MergeRate(int(s.merged[i]), int(s.total[i]))
			xys[i] = plotter.XY{X: float64(i), Y: axis.Scale(rates[i])}
		}

		line, points, err := plotter.NewLinePoints(xys)
		if err != nil {
			return 0, err
		}
		line.Color = s.color
		line.Width = vg.Points(2)
		points.Shape = draw.CircleGlyph{}
		points.Color = s.color
		points.Radius = vg.Points(3)
		p.Add(line, points)
		p.Legend.Add(s.name, line, points)

		lbls, err := pointLabels(xys, rates)
		if err != nil {
			return 0, err
		}
		p.Add(lbls)
	}
	p.Add(axis)

	return float64(n-1) + 0.5 + 1.5*width, nil
}

func metricValues(rows []*models.MetricRow, get func(*models.MetricRow) int) []float64 {
	values := make([]float64, len(rows))
	for i, row := range rows {
		values[i] = float64(get(row))
	}
	return values
}

// setYRange pins the count axis at zero and leaves headroom for the
// value labels above the tallest bar.
func setYRange(p *plot.Plot, maxCount float64) {
	if maxCount <= 0 {
		maxCount = 1
	}
	p.Y.Min = 0
	p.Y.Max = maxCount * 1.15
}

// save renders the plot to a PNG. Small sample counts get a narrower
// figure, larger ones a higher resolution.
func save(p *plot.Plot, n int, rightMargin vg.Length, path string) error {
	var figWidth, figHeight float64
	if n <= 3 {
		figWidth = math.Max(10, float64(n)*4)
		figHeight = 6
	} else {
		figWidth = 14
		figHeight = 8
	}
	dpi := 150
	if n > 5 {
		dpi = 300
	}

	canvas := vgimg.NewWith(
		vgimg.UseWH(vg.Length(figWidth)*vg.Inch, vg.Length(figHeight)*vg.Inch),
		vgimg.UseDPI(dpi),
		vgimg.UseBackgroundColor(color.White),
	)
	dc := draw.New(canvas)
	if rightMargin > 0 {
		dc = draw.Crop(dc, 0, -rightMargin, 0, 0)
	}
	p.Draw(dc)

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	png := vgimg.PngCanvas{Canvas: canvas}
	if _, err := png.WriteTo(file); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
