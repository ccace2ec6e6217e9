package charts

import (
	"fmt"
	"math"

	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// FormatValue renders a bar value label, abbreviating large counts so
// they stay legible above narrow bars.
func FormatValue(v float64) string {
	switch {
	case v >= 1e6:
		return fmt.Sprintf("%.1fM", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("%.1fk", v/1e3)
	default:
		return fmt.Sprintf("%.0f", v)
	}
}

// barLabels places a value label above every non-zero bar of a
// series.
func barLabels(values []float64, offset float64) (*plotter.Labels, error) {
	var (
		xys    plotter.XYs
		labels []string
	)
	for i, v := range values {
		if v <= 0 {
			continue
		}
		xys = append(xys, plotter.XY{X: float64(i) + offset, Y: v})
		labels = append(labels, FormatValue(v))
	}

	lbls, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
	if err != nil {
		return nil, err
	}
	styleLabels(lbls, vg.Points(9))
	return lbls, nil
}

// pointLabels annotates line points with percentage values, skipping
// pairs where either coordinate is undefined.
func pointLabels(xys plotter.XYs, rates []float64) (*plotter.Labels, error) {
	var (
		kept   plotter.XYs
		labels []string
	)
	for i, xy := range xys {
		if math.IsNaN(xy.X) || math.IsNaN(xy.Y) {
			continue
		}
		kept = append(kept, xy)
		labels = append(labels, fmt.Sprintf("%.1f%%", rates[i]))
	}

	lbls, err := plotter.NewLabels(plotter.XYLabels{XYs: kept, Labels: labels})
	if err != nil {
		return nil, err
	}
	styleLabels(lbls, vg.Points(8))
	return lbls, nil
}

func styleLabels(lbls *plotter.Labels, size vg.Length) {
	for i := range lbls.TextStyle {
		lbls.TextStyle[i].Font.Size = size
		lbls.TextStyle[i].XAlign = draw.XCenter
		lbls.TextStyle[i].YAlign = draw.YBottom
	}
	lbls.Offset = vg.Point{Y: vg.Points(2)}
}
