package charts

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// percentAxis is a secondary 0-100% scale drawn along the right edge
// of the data area. Series plotted against it must be mapped into
// primary-axis space with Scale first.
type percentAxis struct {
	// max is the primary-axis value that corresponds to 100%.
	max float64
}

// Scale maps a percentage onto the primary count axis.
func (a *percentAxis) Scale(pct float64) float64 {
	return pct / 100 * a.max
}

// Plot implements plot.Plotter. It only draws tick labels in the
// margin reserved to the right of the data area, so it takes no part
// in axis autoscaling.
func (a *percentAxis) Plot(c draw.Canvas, plt *plot.Plot) {
	_, trY := plt.Transforms(&c)

	style := plt.Y.Tick.Label
	style.XAlign = draw.XLeft
	style.YAlign = draw.YCenter

	for pct := 0.0; pct <= 100; pct += 20 {
		y := trY(a.Scale(pct))
		c.FillText(style, vg.Point{X: c.Max.X + vg.Points(4), Y: y}, fmt.Sprintf("%.0f%%", pct))
	}
}
