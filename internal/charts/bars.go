package charts

import (
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// barSeries draws one bar per sample at a fixed fractional offset
// from the sample's integer x position. Offset and width are in data
// units, so groups stay separated no matter how many samples are on
// the axis.
type barSeries struct {
	values []float64
	offset float64
	width  float64
	color  color.Color
}

func newBarSeries(values []float64, offset, width float64, clr color.Color) *barSeries {
	return &barSeries{values: values, offset: offset, width: width, color: clr}
}

// Plot implements plot.Plotter.
func (b *barSeries) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	base := trY(math.Max(0, plt.Y.Min))

	for i, v := range b.values {
		if v <= 0 {
			continue
		}
		x := float64(i) + b.offset
		xmin := trX(x - b.width/2)
		xmax := trX(x + b.width/2)
		top := trY(v)

		c.FillPolygon(b.color, []vg.Point{
			{X: xmin, Y: base},
			{X: xmin, Y: top},
			{X: xmax, Y: top},
			{X: xmax, Y: base},
		})
	}
}

// DataRange implements plot.DataRanger.
func (b *barSeries) DataRange() (xmin, xmax, ymin, ymax float64) {
	xmin = math.Inf(1)
	xmax = math.Inf(-1)
	ymin = 0
	ymax = math.Inf(-1)
	for i, v := range b.values {
		x := float64(i) + b.offset
		xmin = math.Min(xmin, x-b.width/2)
		xmax = math.Max(xmax, x+b.width/2)
		ymax = math.Max(ymax, v)
	}
	return xmin, xmax, ymin, ymax
}

// Thumbnail implements plot.Thumbnailer for legend entries.
func (b *barSeries) Thumbnail(c *draw.Canvas) {
	c.FillPolygon(b.color, []vg.Point{
		{X: c.Min.X, Y: c.Min.Y},
		{X: c.Min.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Min.Y},
	})
}

// max returns the largest value in the series, 0 for an empty one.
func (b *barSeries) max() float64 {
	m := 0.0
	for _, v := range b.values {
		m = math.Max(m, v)
	}
	return m
}
