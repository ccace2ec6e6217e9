package models

import "math"

// MaxDisplayPoints caps how many rows a rendered chart shows.
const MaxDisplayPoints = 8

// Downsample selects at most max rows spread evenly across the full
// log, so the chart stays representative of the whole history. When
// sampling applies, the first and last rows are always included.
// Indices are linearly interpolated and rounded to nearest.
func Downsample(rows []*MetricRow, max int) []*MetricRow {
	if max <= 0 || len(rows) <= max {
		return rows
	}

	sampled := make([]*MetricRow, 0, max)
	step := float64(len(rows)-1) / float64(max-1)
	for i := 0; i < max; i++ {
		idx := int(math.Round(float64(i) * step))
		sampled = append(sampled, rows[idx])
	}
	return sampled
}
