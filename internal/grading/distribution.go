package grading

import (
	"math"
	"strconv"
	"strings"
)

// Bucket is the count of one letter label.
type Bucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
	Color string `json:"color"`
}

// Distribution holds a count for every letter label in legend order, including empty ones.
type Distribution struct {
	Buckets []Bucket `json:"buckets"`
	Total   int      `json:"total"`
}

// Aggregate classifies each percentage and counts the letters.
func Aggregate(percentages []*float64) Distribution {
	index := make(map[string]int, len(LegendOrder))
	buckets := make([]Bucket, len(LegendOrder))
	for i, label := range LegendOrder {
		index[label] = i
		buckets[i] = Bucket{Label: label, Color: LetterColor(label)}
	}
	for _, p := range percentages {
		buckets[index[Classify(p)]].Count++
	}
	return Distribution{Buckets: buckets, Total: len(percentages)}
}

// Count returns the count of a label, 0 for unknown labels.
func (d Distribution) Count(label string) int {
	for _, b := range d.Buckets {
		if b.Label == label {
			return b.Count
		}
	}
	return 0
}

// PieGeometry positions a pie chart.
type PieGeometry struct {
	CX     float64
	CY     float64
	Radius float64
}

// DefaultPie matches a 200x200 viewBox.
var DefaultPie = PieGeometry{CX: 100, CY: 100, Radius: 80}

// PieSlice is one drawn wedge. Start and End are fractions of a full turn
// measured clockwise from 12 o'clock.
type PieSlice struct {
	Label string  `json:"label"`
	Count int     `json:"count"`
	Share float64 `json:"share"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Color string  `json:"color"`
	Path  string  `json:"path"`
}

// PieSlices lays out the non-empty buckets in legend order. An empty distribution has no slices.
func PieSlices(d Distribution, g PieGeometry) []PieSlice {
	total := 0
	for _, b := range d.Buckets {
		total += b.Count
	}
	if total == 0 {
		return nil
	}
	slices := make([]PieSlice, 0, len(d.Buckets))
	cumulative := 0.0
	for _, b := range d.Buckets {
		if b.Count == 0 {
			continue
		}
		share := float64(b.Count) / float64(total)
		slices = append(slices, PieSlice{
			Label: b.Label,
			Count: b.Count,
			Share: share,
			Start: cumulative,
			End:   cumulative + share,
			Color: b.Color,
			Path:  slicePath(g, cumulative, share),
		})
		cumulative += share
	}
	return slices
}

func slicePath(g PieGeometry, start, share float64) string {
	sx, sy := g.point(start)
	ex, ey := g.point(start + share)
	largeArc := "0"
	if share > 0.5 {
		largeArc = "1"
	}
	r := num(g.Radius)
	if share >= 1 {
		// start and end coincide, so the arc is split at the opposite point
		mx, my := g.point(start + 0.5)
		return strings.Join([]string{
			"M", num(g.CX), num(g.CY),
			"L", num(sx), num(sy),
			"A", r, r, "0", "1", "1", num(mx), num(my),
			"A", r, r, "0", "1", "1", num(sx), num(sy),
			"Z",
		}, " ")
	}
	return strings.Join([]string{
		"M", num(g.CX), num(g.CY),
		"L", num(sx), num(sy),
		"A", r, r, "0", largeArc, "1", num(ex), num(ey),
		"Z",
	}, " ")
}

func (g PieGeometry) point(fraction float64) (float64, float64) {
	angle := fraction*2*math.Pi - math.Pi/2
	return g.CX + g.Radius*math.Cos(angle), g.CY + g.Radius*math.Sin(angle)
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
