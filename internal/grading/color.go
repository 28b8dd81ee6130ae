package grading

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Fixed colors of the palette.
const (
	ColorFailing     = "#e74c3c"
	ColorNotGraded   = "#cccccc"
	ColorLegendEmpty = "#bdc3c7"
)

var (
	red    = rgb(231, 76, 60)
	yellow = rgb(241, 196, 15)
	green  = rgb(46, 204, 113)
	blue   = rgb(52, 152, 219)
)

type colorStop struct {
	upTo     float64
	from, to colorful.Color
	span     float64
}

var gradeStops = []colorStop{
	{upTo: 70, from: red, to: yellow, span: 20},
	{upTo: 90, from: yellow, to: green, span: 20},
	{upTo: math.Inf(1), from: green, to: blue, span: 10},
}

var gpaStops = []colorStop{
	{upTo: 2.7, from: red, to: yellow, span: 0.7},
	{upTo: 3.4, from: yellow, to: green, span: 0.7},
	{upTo: math.Inf(1), from: green, to: blue, span: 0.6},
}

// GradeColor maps a percentage onto the red-yellow-green-blue scale.
func GradeColor(grade float64) string {
	return scaleColor(grade, 50, gradeStops)
}

// GPAColor maps a GPA onto the same scale.
func GPAColor(gpa float64) string {
	return scaleColor(gpa, 2.0, gpaStops)
}

// GradeColorPtr is GradeColor with the not-graded color for nil.
func GradeColorPtr(grade *float64) string {
	if grade == nil {
		return ColorNotGraded
	}
	return GradeColor(*grade)
}

var letterMidpoints = map[string]float64{
	"A+": 98, "A": 95, "A-": 91,
	"B+": 88, "B": 85, "B-": 81,
	"C+": 78, "C": 75, "C-": 71,
	"D+": 68, "D": 65, "D-": 61,
	"F": 40,
}

// LetterColor is the chart color of a letter label.
func LetterColor(label string) string {
	mid, ok := letterMidpoints[label]
	if !ok {
		return ColorLegendEmpty
	}
	return GradeColor(mid)
}

func scaleColor(v, floor float64, stops []colorStop) string {
	if v <= floor {
		return ColorFailing
	}
	start := floor
	for _, stop := range stops {
		if v <= stop.upTo {
			t := math.Min(1, (v-start)/stop.span)
			return cssRGB(blend(stop.from, stop.to, t))
		}
		start = stop.upTo
	}
	return cssRGB(stops[len(stops)-1].to)
}

func rgb(r, g, b uint8) colorful.Color {
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

// blend interpolates on the 0-255 scale and rounds each channel half up.
func blend(from, to colorful.Color, t float64) colorful.Color {
	channel := func(a, b float64) float64 {
		a, b = math.Round(a*255), math.Round(b*255)
		return math.Round(a+(b-a)*t) / 255
	}
	return colorful.Color{R: channel(from.R, to.R), G: channel(from.G, to.G), B: channel(from.B, to.B)}
}

func cssRGB(c colorful.Color) string {
	return fmt.Sprintf("rgb(%d, %d, %d)", int(math.Round(c.R*255)), int(math.Round(c.G*255)), int(math.Round(c.B*255)))
}
