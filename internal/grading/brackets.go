package grading

import (
	"math"

	"github.com/noah-isme/sma-classroom/internal/models"
)

// LabelNotGraded is the letter for an absent percentage.
const LabelNotGraded = "N/A"

type letterBracket struct {
	label string
	min   float64
}

// descending; first match wins
var letterBrackets = []letterBracket{
	{"A+", 97}, {"A", 93}, {"A-", 90},
	{"B+", 87}, {"B", 83}, {"B-", 80},
	{"C+", 77}, {"C", 73}, {"C-", 70},
	{"D+", 67}, {"D", 63}, {"D-", 60},
	{"F", 0},
}

// LegendOrder lists every letter label, best first, followed by N/A.
var LegendOrder = func() []string {
	out := make([]string, 0, len(letterBrackets)+1)
	for _, b := range letterBrackets {
		out = append(out, b.label)
	}
	return append(out, LabelNotGraded)
}()

// Classify maps a percentage to its letter grade. Values below every bracket are F.
func Classify(percentage *float64) string {
	if percentage == nil {
		return LabelNotGraded
	}
	for _, b := range letterBrackets {
		if *percentage >= b.min {
			return b.label
		}
	}
	return "F"
}

type gpaBracket struct {
	gpa   float64
	grade models.PercentRange
}

var gpaBrackets = []gpaBracket{
	{4.00, models.PercentRange{Min: 97, Max: 100}},
	{3.67, models.PercentRange{Min: 93, Max: 96}},
	{3.33, models.PercentRange{Min: 90, Max: 92}},
	{3.00, models.PercentRange{Min: 87, Max: 89}},
	{2.67, models.PercentRange{Min: 83, Max: 86}},
	{2.33, models.PercentRange{Min: 80, Max: 82}},
	{2.00, models.PercentRange{Min: 77, Max: 79}},
	{1.67, models.PercentRange{Min: 73, Max: 76}},
	{1.33, models.PercentRange{Min: 70, Max: 72}},
	{1.00, models.PercentRange{Min: 67, Max: 69}},
	{0.67, models.PercentRange{Min: 63, Max: 66}},
	{0.33, models.PercentRange{Min: 60, Max: 62}},
	{0.00, models.PercentRange{Min: 0, Max: 59}},
}

// ClosestGPABracket returns the canonical GPA nearest to gpa. On an exact tie the
// higher bracket wins.
func ClosestGPABracket(gpa float64) float64 {
	return gpaBrackets[closestBracket(gpa)].gpa
}

// ExpectedRange is the percentage range expected of a student with the given GPA.
func ExpectedRange(gpa float64) models.PercentRange {
	return gpaBrackets[closestBracket(gpa)].grade
}

func closestBracket(gpa float64) int {
	best := 0
	for i := 1; i < len(gpaBrackets); i++ {
		if math.Abs(gpaBrackets[i].gpa-gpa) < math.Abs(gpaBrackets[best].gpa-gpa) {
			best = i
		}
	}
	return best
}

// GPAForGrade returns the canonical GPA whose range holds the rounded grade. Grades above 100
// count as 4.00 and anything unmatched falls back to 0.00.
func GPAForGrade(grade float64) float64 {
	grade = math.Round(grade)
	if grade > 100 {
		return gpaBrackets[0].gpa
	}
	for _, b := range gpaBrackets {
		if grade >= b.grade.Min && grade <= b.grade.Max {
			return b.gpa
		}
	}
	return 0
}

// Discrepancy compares a grade with the range expected from the GPA.
func Discrepancy(grade *float64, gpa float64) models.Indicator {
	if grade == nil {
		return models.IndicatorNone
	}
	expected := ExpectedRange(gpa)
	switch {
	case *grade > expected.Max:
		return models.IndicatorOverPerforming
	case *grade < expected.Min:
		return models.IndicatorUnderPerforming
	default:
		return models.IndicatorNone
	}
}
