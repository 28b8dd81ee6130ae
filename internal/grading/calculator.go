// Package grading holds the pure grade computations behind the gradebook and seating chart.
package grading

import (
	"math"

	"github.com/noah-isme/sma-classroom/internal/models"
)

// ComputeGrade returns the overall percentage for one student's scores, or nil when
// no assignment has a recorded score. Extra credit adds to earned points only, so the
// result may exceed 100. If every recorded score is extra credit the grade is 100.
func ComputeGrade(scores models.StudentScores, ledger []models.Assignment) *float64 {
	var earned, possible, extra float64
	hasGrades := false
	for _, a := range ledger {
		score := scores[a.ID]
		if !score.Graded {
			continue
		}
		hasGrades = true
		if a.IsExtraCredit() {
			extra += score.Value
			continue
		}
		earned += score.Value
		possible += a.MaxPoints
	}
	if !hasGrades {
		return nil
	}
	if possible == 0 {
		return ptr(100)
	}
	return ptr(math.Round((earned + extra) / possible * 100))
}

// AssignmentPercentage returns score/maxPoints*100, or nil when ungraded.
func AssignmentPercentage(score models.Score, a models.Assignment) *float64 {
	if !score.Graded || a.MaxPoints <= 0 {
		return nil
	}
	return ptr(score.Value / a.MaxPoints * 100)
}

// ClampScore bounds a score to [0, maxPoints]. Ungraded scores pass through untouched.
func ClampScore(score models.Score, maxPoints float64) models.Score {
	if !score.Graded {
		return score
	}
	v := score.Value
	if math.IsNaN(v) || v < 0 {
		v = 0
	}
	if v > maxPoints {
		v = maxPoints
	}
	return models.Points(v)
}

// ColumnAverage is the mean percentage of one assignment over the students who have a score for it.
func ColumnAverage(a models.Assignment, class models.ClassScores, students []models.Student) *float64 {
	var sum float64
	count := 0
	for _, s := range students {
		score := class[s.ID][a.ID]
		if !score.Graded {
			continue
		}
		sum += score.Value
		count++
	}
	if count == 0 || a.MaxPoints <= 0 {
		return nil
	}
	return ptr(sum / float64(count) / a.MaxPoints * 100)
}

// OverallAverage is the mean of the non-nil grades.
func OverallAverage(grades []*float64) *float64 {
	var sum float64
	count := 0
	for _, g := range grades {
		if g == nil {
			continue
		}
		sum += *g
		count++
	}
	if count == 0 {
		return nil
	}
	return ptr(sum / float64(count))
}

func ptr(v float64) *float64 {
	return &v
}
