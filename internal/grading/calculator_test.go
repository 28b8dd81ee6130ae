package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-classroom/internal/models"
)

var sampleLedger = []models.Assignment{
	{ID: "hw1", Name: "Homework 1", Type: models.AssignmentHomework, MaxPoints: 10},
	{ID: "ec", Name: "Extra Credit", Type: models.AssignmentExtraCredit, MaxPoints: 20},
}

func TestComputeGradeExtraCredit(t *testing.T) {
	grade := ComputeGrade(models.StudentScores{"hw1": models.Points(8), "ec": models.Points(5)}, sampleLedger)
	require.NotNil(t, grade)
	assert.Equal(t, 130.0, *grade)
}

func TestComputeGradeExtraCreditOnly(t *testing.T) {
	grade := ComputeGrade(models.StudentScores{"hw1": models.Ungraded, "ec": models.Points(5)}, sampleLedger)
	require.NotNil(t, grade)
	assert.Equal(t, 100.0, *grade)
}

func TestComputeGradeNotGraded(t *testing.T) {
	assert.Nil(t, ComputeGrade(models.StudentScores{"hw1": models.Ungraded, "ec": models.Ungraded}, sampleLedger))
	assert.Nil(t, ComputeGrade(nil, sampleLedger))
	assert.Nil(t, ComputeGrade(models.StudentScores{"hw1": models.Points(3)}, nil))
}

func TestComputeGradeZeroCountsAsGraded(t *testing.T) {
	grade := ComputeGrade(models.StudentScores{"hw1": models.Points(0)}, sampleLedger)
	require.NotNil(t, grade)
	assert.Equal(t, 0.0, *grade)
}

func TestComputeGradeRoundsHalfUp(t *testing.T) {
	ledger := []models.Assignment{{ID: "q", Type: models.AssignmentQuiz, MaxPoints: 8}}
	grade := ComputeGrade(models.StudentScores{"q": models.Points(1)}, ledger)
	require.NotNil(t, grade)
	assert.Equal(t, 13.0, *grade)
}

func TestComputeGradeIgnoresScoresOutsideLedger(t *testing.T) {
	grade := ComputeGrade(models.StudentScores{"hw1": models.Points(5), "gone": models.Points(100)}, sampleLedger)
	require.NotNil(t, grade)
	assert.Equal(t, 50.0, *grade)
}

func TestComputeGradeOrderIndependent(t *testing.T) {
	ledger := DefaultLedger()
	scores := models.StudentScores{"hw1": models.Points(7), "q1": models.Points(19), "ex1": models.Points(81), "ec": models.Points(4)}
	want := ComputeGrade(scores, ledger)
	require.NotNil(t, want)

	reversed := make([]models.Assignment, len(ledger))
	for i, a := range ledger {
		reversed[len(ledger)-1-i] = a
	}
	got := ComputeGrade(scores, reversed)
	require.NotNil(t, got)
	assert.Equal(t, *want, *got)
}

func TestAssignmentPercentage(t *testing.T) {
	a := models.Assignment{ID: "q", MaxPoints: 25}
	p := AssignmentPercentage(models.Points(20), a)
	require.NotNil(t, p)
	assert.InDelta(t, 80, *p, 1e-9)
	assert.Nil(t, AssignmentPercentage(models.Ungraded, a))
}

func TestClampScore(t *testing.T) {
	assert.Equal(t, models.Points(0), ClampScore(models.Points(-3), 10))
	assert.Equal(t, models.Points(10), ClampScore(models.Points(12), 10))
	assert.Equal(t, models.Points(7.5), ClampScore(models.Points(7.5), 10))
	assert.Equal(t, models.Ungraded, ClampScore(models.Ungraded, 10))
}

func TestAverages(t *testing.T) {
	students := []models.Student{{ID: 1}, {ID: 2}, {ID: 3}}
	class := models.ClassScores{
		1: {"hw1": models.Points(10)},
		2: {"hw1": models.Points(5)},
		3: {"hw1": models.Ungraded},
	}
	avg := ColumnAverage(sampleLedger[0], class, students)
	require.NotNil(t, avg)
	assert.InDelta(t, 75, *avg, 1e-9)
	assert.Nil(t, ColumnAverage(sampleLedger[1], class, students))

	overall := OverallAverage([]*float64{ptr(80), nil, ptr(91)})
	require.NotNil(t, overall)
	assert.InDelta(t, 85.5, *overall, 1e-9)
	assert.Nil(t, OverallAverage([]*float64{nil}))
}
