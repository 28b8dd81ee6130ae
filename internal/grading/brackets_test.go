package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/sma-classroom/internal/models"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		in   *float64
		want string
	}{
		{ptr(100), "A+"},
		{ptr(130), "A+"},
		{ptr(97), "A+"},
		{ptr(96), "A"},
		{ptr(90), "A-"},
		{ptr(89.999), "B+"},
		{ptr(60), "D-"},
		{ptr(59.9), "F"},
		{ptr(0), "F"},
		{ptr(-4), "F"},
		{nil, "N/A"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Classify(tc.in))
	}
}

func TestClassifyMonotonic(t *testing.T) {
	rank := make(map[string]int, len(LegendOrder))
	for i, label := range LegendOrder {
		rank[label] = i
	}
	prev := rank[Classify(ptr(0))]
	for p := 0.0; p <= 100; p += 0.25 {
		cur := rank[Classify(ptr(p))]
		assert.LessOrEqual(t, cur, prev, "percentage %v", p)
		prev = cur
	}
}

func TestLegendOrder(t *testing.T) {
	assert.Len(t, LegendOrder, 14)
	assert.Equal(t, "A+", LegendOrder[0])
	assert.Equal(t, "F", LegendOrder[12])
	assert.Equal(t, "N/A", LegendOrder[13])
}

func TestClosestGPABracket(t *testing.T) {
	assert.Equal(t, 4.00, ClosestGPABracket(3.9))
	assert.Equal(t, 3.67, ClosestGPABracket(3.8))
	assert.Equal(t, 1.67, ClosestGPABracket(1.6))
	assert.Equal(t, 0.00, ClosestGPABracket(-1))
	// 3.50 sits exactly between 3.67 and 3.33
	assert.Equal(t, 3.67, ClosestGPABracket(3.5))
}

func TestExpectedRange(t *testing.T) {
	assert.Equal(t, models.PercentRange{Min: 93, Max: 96}, ExpectedRange(3.7))
	assert.Equal(t, models.PercentRange{Min: 0, Max: 59}, ExpectedRange(0.1))
}

func TestGPAForGrade(t *testing.T) {
	assert.Equal(t, 3.67, GPAForGrade(95))
	assert.Equal(t, 3.67, GPAForGrade(96.4))
	assert.Equal(t, 4.00, GPAForGrade(130))
	assert.Equal(t, 0.33, GPAForGrade(61))
	assert.Equal(t, 0.00, GPAForGrade(12))
}

func TestDiscrepancy(t *testing.T) {
	assert.Equal(t, models.IndicatorOverPerforming, Discrepancy(ptr(98), 3.67))
	assert.Equal(t, models.IndicatorUnderPerforming, Discrepancy(ptr(80), 3.67))
	assert.Equal(t, models.IndicatorNone, Discrepancy(ptr(95), 3.67))
	assert.Equal(t, models.IndicatorNone, Discrepancy(ptr(93), 3.67))
	assert.Equal(t, models.IndicatorNone, Discrepancy(nil, 1.5))
}
