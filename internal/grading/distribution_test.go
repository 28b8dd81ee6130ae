package grading

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateCountsEveryLabel(t *testing.T) {
	d := Aggregate([]*float64{ptr(98), ptr(95), ptr(95), nil, ptr(12)})
	require.Len(t, d.Buckets, len(LegendOrder))
	assert.Equal(t, 5, d.Total)
	assert.Equal(t, 1, d.Count("A+"))
	assert.Equal(t, 2, d.Count("A"))
	assert.Equal(t, 1, d.Count("F"))
	assert.Equal(t, 1, d.Count("N/A"))
	assert.Equal(t, 0, d.Count("B"))

	sum := 0
	for i, b := range d.Buckets {
		assert.Equal(t, LegendOrder[i], b.Label)
		sum += b.Count
	}
	assert.Equal(t, d.Total, sum)
}

func TestAggregateEmpty(t *testing.T) {
	d := Aggregate(nil)
	assert.Equal(t, 0, d.Total)
	assert.Len(t, d.Buckets, len(LegendOrder))
	assert.Empty(t, PieSlices(d, DefaultPie))
}

func TestPieSlicesShares(t *testing.T) {
	d := Aggregate([]*float64{ptr(98), ptr(85), ptr(85), ptr(85), nil, nil, ptr(40)})
	slices := PieSlices(d, DefaultPie)
	require.Len(t, slices, 4)

	labels := make([]string, 0, len(slices))
	total := 0.0
	for i, s := range slices {
		labels = append(labels, s.Label)
		total += s.Share
		if i > 0 {
			assert.InDelta(t, slices[i-1].End, s.Start, 1e-12)
		}
		assert.True(t, strings.HasPrefix(s.Path, "M 100 100 L "))
		assert.True(t, strings.HasSuffix(s.Path, " Z"))
	}
	assert.Equal(t, []string{"A+", "B", "F", "N/A"}, labels)
	assert.InDelta(t, 1.0, total, 1e-9)
	assert.Contains(t, slices[0].Path, "L 100 20 ")
}

func TestPieSlicesLargeArcFlag(t *testing.T) {
	d := Aggregate([]*float64{ptr(95), ptr(95), ptr(95), ptr(70)})
	slices := PieSlices(d, DefaultPie)
	require.Len(t, slices, 2)
	assert.Contains(t, slices[0].Path, " A 80 80 0 1 1 ")
	assert.Contains(t, slices[1].Path, " A 80 80 0 0 1 ")
}

func TestPieSlicesSingleBucketIsFullCircle(t *testing.T) {
	d := Aggregate([]*float64{ptr(88), ptr(88)})
	slices := PieSlices(d, DefaultPie)
	require.Len(t, slices, 1)
	assert.Equal(t, 1.0, slices[0].Share)
	assert.Equal(t, "M 100 100 L 100 20 A 80 80 0 1 1 100 180 A 80 80 0 1 1 100 20 Z", slices[0].Path)
}
