package grading

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/sma-classroom/internal/models"
)

func ids(l Ledger) []string {
	out := make([]string, 0, len(l))
	for _, a := range l {
		out = append(out, a.ID)
	}
	return out
}

func abc() Ledger {
	return Ledger{{ID: "A"}, {ID: "B"}, {ID: "C"}}
}

func TestLedgerInsert(t *testing.T) {
	x := models.Assignment{ID: "X"}
	cases := []struct {
		pos  models.InsertPosition
		ref  string
		want []string
	}{
		{models.PositionBefore, "B", []string{"A", "X", "B", "C"}},
		{models.PositionAfter, "B", []string{"A", "B", "X", "C"}},
		{models.PositionAfter, "C", []string{"A", "B", "C", "X"}},
		{models.PositionBefore, "A", []string{"X", "A", "B", "C"}},
		{models.PositionStart, "", []string{"X", "A", "B", "C"}},
		{models.PositionEnd, "", []string{"A", "B", "C", "X"}},
		{models.PositionBefore, "missing", []string{"A", "B", "C", "X"}},
		{models.PositionAfter, "", []string{"A", "B", "C", "X"}},
		{"sideways", "B", []string{"A", "B", "C", "X"}},
	}
	for _, tc := range cases {
		base := abc()
		got := base.Insert(x, tc.pos, tc.ref)
		assert.Equal(t, tc.want, ids(got), "%s %s", tc.pos, tc.ref)
		assert.Equal(t, []string{"A", "B", "C"}, ids(base))
	}
}

func TestLedgerFind(t *testing.T) {
	l := Ledger(DefaultLedger())
	a, ok := l.Find("ex1")
	assert.True(t, ok)
	assert.Equal(t, "Exam 1", a.Name)
	_, ok = l.Find("nope")
	assert.False(t, ok)
}

func TestNewAssignmentID(t *testing.T) {
	l := Ledger(DefaultLedger())
	first := l.NewAssignmentID("  Chapter  Review ")
	assert.True(t, strings.HasPrefix(first, "chapter-review-"))

	l = l.Insert(models.Assignment{ID: first, Name: "Chapter Review"}, models.PositionEnd, "")
	second := l.NewAssignmentID("Chapter Review")
	assert.NotEqual(t, first, second)
	assert.True(t, strings.HasPrefix(l.NewAssignmentID(""), "assignment-"))
}
