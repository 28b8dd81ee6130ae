package grading

import (
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/noah-isme/sma-classroom/internal/models"
)

// DefaultLedger is the assignment list every course starts with.
func DefaultLedger() []models.Assignment {
	return []models.Assignment{
		{ID: "hw1", Name: "Homework 1", Type: models.AssignmentHomework, MaxPoints: 10},
		{ID: "hw2", Name: "Homework 2", Type: models.AssignmentHomework, MaxPoints: 10},
		{ID: "q1", Name: "Quiz 1", Type: models.AssignmentQuiz, MaxPoints: 25},
		{ID: "hw3", Name: "Homework 3", Type: models.AssignmentHomework, MaxPoints: 10},
		{ID: "t1", Name: "Test 1", Type: models.AssignmentTest, MaxPoints: 50},
		{ID: "p1", Name: "Project 1", Type: models.AssignmentProject, MaxPoints: 50},
		{ID: "hw4", Name: "Homework 4", Type: models.AssignmentHomework, MaxPoints: 10},
		{ID: "q2", Name: "Quiz 2", Type: models.AssignmentQuiz, MaxPoints: 25},
		{ID: "ex1", Name: "Exam 1", Type: models.AssignmentExam, MaxPoints: 100},
		{ID: "hw5", Name: "Homework 5", Type: models.AssignmentHomework, MaxPoints: 10},
		{ID: "q3", Name: "Quiz 3", Type: models.AssignmentQuiz, MaxPoints: 25},
		{ID: "p2", Name: "Project 2", Type: models.AssignmentProject, MaxPoints: 50},
		{ID: "t2", Name: "Test 2", Type: models.AssignmentTest, MaxPoints: 50},
		{ID: "hw6", Name: "Homework 6", Type: models.AssignmentHomework, MaxPoints: 10},
		{ID: "ex2", Name: "Exam 2", Type: models.AssignmentExam, MaxPoints: 100},
		{ID: "ec", Name: "Extra Credit", Type: models.AssignmentExtraCredit, MaxPoints: 20},
	}
}

// Ledger is the ordered assignment list of a course.
type Ledger []models.Assignment

// Find returns the assignment with id.
func (l Ledger) Find(id string) (models.Assignment, bool) {
	if i := l.Index(id); i >= 0 {
		return l[i], true
	}
	return models.Assignment{}, false
}

// Index returns the position of id, or -1.
func (l Ledger) Index(id string) int {
	for i, a := range l {
		if a.ID == id {
			return i
		}
	}
	return -1
}

// Insert returns a new ledger with a placed according to pos. Before and after
// fall back to appending when refID is unknown or empty.
func (l Ledger) Insert(a models.Assignment, pos models.InsertPosition, refID string) Ledger {
	at := len(l)
	switch pos {
	case models.PositionStart:
		at = 0
	case models.PositionBefore, models.PositionAfter:
		if refID == "" {
			break
		}
		if i := l.Index(refID); i >= 0 {
			at = i
			if pos == models.PositionAfter {
				at = i + 1
			}
		}
	}
	out := make(Ledger, 0, len(l)+1)
	out = append(out, l[:at]...)
	out = append(out, a)
	return append(out, l[at:]...)
}

var whitespace = regexp.MustCompile(`\s+`)

// NewAssignmentID derives an id from the name plus a random suffix, retrying
// until it does not clash with any id already in the ledger.
func (l Ledger) NewAssignmentID(name string) string {
	slug := whitespace.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
	if slug == "" {
		slug = "assignment"
	}
	for {
		id := slug + "-" + strings.SplitN(uuid.NewString(), "-", 2)[0]
		if l.Index(id) < 0 {
			return id
		}
	}
}
