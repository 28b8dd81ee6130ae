package models

// AssignmentType classifies an assignment for grade computation.
type AssignmentType string

const (
	AssignmentHomework    AssignmentType = "homework"
	AssignmentQuiz        AssignmentType = "quiz"
	AssignmentTest        AssignmentType = "test"
	AssignmentProject     AssignmentType = "project"
	AssignmentExam        AssignmentType = "exam"
	AssignmentExtraCredit AssignmentType = "extra-credit"
)

// AssignmentTypes lists every type in display order.
var AssignmentTypes = []AssignmentType{
	AssignmentHomework,
	AssignmentQuiz,
	AssignmentTest,
	AssignmentProject,
	AssignmentExam,
	AssignmentExtraCredit,
}

// Valid reports whether t is one of the known assignment types.
func (t AssignmentType) Valid() bool {
	for _, known := range AssignmentTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Assignment is one column of the gradebook.
type Assignment struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Type      AssignmentType `json:"type"`
	MaxPoints float64        `json:"max_points"`
}

// IsExtraCredit reports whether the assignment only adds earned points.
func (a Assignment) IsExtraCredit() bool {
	return a.Type == AssignmentExtraCredit
}

// InsertPosition selects where a new assignment goes in the ledger.
type InsertPosition string

const (
	PositionStart  InsertPosition = "start"
	PositionEnd    InsertPosition = "end"
	PositionBefore InsertPosition = "before"
	PositionAfter  InsertPosition = "after"
)
