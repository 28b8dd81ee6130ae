package models

import "strings"

// Student is a generated roster entry. GPA is fixed at generation time and
// the percentage grade is never stored here; see GradedStudent.
type Student struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	StudentID string  `json:"student_id"`
	GPA       float64 `json:"gpa"`
}

// AnonymizedName hides the student's name behind the numeric part of the student id.
func (s Student) AnonymizedName() string {
	if _, num, ok := strings.Cut(s.StudentID, "-"); ok {
		return "Student " + num
	}
	return "Student " + s.StudentID
}

// GradedStudent pairs a roster entry with a grade derived from the current scores and ledger.
type GradedStudent struct {
	Student
	Grade *float64 `json:"grade"`
}
