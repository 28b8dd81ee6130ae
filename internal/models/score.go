package models

import (
	"bytes"
	"encoding/json"
)

// Score is a recorded number of points or an explicit "not graded" marker.
// The zero value is not graded, which keeps a score of 0 distinct from absence.
type Score struct {
	Value  float64
	Graded bool
}

// Points returns a graded score.
func Points(v float64) Score {
	return Score{Value: v, Graded: true}
}

// Ungraded is the explicit absent score.
var Ungraded = Score{}

// MarshalJSON encodes absent scores as null.
func (s Score) MarshalJSON() ([]byte, error) {
	if !s.Graded {
		return []byte("null"), nil
	}
	return json.Marshal(s.Value)
}

// UnmarshalJSON accepts a number or null.
func (s *Score) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*s = Ungraded
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*s = Points(v)
	return nil
}

// StudentScores maps assignment id to score.
type StudentScores map[string]Score

// ClassScores maps student id to that student's scores.
type ClassScores map[int]StudentScores

// ScoreBook maps class id to the class's scores.
type ScoreBook map[string]ClassScores

// Student returns the scores of one student; the result may be nil and must not be mutated.
func (b ScoreBook) Student(classID string, studentID int) StudentScores {
	return b[classID][studentID]
}

// Get returns a single score, Ungraded when nothing is recorded.
func (b ScoreBook) Get(classID string, studentID int, assignmentID string) Score {
	return b[classID][studentID][assignmentID]
}

// Set records a score, creating intermediate maps as needed. Ungraded values are
// kept as explicit entries so they round-trip as null.
func (b ScoreBook) Set(classID string, studentID int, assignmentID string, score Score) {
	class, ok := b[classID]
	if !ok {
		class = make(ClassScores)
		b[classID] = class
	}
	student, ok := class[studentID]
	if !ok {
		student = make(StudentScores)
		class[studentID] = student
	}
	student[assignmentID] = score
}

// ScoreUpdate reports a committed score edit and the student's resulting grade.
type ScoreUpdate struct {
	ClassID      string   `json:"class_id"`
	StudentID    int      `json:"student_id"`
	AssignmentID string   `json:"assignment_id"`
	Score        Score    `json:"score"`
	Grade        *float64 `json:"grade"`
	LetterGrade  string   `json:"letter_grade"`
}
