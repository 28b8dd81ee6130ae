package service

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/noah-isme/sma-classroom/internal/dto"
	"github.com/noah-isme/sma-classroom/internal/grading"
	"github.com/noah-isme/sma-classroom/internal/models"
	appErrors "github.com/noah-isme/sma-classroom/pkg/errors"
	"github.com/noah-isme/sma-classroom/pkg/export"
)

// Gradebook sort keys besides assignment ids.
const (
	SortByName    = "name"
	SortByOverall = "overall"
)

// DistributionTargetOverall selects the overall grade in Distribution.
const DistributionTargetOverall = "overall"

// DistributionView is a letter distribution with its pie chart geometry.
type DistributionView struct {
	ClassID      string               `json:"class_id"`
	Target       string               `json:"target"`
	Title        string               `json:"title"`
	Distribution grading.Distribution `json:"distribution"`
	Slices       []grading.PieSlice   `json:"slices"`
}

// Students lists a class roster with derived grades.
func (s *ClassroomService) Students(_ context.Context, classID string) ([]models.GradedStudent, error) {
	if _, err := s.class(classID); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gradedStudents(classID), nil
}

// Gradebook renders the gradebook table of a class. Absent values sort as -1 and
// ties are broken by name, then id, regardless of direction.
func (s *ClassroomService) Gradebook(_ context.Context, classID string, q dto.GradebookQuery) (*models.Gradebook, error) {
	if err := s.validator.Struct(q); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid gradebook query")
	}
	if _, err := s.class(classID); err != nil {
		return nil, err
	}
	key := q.Sort
	if key == "" {
		key = SortByName
	}
	desc := q.Direction == "desc"

	s.mu.Lock()
	defer s.mu.Unlock()

	if key != SortByName && key != SortByOverall && s.ledger.Index(key) < 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown sort key")
	}

	students := s.gradedStudents(classID)
	rows := make([]models.GradebookRow, 0, len(students))
	grades := make([]*float64, 0, len(students))
	plain := make([]models.Student, 0, len(students))
	for _, st := range students {
		scores := make(models.StudentScores)
		for id, score := range s.scores.Student(classID, st.ID) {
			if s.ledger.Index(id) >= 0 {
				scores[id] = score
			}
		}
		rows = append(rows, models.GradebookRow{
			Student:     st.Student,
			Grade:       st.Grade,
			LetterGrade: grading.Classify(st.Grade),
			Scores:      scores,
		})
		grades = append(grades, st.Grade)
		plain = append(plain, st.Student)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if c := compareRows(rows[i], rows[j], key); c != 0 {
			if desc {
				return c > 0
			}
			return c < 0
		}
		if c := strings.Compare(rows[i].Student.Name, rows[j].Student.Name); c != 0 {
			return c < 0
		}
		return rows[i].Student.ID < rows[j].Student.ID
	})

	averages := make(map[string]*float64, len(s.ledger))
	classScores := s.scores[classID]
	for _, a := range s.ledger {
		averages[a.ID] = grading.ColumnAverage(a, classScores, plain)
	}

	return &models.Gradebook{
		ClassID:        classID,
		Assignments:    append([]models.Assignment(nil), s.ledger...),
		Rows:           rows,
		ColumnAverages: averages,
		OverallAverage: grading.OverallAverage(grades),
	}, nil
}

func compareRows(a, b models.GradebookRow, key string) int {
	if key == SortByName {
		return strings.Compare(a.Student.Name, b.Student.Name)
	}
	av, bv := sortValue(a, key), sortValue(b, key)
	switch {
	case av < bv:
		return -1
	case av > bv:
		return 1
	default:
		return 0
	}
}

func sortValue(row models.GradebookRow, key string) float64 {
	if key == SortByOverall {
		if row.Grade == nil {
			return -1
		}
		return *row.Grade
	}
	score := row.Scores[key]
	if !score.Graded {
		return -1
	}
	return score.Value
}

// StudentReport breaks one student's grade down per assignment.
func (s *ClassroomService) StudentReport(_ context.Context, classID string, studentID int) (*models.StudentReport, error) {
	if _, err := s.class(classID); err != nil {
		return nil, err
	}
	student, ok := s.roster.Student(classID, studentID)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	scores := s.scores.Student(classID, student.ID)
	entries := make([]models.ReportEntry, 0, len(s.ledger))
	for _, a := range s.ledger {
		pct := grading.AssignmentPercentage(scores[a.ID], a)
		entries = append(entries, models.ReportEntry{
			AssignmentID: a.ID,
			Name:         a.Name,
			Score:        scores[a.ID],
			MaxPoints:    a.MaxPoints,
			Percentage:   pct,
			Color:        grading.GradeColorPtr(pct),
		})
	}
	return &models.StudentReport{
		Student: student,
		Grade:   grading.ComputeGrade(scores, s.ledger),
		Entries: entries,
	}, nil
}

// Distribution buckets the class by letter grade, either on the overall grade
// or on the percentage of one assignment.
func (s *ClassroomService) Distribution(_ context.Context, classID, target string) (*DistributionView, error) {
	if _, err := s.class(classID); err != nil {
		return nil, err
	}
	if target == "" {
		target = DistributionTargetOverall
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	students := s.gradedStudents(classID)
	percentages := make([]*float64, 0, len(students))
	var title string
	if target == DistributionTargetOverall {
		title = "Overall Grade Distribution"
		for _, st := range students {
			percentages = append(percentages, st.Grade)
		}
	} else {
		a, ok := s.ledger.Find(target)
		if !ok {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "assignment not found")
		}
		title = "Grade Distribution: " + a.Name
		for _, st := range students {
			percentages = append(percentages, grading.AssignmentPercentage(s.scores.Get(classID, st.ID, a.ID), a))
		}
	}

	dist := grading.Aggregate(percentages)
	return &DistributionView{
		ClassID:      classID,
		Target:       target,
		Title:        title,
		Distribution: dist,
		Slices:       grading.PieSlices(dist, grading.DefaultPie),
	}, nil
}

// ExportSheet lays out the score matrix of the selected classes, every class
// when none is given. Absent scores are empty cells.
func (s *ClassroomService) ExportSheet(_ context.Context, classIDs []string) (export.Sheet, error) {
	classes := make([]models.Class, 0, len(classIDs))
	if len(classIDs) == 0 {
		classes = s.roster.Classes()
	}
	for _, id := range classIDs {
		class, err := s.class(id)
		if err != nil {
			return export.Sheet{}, err
		}
		classes = append(classes, class)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	headers := make([]string, 0, len(s.ledger)+2)
	headers = append(headers, "Student Name", "Student ID")
	for _, a := range s.ledger {
		headers = append(headers, a.Name)
	}

	sections := make([]export.Section, 0, len(classes))
	for _, class := range classes {
		students := s.roster.Students(class.ID)
		rows := make([][]string, 0, len(students))
		for _, st := range students {
			row := make([]string, 0, len(headers))
			row = append(row, st.Name, st.StudentID)
			for _, a := range s.ledger {
				row = append(row, formatScore(s.scores.Get(class.ID, st.ID, a.ID)))
			}
			rows = append(rows, row)
		}
		sections = append(sections, export.Section{Title: class.Title(), Rows: rows})
	}
	return export.Sheet{Headers: headers, Sections: sections}, nil
}

func formatScore(score models.Score) string {
	if !score.Graded {
		return ""
	}
	return strconv.FormatFloat(score.Value, 'f', -1, 64)
}
