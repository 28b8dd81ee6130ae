package models

// Indicator flags a grade that disagrees with the student's GPA.
type Indicator string

const (
	IndicatorNone            Indicator = ""
	IndicatorOverPerforming  Indicator = "over-performing"
	IndicatorUnderPerforming Indicator = "under-performing"
)

// PercentRange is an inclusive percentage interval.
type PercentRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// GradebookRow is one student line of the gradebook table.
type GradebookRow struct {
	Student     Student       `json:"student"`
	Grade       *float64      `json:"grade"`
	LetterGrade string        `json:"letter_grade"`
	Scores      StudentScores `json:"scores"`
}

// Gradebook is the gradebook table of a class.
type Gradebook struct {
	ClassID        string              `json:"class_id"`
	Assignments    []Assignment        `json:"assignments"`
	Rows           []GradebookRow      `json:"rows"`
	ColumnAverages map[string]*float64 `json:"column_averages"`
	OverallAverage *float64            `json:"overall_average"`
}

// ReportEntry is one bar of a student report.
type ReportEntry struct {
	AssignmentID string   `json:"assignment_id"`
	Name         string   `json:"name"`
	Score        Score    `json:"score"`
	MaxPoints    float64  `json:"max_points"`
	Percentage   *float64 `json:"percentage"`
	Color        string   `json:"color"`
}

// StudentReport is the per-assignment breakdown of a single student.
type StudentReport struct {
	Student Student       `json:"student"`
	Grade   *float64      `json:"grade"`
	Entries []ReportEntry `json:"entries"`
}

// SeatCard is the rendered content of an occupied seat.
type SeatCard struct {
	Student       Student      `json:"student"`
	DisplayName   string       `json:"display_name"`
	Grade         *float64     `json:"grade"`
	Color         string       `json:"color"`
	Indicator     Indicator    `json:"indicator,omitempty"`
	ExpectedRange PercentRange `json:"expected_range"`
	CurrentGPA    *float64     `json:"current_gpa"`
	OutOfRange    bool         `json:"out_of_range"`
}

// Seat is one slot of the rendered seating chart; Card is nil for empty slots.
type Seat struct {
	Index int       `json:"index"`
	Card  *SeatCard `json:"card"`
}

// SeatingChart is the rendered grid of a class.
type SeatingChart struct {
	ClassID string    `json:"class_id"`
	Rows    int       `json:"rows"`
	Cols    int       `json:"cols"`
	View    ViewState `json:"view"`
	Seats   []Seat    `json:"seats"`
}
