package models

// ViewMode selects which value drives seating chart colors and the range filter.
type ViewMode string

const (
	ViewGrade ViewMode = "grade"
	ViewGPA   ViewMode = "gpa"
)

// Scale bounds of each view mode.
const (
	GradeScaleMin = 0.0
	GradeScaleMax = 100.0
	GPAScaleMin   = 1.5
	GPAScaleMax   = 4.0
)

// GradeRange is an inclusive filter over the active scale. Min never exceeds Max.
type GradeRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// FullRange returns the unfiltered range for a mode.
func FullRange(mode ViewMode) GradeRange {
	if mode == ViewGPA {
		return GradeRange{Min: GPAScaleMin, Max: GPAScaleMax}
	}
	return GradeRange{Min: GradeScaleMin, Max: GradeScaleMax}
}

// Contains reports whether v lies inside the range.
func (r GradeRange) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// ViewState is the seating chart presentation state.
type ViewState struct {
	Mode       ViewMode   `json:"mode"`
	Range      GradeRange `json:"range"`
	Anonymized bool       `json:"anonymized"`
}
