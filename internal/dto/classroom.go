package dto

// InsertAssignmentRequest adds a column to the ledger.
type InsertAssignmentRequest struct {
	Name      string  `json:"name" validate:"required"`
	Type      string  `json:"type" validate:"required,oneof=homework quiz test project exam extra-credit"`
	MaxPoints float64 `json:"max_points" validate:"gt=0"`
	Position  string  `json:"position" validate:"omitempty,oneof=start end before after"`
	RefID     string  `json:"ref_id"`
}

// SetScoreRequest edits one cell of the gradebook. A null score clears it.
type SetScoreRequest struct {
	StudentID    int      `json:"student_id" validate:"required,gt=0"`
	AssignmentID string   `json:"assignment_id" validate:"required"`
	Score        *float64 `json:"score"`
}

// SwapSeatsRequest exchanges the occupants of two slots.
type SwapSeatsRequest struct {
	From *int `json:"from" validate:"required,min=0,max=29"`
	To   *int `json:"to" validate:"required,min=0,max=29"`
}

// SeatingQuery overrides the stored view state for one seating chart read.
type SeatingQuery struct {
	Mode       string `form:"mode" validate:"omitempty,oneof=grade gpa"`
	Anonymized *bool  `form:"anonymized"`
}

// GradebookQuery selects the gradebook sort order.
type GradebookQuery struct {
	Sort      string `form:"sort"`
	Direction string `form:"direction" validate:"omitempty,oneof=asc desc"`
}

// ViewModeRequest switches between grade and GPA coloring.
type ViewModeRequest struct {
	Mode string `json:"mode" validate:"required,oneof=grade gpa"`
}

// ViewRangeRequest moves one bound of the range filter.
type ViewRangeRequest struct {
	Bound string   `json:"bound" validate:"required,oneof=min max"`
	Value *float64 `json:"value" validate:"required"`
}

// AnonymizeRequest toggles anonymized seat names.
type AnonymizeRequest struct {
	Anonymized *bool `json:"anonymized" validate:"required"`
}

// ExportRequest selects the classes to export; empty means every class.
type ExportRequest struct {
	ClassIDs []string `json:"class_ids" validate:"omitempty,dive,required"`
}
