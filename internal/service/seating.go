package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-classroom/internal/dto"
	"github.com/noah-isme/sma-classroom/internal/grading"
	"github.com/noah-isme/sma-classroom/internal/models"
	"github.com/noah-isme/sma-classroom/internal/repository"
	appErrors "github.com/noah-isme/sma-classroom/pkg/errors"
)

// SeatingChart renders the grid of a class. The query may override the view
// mode and anonymization for this read only; a different mode uses its full range.
func (s *ClassroomService) SeatingChart(ctx context.Context, classID string, q dto.SeatingQuery) (*models.SeatingChart, error) {
	if err := s.validator.Struct(q); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid seating query")
	}
	if _, err := s.class(classID); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	view := s.view
	if mode := models.ViewMode(q.Mode); mode != "" && mode != view.Mode {
		view.Mode = mode
		view.Range = models.FullRange(mode)
	}
	if q.Anonymized != nil {
		view.Anonymized = *q.Anonymized
	}
	return s.buildChart(classID, s.layout(ctx, classID), view), nil
}

// SwapSeats exchanges two slots, either of which may be empty.
func (s *ClassroomService) SwapSeats(ctx context.Context, classID string, req dto.SwapSeatsRequest) (*models.SeatingChart, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid swap payload")
	}
	if _, err := s.class(classID); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	layout := s.layout(ctx, classID).Clone()
	if err := layout.Swap(*req.From, *req.To); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid seat index")
	}
	if *req.From != *req.To {
		s.seating[classID] = layout
		s.persist(repository.KeyKindSeating, func() error {
			return s.state.SaveSeating(ctx, classID, layout)
		})
	}
	s.metrics.RecordCommand(CommandSwapSeats)
	return s.buildChart(classID, layout, s.view), nil
}

// layout returns the cached layout of a class, loading it on first use. Callers hold mu.
func (s *ClassroomService) layout(ctx context.Context, classID string) models.SeatingLayout {
	if layout, ok := s.seating[classID]; ok {
		return layout
	}
	students := s.roster.Students(classID)
	var layout models.SeatingLayout
	if stored, ok := s.state.LoadSeating(ctx, classID); ok {
		layout = normalizeLayout(stored, students)
	} else {
		layout = defaultLayout(students)
	}
	s.seating[classID] = layout
	s.logger.Debug("seating layout loaded", zap.String("class_id", classID))
	return layout
}

// defaultLayout seats the roster in order from slot 0.
func defaultLayout(students []models.Student) models.SeatingLayout {
	layout := models.NewSeatingLayout()
	for i, st := range students {
		if i >= len(layout) {
			break
		}
		layout[i] = st.ID
	}
	return layout
}

// normalizeLayout fits a stored layout to the grid: ids missing from the roster
// become empty and only the first slot of a repeated id is kept.
func normalizeLayout(stored models.SeatingLayout, students []models.Student) models.SeatingLayout {
	known := make(map[int]bool, len(students))
	for _, st := range students {
		known[st.ID] = true
	}
	layout := models.NewSeatingLayout()
	seated := make(map[int]bool, len(stored))
	for i, id := range stored {
		if i >= len(layout) {
			break
		}
		if id == 0 || !known[id] || seated[id] {
			continue
		}
		layout[i] = id
		seated[id] = true
	}
	return layout
}

func (s *ClassroomService) buildChart(classID string, layout models.SeatingLayout, view models.ViewState) *models.SeatingChart {
	byID := make(map[int]models.GradedStudent)
	for _, st := range s.gradedStudents(classID) {
		byID[st.ID] = st
	}
	seats := make([]models.Seat, len(layout))
	for i, id := range layout {
		seats[i] = models.Seat{Index: i}
		if st, ok := byID[id]; ok && id != 0 {
			seats[i].Card = seatCard(st, view)
		}
	}
	return &models.SeatingChart{
		ClassID: classID,
		Rows:    models.GridRows,
		Cols:    models.GridCols,
		View:    view,
		Seats:   seats,
	}
}

func seatCard(st models.GradedStudent, view models.ViewState) *models.SeatCard {
	card := &models.SeatCard{
		Student:       st.Student,
		DisplayName:   st.Name,
		Grade:         st.Grade,
		Indicator:     grading.Discrepancy(st.Grade, st.GPA),
		ExpectedRange: grading.ExpectedRange(st.GPA),
	}
	if view.Anonymized {
		card.DisplayName = st.AnonymizedName()
	}
	if st.Grade != nil {
		gpa := grading.GPAForGrade(*st.Grade)
		card.CurrentGPA = &gpa
	}

	value := st.Grade
	if view.Mode == models.ViewGPA {
		gpa := st.GPA
		value = &gpa
		card.Color = grading.GPAColor(st.GPA)
	} else {
		card.Color = grading.GradeColorPtr(st.Grade)
	}
	card.OutOfRange = value != nil && !view.Range.Contains(*value)
	return card
}
