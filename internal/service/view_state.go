package service

import (
	"context"
	"math"

	"github.com/noah-isme/sma-classroom/internal/dto"
	"github.com/noah-isme/sma-classroom/internal/models"
	appErrors "github.com/noah-isme/sma-classroom/pkg/errors"
)

// View returns the seating chart view state.
func (s *ClassroomService) View() models.ViewState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// SetViewMode switches the coloring mode and resets the range to the mode's full scale.
func (s *ClassroomService) SetViewMode(_ context.Context, req dto.ViewModeRequest) (models.ViewState, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.ViewState{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid view mode")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	mode := models.ViewMode(req.Mode)
	s.view.Mode = mode
	s.view.Range = models.FullRange(mode)
	s.metrics.RecordCommand(CommandSetViewMode)
	return s.view, nil
}

// SetViewRange moves one bound of the range filter within the active scale.
// Moving a bound past the other drags the other bound along so min <= max holds.
func (s *ClassroomService) SetViewRange(_ context.Context, req dto.ViewRangeRequest) (models.ViewState, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.ViewState{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid range payload")
	}
	if math.IsNaN(*req.Value) {
		return models.ViewState{}, appErrors.Clone(appErrors.ErrValidation, "range value must be a number")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	full := models.FullRange(s.view.Mode)
	v := math.Max(full.Min, math.Min(full.Max, *req.Value))
	r := s.view.Range
	if req.Bound == "min" {
		r.Min = v
		if r.Max < v {
			r.Max = v
		}
	} else {
		r.Max = v
		if r.Min > v {
			r.Min = v
		}
	}
	s.view.Range = r
	s.metrics.RecordCommand(CommandSetViewRange)
	return s.view, nil
}

// SetAnonymized toggles anonymized seat names.
func (s *ClassroomService) SetAnonymized(_ context.Context, req dto.AnonymizeRequest) (models.ViewState, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.ViewState{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid anonymize payload")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.view.Anonymized = *req.Anonymized
	s.metrics.RecordCommand(CommandSetAnonymized)
	return s.view, nil
}
