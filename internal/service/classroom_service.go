package service

import (
	"context"
	"math"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-classroom/internal/dto"
	"github.com/noah-isme/sma-classroom/internal/grading"
	"github.com/noah-isme/sma-classroom/internal/models"
	"github.com/noah-isme/sma-classroom/internal/repository"
	"github.com/noah-isme/sma-classroom/internal/roster"
	appErrors "github.com/noah-isme/sma-classroom/pkg/errors"
)

// Command names used as metric labels.
const (
	CommandSetScore         = "set_score"
	CommandInsertAssignment = "insert_assignment"
	CommandSwapSeats        = "swap_seats"
	CommandSetViewMode      = "set_view_mode"
	CommandSetViewRange     = "set_view_range"
	CommandSetAnonymized    = "set_anonymized"
	CommandPopulateScores   = "populate_scores"
	CommandClearScores      = "clear_scores"
)

type stateStore interface {
	LoadScores(ctx context.Context) models.ScoreBook
	SaveScores(ctx context.Context, book models.ScoreBook) error
	LoadLedger(ctx context.Context) ([]models.Assignment, bool)
	SaveLedger(ctx context.Context, ledger []models.Assignment) error
	LoadSeating(ctx context.Context, classID string) (models.SeatingLayout, bool)
	SaveSeating(ctx context.Context, classID string, layout models.SeatingLayout) error
}

type commandRecorder interface {
	RecordCommand(command string)
	RecordStorageWriteFailure(keyKind string)
}

type noopRecorder struct{}

func (noopRecorder) RecordCommand(string)             {}
func (noopRecorder) RecordStorageWriteFailure(string) {}

// ClassroomConfig tunes the classroom controller.
type ClassroomConfig struct {
	DemoEnabled bool
	// Rand drives score population; seeded from the clock when nil.
	Rand *rand.Rand
}

// ClassroomService owns the application state: scores, the assignment ledger,
// seating layouts and the chart view. Commands are serialized by one mutex and
// every read recomputes derived values from the current state.
type ClassroomService struct {
	mu        sync.Mutex
	roster    *roster.Roster
	state     stateStore
	metrics   commandRecorder
	validator *validator.Validate
	logger    *zap.Logger
	cfg       ClassroomConfig
	rng       *rand.Rand

	scores  models.ScoreBook
	ledger  grading.Ledger
	seating map[string]models.SeatingLayout
	view    models.ViewState
}

// NewClassroomService loads persisted scores and ledger and returns a ready controller.
func NewClassroomService(ctx context.Context, students *roster.Roster, state stateStore, cfg ClassroomConfig, metrics commandRecorder, validate *validator.Validate, logger *zap.Logger) *ClassroomService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = noopRecorder{}
	}
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	ledger, ok := state.LoadLedger(ctx)
	if !ok {
		ledger = grading.DefaultLedger()
	}

	return &ClassroomService{
		roster:    students,
		state:     state,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		cfg:       cfg,
		rng:       rng,
		scores:    state.LoadScores(ctx),
		ledger:    ledger,
		seating:   make(map[string]models.SeatingLayout),
		view:      models.ViewState{Mode: models.ViewGrade, Range: models.FullRange(models.ViewGrade)},
	}
}

// Classes lists the class catalogue.
func (s *ClassroomService) Classes() []models.Class {
	return s.roster.Classes()
}

// Ledger returns the current assignment ledger in display order.
func (s *ClassroomService) Ledger() []models.Assignment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Assignment(nil), s.ledger...)
}

// InsertAssignment adds an assignment at the requested position. Before and
// after fall back to appending when the reference is unknown.
func (s *ClassroomService) InsertAssignment(ctx context.Context, req dto.InsertAssignmentRequest) (*models.Assignment, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid assignment payload")
	}
	position := models.InsertPosition(req.Position)
	if position == "" {
		position = models.PositionEnd
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	assignment := models.Assignment{
		ID:        s.ledger.NewAssignmentID(req.Name),
		Name:      req.Name,
		Type:      models.AssignmentType(req.Type),
		MaxPoints: req.MaxPoints,
	}
	s.ledger = s.ledger.Insert(assignment, position, req.RefID)
	s.persist(repository.KeyKindLedger, func() error {
		return s.state.SaveLedger(ctx, s.ledger)
	})
	s.metrics.RecordCommand(CommandInsertAssignment)
	s.logger.Info("assignment inserted",
		zap.String("assignment_id", assignment.ID),
		zap.String("position", string(position)),
		zap.String("ref_id", req.RefID))
	return &assignment, nil
}

// SetScore records one score. Values are clamped into [0, max points]; a nil
// score marks the cell as not graded.
func (s *ClassroomService) SetScore(ctx context.Context, classID string, req dto.SetScoreRequest) (*models.ScoreUpdate, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid score payload")
	}
	if _, err := s.class(classID); err != nil {
		return nil, err
	}
	student, ok := s.roster.Student(classID, req.StudentID)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	assignment, ok := s.ledger.Find(req.AssignmentID)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "assignment not found")
	}
	score := models.Ungraded
	if req.Score != nil {
		score = grading.ClampScore(models.Points(*req.Score), assignment.MaxPoints)
	}
	s.scores.Set(classID, student.ID, assignment.ID, score)
	s.persist(repository.KeyKindGrades, func() error {
		return s.state.SaveScores(ctx, s.scores)
	})
	s.metrics.RecordCommand(CommandSetScore)

	grade := grading.ComputeGrade(s.scores.Student(classID, student.ID), s.ledger)
	return &models.ScoreUpdate{
		ClassID:      classID,
		StudentID:    student.ID,
		AssignmentID: assignment.ID,
		Score:        score,
		Grade:        grade,
		LetterGrade:  grading.Classify(grade),
	}, nil
}

// PopulateScores replaces every score of every class with random demo data.
func (s *ClassroomService) PopulateScores(ctx context.Context) error {
	if !s.cfg.DemoEnabled {
		return appErrors.Clone(appErrors.ErrForbidden, "demo tools are disabled")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	book := make(models.ScoreBook)
	for _, class := range s.roster.Classes() {
		for _, student := range s.roster.Students(class.ID) {
			target := 0.6 + s.rng.Float64()*0.4
			for _, a := range s.ledger {
				variance := (s.rng.Float64() - 0.5) * 0.4
				pct := math.Max(0, math.Min(1, target+variance))
				book.Set(class.ID, student.ID, a.ID, models.Points(math.Round(pct*a.MaxPoints)))
			}
		}
	}
	s.scores = book
	s.persist(repository.KeyKindGrades, func() error {
		return s.state.SaveScores(ctx, s.scores)
	})
	s.metrics.RecordCommand(CommandPopulateScores)
	s.logger.Info("scores populated with demo data")
	return nil
}

// ClearScores removes every recorded score.
func (s *ClassroomService) ClearScores(ctx context.Context) error {
	if !s.cfg.DemoEnabled {
		return appErrors.Clone(appErrors.ErrForbidden, "demo tools are disabled")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.scores = make(models.ScoreBook)
	s.persist(repository.KeyKindGrades, func() error {
		return s.state.SaveScores(ctx, s.scores)
	})
	s.metrics.RecordCommand(CommandClearScores)
	s.logger.Info("scores cleared")
	return nil
}

func (s *ClassroomService) class(classID string) (models.Class, error) {
	class, ok := s.roster.Class(classID)
	if !ok {
		return models.Class{}, appErrors.Clone(appErrors.ErrNotFound, "class not found")
	}
	return class, nil
}

// gradedStudents pairs the class roster with grades derived from the current state. Callers hold mu.
func (s *ClassroomService) gradedStudents(classID string) []models.GradedStudent {
	students := s.roster.Students(classID)
	out := make([]models.GradedStudent, 0, len(students))
	for _, st := range students {
		out = append(out, models.GradedStudent{
			Student: st,
			Grade:   grading.ComputeGrade(s.scores.Student(classID, st.ID), s.ledger),
		})
	}
	return out
}

// persist runs a best-effort write; failures are logged and counted, never returned.
func (s *ClassroomService) persist(keyKind string, write func() error) {
	if err := write(); err != nil {
		s.logger.Warn("failed to persist classroom state", zap.String("key_kind", keyKind), zap.Error(err))
		s.metrics.RecordStorageWriteFailure(keyKind)
	}
}
