package service

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-classroom/internal/dto"
	"github.com/noah-isme/sma-classroom/internal/grading"
	"github.com/noah-isme/sma-classroom/internal/models"
	"github.com/noah-isme/sma-classroom/internal/repository"
	"github.com/noah-isme/sma-classroom/internal/roster"
	appErrors "github.com/noah-isme/sma-classroom/pkg/errors"
)

const testClass = "ITS-011a"

type recorderStub struct {
	mu       sync.Mutex
	commands []string
	failures []string
}

func (r *recorderStub) RecordCommand(command string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands = append(r.commands, command)
}

func (r *recorderStub) RecordStorageWriteFailure(keyKind string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures = append(r.failures, keyKind)
}

type failingStore struct{}

func (failingStore) Get(context.Context, string) ([]byte, error) {
	return nil, appErrors.ErrStorageMiss
}

func (failingStore) Set(context.Context, string, []byte) error {
	return errors.New("disk full")
}

func (failingStore) Delete(context.Context, string) error {
	return errors.New("disk full")
}

type classroomFixture struct {
	svc     *ClassroomService
	store   repository.KeyValueStore
	state   *repository.StateRepository
	metrics *recorderStub
	roster  *roster.Roster
}

func newClassroomFixture(t *testing.T, demo bool) *classroomFixture {
	t.Helper()
	return newClassroomFixtureWithStore(t, repository.NewMemoryStore(), demo)
}

func newClassroomFixtureWithStore(t *testing.T, store repository.KeyValueStore, demo bool) *classroomFixture {
	t.Helper()
	students := roster.Generate(2024, 4)
	state := repository.NewStateRepository(store, zap.NewNop())
	metrics := &recorderStub{}
	cfg := ClassroomConfig{DemoEnabled: demo, Rand: rand.New(rand.NewSource(1))}
	svc := NewClassroomService(context.Background(), students, state, cfg, metrics, nil, zap.NewNop())
	return &classroomFixture{svc: svc, store: store, state: state, metrics: metrics, roster: students}
}

func (f *classroomFixture) reload(t *testing.T) *ClassroomService {
	t.Helper()
	return NewClassroomService(context.Background(), f.roster, f.state, ClassroomConfig{}, nil, nil, nil)
}

func score(v float64) *float64 {
	return &v
}

func intPtr(v int) *int {
	return &v
}

func boolPtr(v bool) *bool {
	return &v
}

func requireCode(t *testing.T, err error, want *appErrors.Error) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, want.Code, appErrors.FromError(err).Code)
}

func TestNewClassroomServiceDefaults(t *testing.T) {
	f := newClassroomFixture(t, false)
	assert.Equal(t, grading.DefaultLedger(), f.svc.Ledger())
	assert.Equal(t, models.ViewState{Mode: models.ViewGrade, Range: models.GradeRange{Min: 0, Max: 100}}, f.svc.View())
	assert.Len(t, f.svc.Classes(), 6)
}

func TestSetScoreClampsAndComputesGrade(t *testing.T) {
	ctx := context.Background()
	f := newClassroomFixture(t, false)

	update, err := f.svc.SetScore(ctx, testClass, dto.SetScoreRequest{StudentID: 1, AssignmentID: "hw1", Score: score(12)})
	require.NoError(t, err)
	assert.Equal(t, models.Points(10), update.Score)
	require.NotNil(t, update.Grade)
	assert.Equal(t, 100.0, *update.Grade)
	assert.Equal(t, "A+", update.LetterGrade)

	update, err = f.svc.SetScore(ctx, testClass, dto.SetScoreRequest{StudentID: 1, AssignmentID: "hw1", Score: score(-3)})
	require.NoError(t, err)
	assert.Equal(t, models.Points(0), update.Score)
	require.NotNil(t, update.Grade)
	assert.Equal(t, 0.0, *update.Grade)

	update, err = f.svc.SetScore(ctx, testClass, dto.SetScoreRequest{StudentID: 1, AssignmentID: "hw1"})
	require.NoError(t, err)
	assert.Equal(t, models.Ungraded, update.Score)
	assert.Nil(t, update.Grade)
	assert.Equal(t, "N/A", update.LetterGrade)

	_, err = f.svc.SetScore(ctx, testClass, dto.SetScoreRequest{StudentID: 2, AssignmentID: "q1", Score: score(20)})
	require.NoError(t, err)
	persisted := f.state.LoadScores(ctx)
	assert.Equal(t, models.Points(20), persisted.Get(testClass, 2, "q1"))
	assert.Equal(t, models.Ungraded, persisted.Get(testClass, 1, "hw1"))
	assert.Contains(t, f.metrics.commands, CommandSetScore)
}

func TestSetScoreRejectsUnknownReferences(t *testing.T) {
	ctx := context.Background()
	f := newClassroomFixture(t, false)

	_, err := f.svc.SetScore(ctx, "NOPE-1", dto.SetScoreRequest{StudentID: 1, AssignmentID: "hw1"})
	requireCode(t, err, appErrors.ErrNotFound)

	// student 5 belongs to the second class
	_, err = f.svc.SetScore(ctx, testClass, dto.SetScoreRequest{StudentID: 5, AssignmentID: "hw1"})
	requireCode(t, err, appErrors.ErrNotFound)

	_, err = f.svc.SetScore(ctx, testClass, dto.SetScoreRequest{StudentID: 1, AssignmentID: "missing"})
	requireCode(t, err, appErrors.ErrNotFound)

	_, err = f.svc.SetScore(ctx, testClass, dto.SetScoreRequest{StudentID: 0, AssignmentID: "hw1"})
	requireCode(t, err, appErrors.ErrValidation)

	_, err = f.svc.SetScore(ctx, testClass, dto.SetScoreRequest{StudentID: 1})
	requireCode(t, err, appErrors.ErrValidation)
}

func TestInsertAssignment(t *testing.T) {
	ctx := context.Background()
	f := newClassroomFixture(t, false)

	a, err := f.svc.InsertAssignment(ctx, dto.InsertAssignmentRequest{Name: " Lab 1 ", Type: "project", MaxPoints: 30, Position: "before", RefID: "q1"})
	require.NoError(t, err)
	assert.Equal(t, "Lab 1", a.Name)
	assert.Contains(t, a.ID, "lab-1-")

	ledger := grading.Ledger(f.svc.Ledger())
	assert.Equal(t, ledger.Index("q1")-1, ledger.Index(a.ID))

	b, err := f.svc.InsertAssignment(ctx, dto.InsertAssignmentRequest{Name: "Lab 1", Type: "project", MaxPoints: 30, Position: "after", RefID: "gone"})
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
	ledger = grading.Ledger(f.svc.Ledger())
	assert.Equal(t, len(ledger)-1, ledger.Index(b.ID))

	c, err := f.svc.InsertAssignment(ctx, dto.InsertAssignmentRequest{Name: "Warmup", Type: "quiz", MaxPoints: 5, Position: "start"})
	require.NoError(t, err)
	assert.Equal(t, c.ID, f.svc.Ledger()[0].ID)

	assert.Equal(t, f.svc.Ledger(), f.reload(t).Ledger())
}

func TestInsertAssignmentValidation(t *testing.T) {
	ctx := context.Background()
	f := newClassroomFixture(t, false)
	cases := []dto.InsertAssignmentRequest{
		{Name: "   ", Type: "quiz", MaxPoints: 5},
		{Name: "Quiz 9", Type: "quiz", MaxPoints: 0},
		{Name: "Quiz 9", Type: "quiz", MaxPoints: -1},
		{Name: "Quiz 9", Type: "essay", MaxPoints: 5},
		{Name: "Quiz 9", Type: "quiz", MaxPoints: 5, Position: "middle"},
	}
	for _, req := range cases {
		_, err := f.svc.InsertAssignment(ctx, req)
		requireCode(t, err, appErrors.ErrValidation)
	}
	assert.Len(t, f.svc.Ledger(), 16)
}

func TestPersistenceFailuresAreNotPropagated(t *testing.T) {
	ctx := context.Background()
	f := newClassroomFixtureWithStore(t, failingStore{}, false)

	_, err := f.svc.SetScore(ctx, testClass, dto.SetScoreRequest{StudentID: 1, AssignmentID: "hw1", Score: score(7)})
	require.NoError(t, err)
	_, err = f.svc.SwapSeats(ctx, testClass, dto.SwapSeatsRequest{From: intPtr(0), To: intPtr(1)})
	require.NoError(t, err)
	_, err = f.svc.InsertAssignment(ctx, dto.InsertAssignmentRequest{Name: "Lab", Type: "project", MaxPoints: 10})
	require.NoError(t, err)

	assert.Equal(t, []string{repository.KeyKindGrades, repository.KeyKindSeating, repository.KeyKindLedger}, f.metrics.failures)
	assert.Equal(t, models.Points(7), f.svc.scores.Get(testClass, 1, "hw1"))
}

func TestPopulateAndClearScores(t *testing.T) {
	ctx := context.Background()

	disabled := newClassroomFixture(t, false)
	requireCode(t, disabled.svc.PopulateScores(ctx), appErrors.ErrForbidden)
	requireCode(t, disabled.svc.ClearScores(ctx), appErrors.ErrForbidden)

	f := newClassroomFixture(t, true)
	require.NoError(t, f.svc.PopulateScores(ctx))
	for _, class := range f.roster.Classes() {
		for _, st := range f.roster.Students(class.ID) {
			for _, a := range f.svc.Ledger() {
				s := f.svc.scores.Get(class.ID, st.ID, a.ID)
				require.True(t, s.Graded)
				assert.GreaterOrEqual(t, s.Value, 0.0)
				assert.LessOrEqual(t, s.Value, a.MaxPoints)
				assert.Equal(t, float64(int(s.Value)), s.Value)
			}
		}
	}
	assert.Len(t, f.state.LoadScores(ctx), 6)

	require.NoError(t, f.svc.ClearScores(ctx))
	students, err := f.svc.Students(ctx, testClass)
	require.NoError(t, err)
	for _, st := range students {
		assert.Nil(t, st.Grade)
	}
	assert.Empty(t, f.state.LoadScores(ctx))
	assert.Equal(t, []string{CommandPopulateScores, CommandClearScores}, f.metrics.commands)
}
