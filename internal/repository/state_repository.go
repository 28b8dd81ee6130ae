package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-classroom/internal/models"
	appErrors "github.com/noah-isme/sma-classroom/pkg/errors"
)

// Persisted keys.
const (
	KeyGrades        = "allStudentGrades"
	KeyLedger        = "assignmentLedger"
	seatingKeyPrefix = "seatingChart-"
)

// Key kinds used as metric labels.
const (
	KeyKindGrades  = "grades"
	KeyKindLedger  = "ledger"
	KeyKindSeating = "seating"
)

// SeatingKey is the storage key of a class's seating layout.
func SeatingKey(classID string) string {
	return seatingKeyPrefix + classID
}

// StateRepository encodes classroom state onto a KeyValueStore. Loads never
// fail: missing or malformed payloads are reported as absent and logged.
type StateRepository struct {
	store  KeyValueStore
	logger *zap.Logger
}

// NewStateRepository constructs the repository.
func NewStateRepository(store KeyValueStore, logger *zap.Logger) *StateRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StateRepository{store: store, logger: logger}
}

// LoadScores reads the score book. Top-level payloads that are not a JSON object
// are skipped entirely; inside an object, classes that are not objects and
// student keys that are not integers are dropped.
func (r *StateRepository) LoadScores(ctx context.Context) models.ScoreBook {
	book := make(models.ScoreBook)
	raw, ok := r.read(ctx, KeyGrades)
	if !ok {
		return book
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		r.logger.Warn("skipping malformed or legacy grades payload", zap.String("key", KeyGrades))
		return book
	}
	var classes map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &classes); err != nil {
		r.logger.Warn("failed to parse grades payload", zap.String("key", KeyGrades), zap.Error(err))
		return book
	}

	for classID, classRaw := range classes {
		students, ok := decodeObject(classRaw)
		if !ok {
			r.logger.Warn("skipping malformed class grades", zap.String("class_id", classID))
			continue
		}
		book[classID] = make(models.ClassScores, len(students))
		for studentKey, studentRaw := range students {
			studentID, err := strconv.Atoi(strings.TrimSpace(studentKey))
			if err != nil {
				r.logger.Debug("skipping non-numeric student key", zap.String("class_id", classID), zap.String("student_key", studentKey))
				continue
			}
			scores, ok := decodeObject(studentRaw)
			if !ok {
				continue
			}
			for assignmentID, scoreRaw := range scores {
				var score models.Score
				if err := json.Unmarshal(scoreRaw, &score); err != nil {
					r.logger.Debug("skipping non-numeric score",
						zap.String("class_id", classID),
						zap.Int("student_id", studentID),
						zap.String("assignment_id", assignmentID))
					continue
				}
				book.Set(classID, studentID, assignmentID, score)
			}
		}
	}
	return book
}

// SaveScores writes the score book.
func (r *StateRepository) SaveScores(ctx context.Context, book models.ScoreBook) error {
	return r.write(ctx, KeyGrades, book)
}

// LoadLedger reads the assignment ledger. The boolean is false when nothing
// usable was stored, including an empty list or a list with invalid entries.
func (r *StateRepository) LoadLedger(ctx context.Context) ([]models.Assignment, bool) {
	raw, ok := r.read(ctx, KeyLedger)
	if !ok {
		return nil, false
	}
	var ledger []models.Assignment
	if err := json.Unmarshal(raw, &ledger); err != nil {
		r.logger.Warn("failed to parse assignment ledger", zap.String("key", KeyLedger), zap.Error(err))
		return nil, false
	}
	if len(ledger) == 0 {
		return nil, false
	}
	seen := make(map[string]bool, len(ledger))
	for _, a := range ledger {
		if a.ID == "" || seen[a.ID] || !a.Type.Valid() || a.MaxPoints <= 0 {
			r.logger.Warn("discarding invalid assignment ledger", zap.String("assignment_id", a.ID))
			return nil, false
		}
		seen[a.ID] = true
	}
	return ledger, true
}

// SaveLedger writes the assignment ledger.
func (r *StateRepository) SaveLedger(ctx context.Context, ledger []models.Assignment) error {
	return r.write(ctx, KeyLedger, ledger)
}

// LoadSeating reads the raw stored layout of a class. The ids are not checked
// against any roster here.
func (r *StateRepository) LoadSeating(ctx context.Context, classID string) (models.SeatingLayout, bool) {
	key := SeatingKey(classID)
	raw, ok := r.read(ctx, key)
	if !ok {
		return nil, false
	}
	var layout models.SeatingLayout
	if err := json.Unmarshal(raw, &layout); err != nil {
		r.logger.Warn("failed to parse seating chart", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return layout, true
}

// SaveSeating writes the layout of a class.
func (r *StateRepository) SaveSeating(ctx context.Context, classID string, layout models.SeatingLayout) error {
	return r.write(ctx, SeatingKey(classID), layout)
}

func (r *StateRepository) read(ctx context.Context, key string) ([]byte, bool) {
	raw, err := r.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, appErrors.ErrStorageMiss) {
			r.logger.Warn("failed to read persisted state", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	return raw, true
}

func (r *StateRepository) write(ctx context.Context, key string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := r.store.Set(ctx, key, payload); err != nil {
		return fmt.Errorf("store %s: %w", key, err)
	}
	return nil
}

// decodeObject unmarshals raw as a JSON object, rejecting null and non-objects.
func decodeObject(raw json.RawMessage) (map[string]json.RawMessage, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, false
	}
	var out map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &out); err != nil {
		return nil, false
	}
	return out, true
}
