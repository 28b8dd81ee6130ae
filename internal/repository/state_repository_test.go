package repository

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/noah-isme/sma-classroom/internal/models"
)

func newStateRepo(t *testing.T) (*StateRepository, *MemoryStore, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	store := NewMemoryStore()
	return NewStateRepository(store, zap.New(core)), store, logs
}

func TestStateRepositoryScoresRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo, store, _ := newStateRepo(t)

	book := make(models.ScoreBook)
	book.Set("ITS-011a", 3, "hw1", models.Points(8))
	book.Set("ITS-011a", 3, "q1", models.Ungraded)
	book.Set("ENG-204a", 121, "ec", models.Points(0))
	require.NoError(t, repo.SaveScores(ctx, book))

	raw, err := store.Get(ctx, KeyGrades)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ITS-011a":{"3":{"hw1":8,"q1":null}},"ENG-204a":{"121":{"ec":0}}}`, string(raw))

	loaded := repo.LoadScores(ctx)
	assert.Equal(t, book, loaded)
	assert.True(t, loaded.Get("ENG-204a", 121, "ec").Graded)
	assert.False(t, loaded.Get("ITS-011a", 3, "q1").Graded)
}

func TestStateRepositoryLoadScoresMissing(t *testing.T) {
	repo, _, logs := newStateRepo(t)
	book := repo.LoadScores(context.Background())
	assert.NotNil(t, book)
	assert.Empty(t, book)
	assert.Zero(t, logs.Len())
}

func TestStateRepositoryLoadScoresLegacyShapes(t *testing.T) {
	for _, payload := range []string{`[1,2,3]`, `null`, `"grades"`, `42`, `{not json`, ``} {
		t.Run(payload, func(t *testing.T) {
			ctx := context.Background()
			repo, store, logs := newStateRepo(t)
			require.NoError(t, store.Set(ctx, KeyGrades, []byte(payload)))

			book := repo.LoadScores(ctx)
			assert.Empty(t, book)
			assert.Equal(t, 1, logs.FilterLevelExact(zapcore.WarnLevel).Len())
		})
	}
}

func TestStateRepositoryLoadScoresDropsBadEntries(t *testing.T) {
	ctx := context.Background()
	repo, store, _ := newStateRepo(t)
	payload := `{
		"ITS-011a": {"1": {"hw1": 9, "q1": "abc", "t1": null}, "abc": {"hw1": 4}, "2": [1]},
		"ITS-034a": null,
		"ITS-034b": 7
	}`
	require.NoError(t, store.Set(ctx, KeyGrades, []byte(payload)))

	book := repo.LoadScores(ctx)
	require.Contains(t, book, "ITS-011a")
	assert.NotContains(t, book, "ITS-034a")
	assert.NotContains(t, book, "ITS-034b")

	class := book["ITS-011a"]
	assert.Len(t, class, 1)
	assert.Equal(t, models.StudentScores{"hw1": models.Points(9), "t1": models.Ungraded}, class[1])
}

func TestStateRepositoryLedger(t *testing.T) {
	ctx := context.Background()
	repo, store, _ := newStateRepo(t)

	_, ok := repo.LoadLedger(ctx)
	assert.False(t, ok)

	ledger := []models.Assignment{
		{ID: "hw1", Name: "Homework 1", Type: models.AssignmentHomework, MaxPoints: 10},
		{ID: "ec", Name: "Extra Credit", Type: models.AssignmentExtraCredit, MaxPoints: 20},
	}
	require.NoError(t, repo.SaveLedger(ctx, ledger))
	got, ok := repo.LoadLedger(ctx)
	require.True(t, ok)
	assert.Equal(t, ledger, got)

	for _, bad := range []string{`{}`, `[]`, `[{"id":"a","name":"A","type":"essay","max_points":5}]`,
		`[{"id":"a","name":"A","type":"quiz","max_points":0}]`,
		`[{"id":"a","name":"A","type":"quiz","max_points":5},{"id":"a","name":"B","type":"quiz","max_points":5}]`} {
		require.NoError(t, store.Set(ctx, KeyLedger, []byte(bad)))
		_, ok := repo.LoadLedger(ctx)
		assert.False(t, ok, bad)
	}
}

func TestStateRepositorySeating(t *testing.T) {
	ctx := context.Background()
	repo, store, logs := newStateRepo(t)

	_, ok := repo.LoadSeating(ctx, "ITS-011a")
	assert.False(t, ok)

	layout := models.NewSeatingLayout()
	layout[0], layout[5] = 7, 3
	require.NoError(t, repo.SaveSeating(ctx, "ITS-011a", layout))

	raw, err := store.Get(ctx, "seatingChart-ITS-011a")
	require.NoError(t, err)
	var ids []*int
	require.NoError(t, json.Unmarshal(raw, &ids))
	require.Len(t, ids, models.GridSize)
	assert.Nil(t, ids[1])
	assert.Equal(t, 7, *ids[0])

	got, ok := repo.LoadSeating(ctx, "ITS-011a")
	require.True(t, ok)
	assert.Equal(t, layout, got)

	require.NoError(t, store.Set(ctx, SeatingKey("ITS-011a"), []byte(`{"bad":true}`)))
	_, ok = repo.LoadSeating(ctx, "ITS-011a")
	assert.False(t, ok)
	assert.Equal(t, 1, logs.FilterMessage("failed to parse seating chart").Len())
}
