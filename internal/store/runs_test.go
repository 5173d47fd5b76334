package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRun(recipe string, at time.Time) Run {
	return Run{
		CreatedAt:    at,
		Recipe:       recipe,
		Rule:         "Bruggeman",
		IceMass:      0.2,
		Density:      1.6753,
		Points:       200,
		OutputPath:   "figures/fig2_mix.pdf",
		OutputSHA256: "deadbeef",
	}
}

func TestRecordRunGeneratesID(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	run, err := s.RecordRun(ctx, sampleRun("dsharp", time.Time{}))
	require.NoError(t, err)

	_, err = uuid.Parse(run.ID)
	assert.NoError(t, err)
	assert.False(t, run.CreatedAt.IsZero())
}

func TestRecordAndListRuns(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	for i, name := range []string{"first", "second", "third"} {
		_, err := s.RecordRun(ctx, sampleRun(name, base.Add(time.Duration(i)*time.Minute)))
		require.NoError(t, err)
	}

	runs, err := s.ListRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 3)

	// Newest first.
	assert.Equal(t, "third", runs[0].Recipe)
	assert.Equal(t, "first", runs[2].Recipe)
	assert.True(t, runs[0].CreatedAt.Equal(base.Add(2*time.Minute)))
	assert.Equal(t, 200, runs[0].Points)
	assert.Equal(t, "Bruggeman", runs[0].Rule)
}

func TestListRunsLimit(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		_, err := s.RecordRun(ctx, sampleRun("dsharp", base.Add(time.Duration(i)*time.Second)))
		require.NoError(t, err)
	}

	runs, err := s.ListRuns(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestListRunsEmpty(t *testing.T) {
	s := openTestStore(t)

	runs, err := s.ListRuns(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestRecordRunDuplicateID(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	run := sampleRun("dsharp", time.Now().UTC())
	run.ID = uuid.NewString()

	_, err := s.RecordRun(ctx, run)
	require.NoError(t, err)
	_, err = s.RecordRun(ctx, run)
	require.Error(t, err)
}
