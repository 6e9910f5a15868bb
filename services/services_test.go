package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/flashbots/otpring/sim"
)

func TestInMemoryStore(t *testing.T) {
	store := NewInMemoryStore()

	_, err := store.GetRun(uuid.New())
	require.ErrorIs(t, err, ErrRunNotFound)

	older := &RunRecord{ID: uuid.New(), CreatedAt: time.Now().Add(-time.Minute)}
	newer := &RunRecord{ID: uuid.New(), CreatedAt: time.Now()}
	require.NoError(t, store.SaveRun(older))
	require.NoError(t, store.SaveRun(newer))

	got, err := store.GetRun(older.ID)
	require.NoError(t, err)
	require.Equal(t, older.ID, got.ID)

	runs, err := store.ListRuns()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	require.Equal(t, newer.ID, runs[0].ID)
	require.Equal(t, older.ID, runs[1].ID)

	require.NoError(t, store.Close())
}

func TestRunnerExecute(t *testing.T) {
	store := NewInMemoryStore()
	runner := NewRunner(store, nil)

	record, err := runner.Execute(context.Background(), &RunRequest{
		N:      400,
		M:      4,
		D:      15,
		X:      2,
		Trials: 3,
		Seed:   7,
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, record.ID)
	require.Equal(t, 3, record.Summary.Trials)
	require.Len(t, record.Results, 3)
	for _, result := range record.Results {
		require.Equal(t, sim.OutcomeComplete, result.Outcome)
		require.LessOrEqual(t, result.Waste, 4*15)
	}

	stored, err := store.GetRun(record.ID)
	require.NoError(t, err)
	require.Equal(t, record.Summary, stored.Summary)
}

func TestRunnerExecuteIsDeterministic(t *testing.T) {
	store := NewInMemoryStore()
	runner := NewRunner(store, nil)
	req := &RunRequest{N: 400, M: 3, D: 15, X: 1, Trials: 2, Seed: 42}

	a, err := runner.Execute(context.Background(), req)
	require.NoError(t, err)
	b, err := runner.Execute(context.Background(), req)
	require.NoError(t, err)

	require.NotEqual(t, a.ID, b.ID)
	require.Equal(t, a.Summary, b.Summary)
	require.Equal(t, a.Results, b.Results)
}

func TestRunnerExecutePinnedActiveSet(t *testing.T) {
	store := NewInMemoryStore()
	runner := NewRunner(store, nil)

	record, err := runner.Execute(context.Background(), &RunRequest{
		N:      400,
		M:      4,
		D:      15,
		Active: []int{1, 3},
		Trials: 1,
	})
	require.NoError(t, err)
	require.Len(t, record.Results, 1)

	var active []int
	for _, p := range record.Results[0].Parties {
		if p.PadsUsed > 0 {
			active = append(active, p.ID)
		}
	}
	require.Equal(t, []int{1, 3}, active)
}

func TestRunnerExecuteRejectsBadConfig(t *testing.T) {
	runner := NewRunner(NewInMemoryStore(), nil)
	_, err := runner.Execute(context.Background(), &RunRequest{N: -1, M: 2, D: 15, X: 1})
	require.Error(t, err)
}

func TestRunnerExecuteDefaultsToOneTrial(t *testing.T) {
	runner := NewRunner(NewInMemoryStore(), nil)
	record, err := runner.Execute(context.Background(), &RunRequest{N: 100, M: 2, D: 5, X: 1})
	require.NoError(t, err)
	require.Equal(t, 1, record.Summary.Trials)
}

func TestPostgresConnectionString(t *testing.T) {
	cfg := &PostgresConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "otpring",
		Password: "secret",
		Database: "runs",
	}
	require.Equal(t,
		"host=localhost port=5432 user=otpring password=secret dbname=runs sslmode=disable",
		cfg.ConnectionString())

	cfg.SSLMode = "require"
	require.Contains(t, cfg.ConnectionString(), "sslmode=require")
}
