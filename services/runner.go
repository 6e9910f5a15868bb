package services

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/flashbots/otpring/metrics"
	"github.com/flashbots/otpring/protocol"
	"github.com/flashbots/otpring/sim"
	"github.com/flashbots/otpring/stats"
)

// Runner executes simulation requests, aggregates their trials and persists
// the outcome.
type Runner struct {
	store ResultStore
	log   *slog.Logger
}

// NewRunner creates a runner backed by the given store.
func NewRunner(store ResultStore, log *slog.Logger) *Runner {
	if log == nil {
		log = slog.Default()
	}
	return &Runner{store: store, log: log}
}

// Execute runs all trials of a request concurrently, aggregates the results
// and saves the record. Trials are seeded deterministically from the request
// seed, so repeating a request reproduces its record.
func (r *Runner) Execute(ctx context.Context, req *RunRequest) (*RunRecord, error) {
	trials := req.Trials
	if trials <= 0 {
		trials = 1
	}

	variant := string(req.variant())
	results := make([]*sim.Result, trials)
	errs := make([]error, trials)

	var wg sync.WaitGroup
	for i := 0; i < trials; i++ {
		wg.Add(1)
		go func(trial int) {
			defer wg.Done()
			results[trial], errs[trial] = r.runTrial(ctx, req, trial)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("trial %d: %w", i, err)
		}
	}

	record := &RunRecord{
		ID:        uuid.New(),
		CreatedAt: time.Now().UTC(),
		Request:   *req,
		Summary:   stats.Aggregate(results),
		Results:   results,
	}
	if err := r.store.SaveRun(record); err != nil {
		return nil, fmt.Errorf("saving run %s: %w", record.ID, err)
	}

	r.log.Info("run executed",
		"id", record.ID.String(),
		"variant", variant,
		"trials", trials,
		"mean_waste", record.Summary.MeanWaste,
		"mean_utilization", record.Summary.MeanUtilization,
	)
	return record, nil
}

// runTrial executes a single trial with a seed derived from the request seed
// and the trial index.
func (r *Runner) runTrial(ctx context.Context, req *RunRequest, trial int) (*sim.Result, error) {
	seed := req.Seed + int64(trial)

	active, err := r.activeSet(req, seed)
	if err != nil {
		return nil, err
	}

	coord, err := sim.New(&sim.CoordinatorConfig{
		Protocol: req.Config(active, seed),
		Log:      r.log,
	})
	if err != nil {
		return nil, err
	}

	variant := string(req.variant())
	metrics.RunsStarted.WithLabelValues(variant).Inc()

	result, err := coord.Run(ctx)
	if err != nil {
		return nil, err
	}
	metrics.ObserveRun(variant, result)
	return result, nil
}

// activeSet resolves the active sender ids for one trial: an explicit set
// from the request, or X ids sampled from the trial seed.
func (r *Runner) activeSet(req *RunRequest, seed int64) ([]protocol.PartyID, error) {
	if len(req.Active) > 0 {
		ids := make([]protocol.PartyID, len(req.Active))
		for i, id := range req.Active {
			ids[i] = protocol.PartyID(id)
		}
		return ids, nil
	}
	return protocol.RandomActiveSet(req.M, req.X, rand.New(rand.NewSource(seed)))
}
