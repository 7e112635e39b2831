// Package workflow runs generation requests and tracks their observable state.
//
// A new run always supersedes the previous one: the state moves to Requesting
// immediately, and the outcome of any earlier run that resolves later is
// dropped instead of overwriting the newer state.
package workflow

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/SergiySvirkov/excel-pdf-automator/pkg/automator/models"
	"github.com/SergiySvirkov/excel-pdf-automator/pkg/automator/prompt"
)

// ErrSuperseded is returned by Run.Wait when a newer run or a Reset replaced the run.
var ErrSuperseded = errors.New("generation superseded by a newer request")

// Generator produces a result for a request. *generation.Client implements it.
type Generator interface {
	Generate(ctx context.Context, req prompt.Request) (models.GenerationResult, error)
}

// Observer is called after every state transition, in transition order.
// It runs with the workflow locked and must not call back into the Workflow.
type Observer func(State)

// Workflow is the Idle -> Requesting -> Succeeded|Failed state machine.
// It is safe for concurrent use.
type Workflow struct {
	gen       Generator
	logger    *slog.Logger
	observers []Observer

	mu    sync.Mutex
	seq   uint64
	state State
}

// Option configures a Workflow.
type Option func(*Workflow)

// WithLogger sets the workflow logger.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Workflow) {
		w.logger = logger
	}
}

// WithObserver registers an observer for state transitions.
func WithObserver(o Observer) Option {
	return func(w *Workflow) {
		w.observers = append(w.observers, o)
	}
}

// New creates an Idle workflow.
func New(gen Generator, opts ...Option) *Workflow {
	w := &Workflow{
		gen:    gen,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// State returns the current state.
func (w *Workflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Run is a single started generation.
type Run struct {
	// Seq is the sequence number assigned when the run started.
	Seq uint64

	done    chan struct{}
	outcome State
	stale   bool
}

// Done is closed once the run's generator call has returned.
func (r *Run) Done() <-chan struct{} {
	return r.done
}

// Wait blocks until the run resolves or ctx is done. It returns the run's own
// outcome, with ErrSuperseded if that outcome was not applied.
func (r *Run) Wait(ctx context.Context) (State, error) {
	select {
	case <-r.done:
	case <-ctx.Done():
		return State{}, ctx.Err()
	}
	if r.stale {
		return r.outcome, ErrSuperseded
	}
	return r.outcome, nil
}

// Start builds the request for cfg and mappings, moves to Requesting with any
// previous result cleared, and calls the generator in the background.
// The generator call itself is never cancelled by the workflow.
func (w *Workflow) Start(ctx context.Context, cfg models.Configuration, mappings []models.Mapping) *Run {
	req := prompt.Build(cfg, mappings)

	w.mu.Lock()
	w.seq++
	run := &Run{Seq: w.seq, done: make(chan struct{})}
	w.setLocked(State{Phase: Requesting, Seq: run.Seq})
	w.mu.Unlock()

	w.logger.Info("generation started", "seq", run.Seq, "mappings", len(mappings))

	go func() {
		result, err := w.gen.Generate(ctx, req)
		w.finish(run, result, err)
	}()

	return run
}

// Generate starts a run and waits for it.
func (w *Workflow) Generate(ctx context.Context, cfg models.Configuration, mappings []models.Mapping) (State, error) {
	return w.Start(ctx, cfg, mappings).Wait(ctx)
}

// Reset returns the workflow to Idle and discards any outstanding run.
func (w *Workflow) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.seq++
	w.setLocked(State{Phase: Idle, Seq: w.seq})
}

func (w *Workflow) finish(run *Run, result models.GenerationResult, err error) {
	outcome := State{Phase: Succeeded, Seq: run.Seq, Result: &result}
	if err != nil {
		outcome = State{Phase: Failed, Seq: run.Seq, Err: err}
	}

	w.mu.Lock()
	run.outcome = outcome
	run.stale = run.Seq != w.seq
	if !run.stale {
		w.setLocked(outcome)
	}
	w.mu.Unlock()
	close(run.done)

	switch {
	case run.stale:
		w.logger.Debug("dropping stale generation outcome", "seq", run.Seq, "phase", outcome.Phase.String())
	case err != nil:
		w.logger.Warn("generation failed", "seq", run.Seq, "error", err)
	default:
		w.logger.Info("generation succeeded", "seq", run.Seq)
	}
}

func (w *Workflow) setLocked(s State) {
	w.state = s
	for _, o := range w.observers {
		o(s)
	}
}
