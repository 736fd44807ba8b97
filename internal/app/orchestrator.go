package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/quantmind-br/codecollector/internal/archive"
	"github.com/quantmind-br/codecollector/internal/domain"
	"github.com/quantmind-br/codecollector/internal/filter"
	"github.com/quantmind-br/codecollector/internal/flatten"
	"github.com/quantmind-br/codecollector/internal/remote"
	"github.com/quantmind-br/codecollector/internal/utils"
)

// Resolver downloads a repository archive
type Resolver interface {
	Resolve(ctx context.Context, repoURL string) (*remote.Archive, error)
}

// Progress receives one Add per decoded entry. *progressbar.ProgressBar satisfies it.
type Progress interface {
	Add(n int) error
	Finish() error
}

// ProgressFactory creates a Progress for a run that will decode total entries
type ProgressFactory func(total int) Progress

// Orchestrator runs the collect pipeline and owns its State
type Orchestrator struct {
	mu          sync.Mutex
	state       State
	resolver    Resolver
	archiveOpts archive.Options
	workers     int
	progress    ProgressFactory
	logger      *utils.Logger
}

// OrchestratorOptions contains options for creating an orchestrator
type OrchestratorOptions struct {
	Resolver     Resolver
	MaxEntrySize int64
	Workers      int
	Progress     ProgressFactory
	Logger       *utils.Logger
}

// NewOrchestrator creates an orchestrator in PhaseIdle
func NewOrchestrator(opts OrchestratorOptions) *Orchestrator {
	logger := opts.Logger
	if logger == nil {
		logger = utils.NewNopLogger()
	}

	return &Orchestrator{
		state:       State{Phase: PhaseIdle},
		resolver:    opts.Resolver,
		archiveOpts: archive.Options{MaxEntrySize: opts.MaxEntrySize},
		workers:     opts.Workers,
		progress:    opts.Progress,
		logger:      logger.WithComponent("orchestrator"),
	}
}

// State returns the current snapshot
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Reset returns a terminal pipeline to PhaseIdle
func (o *Orchestrator) Reset() (State, error) {
	return o.dispatch(Event{Kind: EventReset})
}

// ProcessUpload flattens a zip supplied by the user. Pipeline failures are
// reported through the returned State; the error is only set when the
// pipeline could not start (it is not idle).
func (o *Orchestrator) ProcessUpload(ctx context.Context, data []byte, name string, spec filter.Spec) (State, error) {
	if _, err := o.dispatch(Event{Kind: EventStart}); err != nil {
		return o.State(), err
	}

	log := o.logger.WithSource(name)
	log.Info().Str("filter", spec.String()).Int("bytes", len(data)).Msg("Processing archive")

	if len(data) == 0 {
		return o.fail(log, domain.NewInvalidInputError("archive", name, errors.New("empty payload")))
	}

	src := domain.NewUploadSource(data, name)
	return o.run(ctx, log, src, spec)
}

// ProcessRepository downloads a GitHub repository archive and flattens it
func (o *Orchestrator) ProcessRepository(ctx context.Context, repoURL string, spec filter.Spec) (State, error) {
	if _, err := o.dispatch(Event{Kind: EventStart}); err != nil {
		return o.State(), err
	}

	log := o.logger.WithSource(repoURL)
	log.Info().Str("filter", spec.String()).Msg("Resolving repository")

	if o.resolver == nil {
		return o.fail(log, errors.New("no repository resolver configured"))
	}

	arc, err := o.resolver.Resolve(ctx, repoURL)
	if err != nil {
		return o.fail(log, err)
	}

	src := domain.NewRemoteSource(arc.Data, arc.Ref.Name(), repoURL, arc.Ref.Branch)
	return o.run(ctx, log, src, spec)
}

func (o *Orchestrator) run(ctx context.Context, log *utils.Logger, src domain.Source, spec filter.Spec) (State, error) {
	start := time.Now()

	entries, err := archive.Open(src.Data, o.archiveOpts)
	if err != nil {
		return o.fail(log, err)
	}

	var bar Progress
	if o.progress != nil {
		if n := len(flatten.Select(entries, spec)); n > 0 {
			bar = o.progress(n)
		}
	}

	f := flatten.New(flatten.Options{
		Workers: o.workers,
		Logger:  log.WithComponent("flatten"),
		OnEntry: func(string) {
			if bar != nil {
				_ = bar.Add(1)
			}
		},
	})

	result, err := f.Flatten(ctx, entries, spec, src.Label())
	if bar != nil {
		_ = bar.Finish()
	}
	if err != nil {
		return o.fail(log, err)
	}

	log.Info().
		Int("files", len(result.Members)).
		Int("bytes", result.Stats.Bytes).
		Dur("duration", time.Since(start)).
		Msg("Archive collected")

	return o.dispatch(Event{Kind: EventSucceeded, Source: src, Result: result})
}

func (o *Orchestrator) fail(log *utils.Logger, err error) (State, error) {
	log.Warn().Err(err).Msg("Processing failed")
	return o.dispatch(Event{Kind: EventFailed, Err: err})
}

func (o *Orchestrator) dispatch(ev Event) (State, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	next, err := Reduce(o.state, ev)
	if err != nil {
		return o.state, err
	}
	o.state = next
	return next, nil
}
