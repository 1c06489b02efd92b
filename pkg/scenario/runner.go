package scenario

import (
	"context"
	"io"
	"log/slog"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/dshills/annotate/pkg/config"
	"github.com/dshills/annotate/pkg/domain/types"
	operr "github.com/dshills/annotate/pkg/errors"
	"github.com/dshills/annotate/pkg/intent"
	"github.com/dshills/annotate/pkg/interaction"
	"github.com/dshills/annotate/pkg/surface"
)

// Sink receives the intents of every completed run.
type Sink interface {
	Append(ctx context.Context, session, scenario string, intents []intent.Intent) error
}

// LiveUpdate records a node corrected in place by a live transform.
type LiveUpdate struct {
	Step         int                `json:"step"`
	AnnotationID types.AnnotationID `json:"annotationId"`
	// Node is the node document after the correction.
	Node string `json:"node"`
}

// Result is the outcome of one scenario run.
type Result struct {
	Scenario string          `json:"scenario"`
	Session  string          `json:"session"`
	Intents  []intent.Intent `json:"intents"`
	// LiveUpdates lists in-place node corrections, which dispatch nothing.
	LiveUpdates []LiveUpdate `json:"liveUpdates,omitempty"`
	// Unhandled counts events delivered while no handler was registered
	// for them, i.e. while the controller was inactive.
	Unhandled int `json:"unhandled"`
}

// Runner replays scenarios.
type Runner struct {
	cfg    *config.Config
	logger *slog.Logger
	clock  clock.Clock
	query  *intent.Query
	sink   Sink
	bus    *intent.Bus
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithLogger sets the runner and controller logger.
func WithLogger(l *slog.Logger) RunnerOption {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithClock sets the clock used for waits and pointer debouncing.
func WithClock(c clock.Clock) RunnerOption {
	return func(r *Runner) {
		if c != nil {
			r.clock = c
		}
	}
}

// WithQuery keeps only the intents matching q in results and sinks.
func WithQuery(q *intent.Query) RunnerOption {
	return func(r *Runner) { r.query = q }
}

// WithSink sends every result's intents to s.
func WithSink(s Sink) RunnerOption {
	return func(r *Runner) { r.sink = s }
}

// WithBus publishes every intent on b as it is dispatched, before any
// query is applied.
func WithBus(b *intent.Bus) RunnerOption {
	return func(r *Runner) { r.bus = b }
}

// NewRunner creates a runner using cfg for every controller it builds. A
// nil cfg uses config.Default.
func NewRunner(cfg *config.Config, opts ...RunnerOption) *Runner {
	if cfg == nil {
		cfg = config.Default()
	}
	r := &Runner{
		cfg:    cfg,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		clock:  clock.New(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run replays sc through a fresh controller. Pending pointer feedback is
// flushed after the last step so the result is complete.
func (r *Runner) Run(ctx context.Context, sc *Scenario) (*Result, error) {
	rec := intent.NewRecorder()
	var d intent.Dispatcher = rec
	if r.bus != nil {
		d = intent.DispatchFunc(func(in intent.Intent) {
			rec.Dispatch(in)
			r.bus.Dispatch(in)
		})
	}

	opts := append(r.cfg.ControllerOptions(r.logger), interaction.WithClock(r.clock))
	ctrl := interaction.New(d, opts...)
	defer ctrl.Close()

	res := &Result{
		Scenario: sc.Name,
		Session:  uuid.NewString(),
	}
	r.logger.Info("replay started", "scenario", sc.Name, "session", res.Session, "steps", len(sc.Steps))

	for i, step := range sc.Steps {
		if err := ctx.Err(); err != nil {
			return nil, operr.NewOperationalError("replaying", sc.Name, i+1, err)
		}

		if err := r.runStep(ctx, ctrl, step, i+1, res); err != nil {
			return nil, operr.NewOperationalError("replaying", sc.Name, i+1, err)
		}
	}

	ctrl.Flush()

	intents := rec.Intents()
	if r.query != nil {
		selected, err := r.query.Select(intents)
		if err != nil {
			return nil, operr.NewOperationalError("filtering intents", sc.Name, 0, err)
		}
		intents = selected
	}
	res.Intents = intents

	if r.sink != nil {
		if err := r.sink.Append(ctx, res.Session, sc.Name, res.Intents); err != nil {
			return nil, operr.NewOperationalError("journaling intents", sc.Name, 0, err)
		}
	}

	r.logger.Info("replay finished", "scenario", sc.Name,
		"dispatched", rec.Len(), "intents", len(res.Intents), "unhandled", res.Unhandled)
	return res, nil
}

func (r *Runner) runStep(ctx context.Context, ctrl *interaction.Controller, step Step, n int, res *Result) error {
	switch step.Kind {
	case StepTab:
		mode := ctrl.SetTab(step.Tab)
		r.logger.Debug("tab", "step", n, "tab", step.Tab, "mode", mode)

	case StepDrawMode:
		ctrl.EnterDrawMode()

	case StepWait:
		select {
		case <-r.clock.After(step.Wait):
		case <-ctx.Done():
			return ctx.Err()
		}

	case StepEvent:
		parsed, err := surface.ParseEvent(step.Event)
		if err != nil {
			return err
		}

		before := ""
		if parsed.Node != nil {
			before = parsed.Node.JSON()
		}

		if !ctrl.Handle(parsed.Name, parsed.Event) {
			res.Unhandled++
			r.logger.Debug("unhandled event", "step", n, "event", parsed.Name)
			return nil
		}

		if parsed.Node != nil && parsed.Node.JSON() != before {
			res.LiveUpdates = append(res.LiveUpdates, LiveUpdate{
				Step:         n,
				AnnotationID: parsed.Node.ID(),
				Node:         parsed.Node.JSON(),
			})
		}
	}

	return nil
}

// RunAll replays scenarios concurrently, each on its own controller, and
// returns the results in input order.
func (r *Runner) RunAll(ctx context.Context, scenarios []*Scenario) ([]*Result, error) {
	results := make([]*Result, len(scenarios))

	g, gctx := errgroup.WithContext(ctx)
	for i, sc := range scenarios {
		i, sc := i, sc
		g.Go(func() error {
			res, err := r.Run(gctx, sc)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
