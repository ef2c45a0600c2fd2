package sim

import (
	"context"
	"errors"
	"math/rand"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nanoforge/nanosim/assembly"
	"github.com/nanoforge/nanosim/field"
	"github.com/nanoforge/nanosim/force"
	"github.com/nanoforge/nanosim/geom"
	"github.com/nanoforge/nanosim/particle"
)

// ErrShutdown is returned by Step and Run once the engine has been shut
// down. Stepping a dead engine is a caller bug and fails loudly.
var ErrShutdown = errors.New("sim: engine has been shut down")

// Activation feedback smoothing: a <- keep*a + take*field(p).
const (
	feedbackKeep = 0.9
	feedbackTake = 0.1
)

// progressInterval is how often (in steps) the engine logs progress.
const progressInterval = 1000

// Engine owns all mutable simulation state: the particle store, the
// activation field, and the derived assembly/metric state. All mutation
// happens inside Step; concurrent readers only ever see step-boundary
// snapshots.
type Engine struct {
	cfg     Config
	box     geom.Box
	params  force.Params
	workers int

	runID uuid.UUID
	log   *zap.Logger
	rng   *rand.Rand

	store *particle.Store
	field *field.Field

	mu   sync.Mutex
	down bool

	step      int64
	now       float64
	guardHits int64

	assemblies []assembly.Assembly
	metrics    assembly.GlobalMetrics
	report     SystemReport

	snap atomic.Pointer[Snapshot]
}

// StepResult describes what one integration step did.
type StepResult struct {
	Step      int64
	Time      float64
	GuardHits int

	FieldUpdated bool
	Analyzed     bool
	Assemblies   int
}

// RunSummary is the terminal report of a Run call.
type RunSummary struct {
	RunID     string        `yaml:"run_id"`
	Steps     int64         `yaml:"steps"`
	SimTime   float64       `yaml:"sim_time"`
	WallTime  time.Duration `yaml:"wall_time"`
	Cancelled bool          `yaml:"cancelled"`
	GuardHits int64         `yaml:"guard_hits"`

	Metrics assembly.GlobalMetrics `yaml:"metrics"`
	Report  SystemReport           `yaml:"report"`
}

// New validates the configuration and builds a ready engine: randomized
// particles, a seeded activation field, and an initial analysis pass so
// metrics are defined before the first step.
func New(cfg Config, log *zap.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	workers := cfg.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}

	e := &Engine{
		cfg: cfg,
		box: geom.Box{cfg.BoxX, cfg.BoxY, cfg.BoxZ},
		params: force.Params{
			Epsilon:    cfg.Epsilon,
			Sigma:      cfg.Sigma,
			CouplingK:  cfg.CouplingK,
			EmergenceK: cfg.EmergenceK,
			Cutoff:     cfg.Cutoff,
		},
		workers: workers,
		runID:   uuid.New(),
		log:     log,
		rng:     rng,
	}

	e.store = particle.NewStore(cfg.Particles, e.box, cfg.Temperature, rng)
	e.field = field.New(cfg.GridRes, e.box, cfg.Hotspots, cfg.HistoryCap, rng)

	e.analyze(e.store.Particles())
	e.publish(e.field.Values())

	log.Info("engine initialized",
		zap.String("run_id", e.runID.String()),
		zap.Int("particles", cfg.Particles),
		zap.Int("grid_res", cfg.GridRes),
		zap.Int("workers", workers),
		zap.Int64("seed", seed),
	)

	return e, nil
}

// RunID returns the engine's unique run identifier.
func (e *Engine) RunID() string { return e.runID.String() }

// Step advances the simulation by exactly one integration step, running the
// field and analysis passes when their cadence is due. The step is atomic
// from a reader's perspective: the published snapshot only ever changes at
// the step boundary.
func (e *Engine) Step() (StepResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.down {
		return StepResult{}, ErrShutdown
	}

	ps := e.store.Particles()
	dt := e.cfg.TimeStep

	forces, guards := force.Accumulate(ps, e.box, &e.params, e.workers)
	if guards > 0 {
		e.guardHits += int64(guards)
		e.log.Debug("numeric guard clamped degenerate separations",
			zap.Int("pairs", guards), zap.Int64("step", e.step))
	}

	for i := range ps {
		p := &ps[i]
		p.Vel.AddSelf(forces[i].Scale(dt / p.Mass))
		p.Pos.AddSelf(p.Vel.Scale(dt))
		p.Pos = p.Pos.Wrap(e.box)

		p.Activation = feedbackKeep*p.Activation +
			feedbackTake*e.field.Sample(p.Pos)
		p.ClampActivation()
	}

	e.step++
	e.now += dt

	res := StepResult{
		Step:      e.step,
		Time:      e.now,
		GuardHits: guards,
	}

	var fieldValues []float64
	if e.step%int64(e.cfg.FieldCadence) == 0 {
		e.field.Deposit(ps)
		fieldValues = e.field.Values()
		res.FieldUpdated = true
	}

	if e.step%int64(e.cfg.AnalysisCadence) == 0 {
		e.analyze(ps)
		res.Analyzed = true
	}
	res.Assemblies = len(e.assemblies)

	if e.step%progressInterval == 0 {
		e.log.Info("simulation progress",
			zap.Int64("step", e.step),
			zap.Float64("time", e.now),
			zap.Int("assemblies", len(e.assemblies)),
			zap.Float64("global_activation", e.metrics.GlobalActivation),
		)
	}

	e.publish(fieldValues)

	return res, nil
}

// Run advances steps until the simulated duration elapses or ctx is
// cancelled. Cancellation is only honored between steps; no step is ever
// abandoned midway.
func (e *Engine) Run(ctx context.Context, duration float64) (RunSummary, error) {
	steps := int64(duration / e.cfg.TimeStep)
	start := time.Now()

	e.log.Info("starting run",
		zap.String("run_id", e.runID.String()),
		zap.Float64("duration", duration),
		zap.Int64("steps", steps),
	)

	cancelled := false
	var executed int64
	for i := int64(0); i < steps; i++ {
		select {
		case <-ctx.Done():
			cancelled = true
		default:
		}
		if cancelled {
			break
		}

		if _, err := e.Step(); err != nil {
			return e.summary(executed, start, cancelled), err
		}
		executed++
	}

	sum := e.summary(executed, start, cancelled)
	e.log.Info("run finished",
		zap.Int64("steps", sum.Steps),
		zap.Bool("cancelled", sum.Cancelled),
		zap.Duration("wall_time", sum.WallTime),
	)
	return sum, nil
}

func (e *Engine) summary(executed int64, start time.Time, cancelled bool) RunSummary {
	snap := e.snap.Load()
	return RunSummary{
		RunID:     e.runID.String(),
		Steps:     executed,
		SimTime:   snap.Time,
		WallTime:  time.Since(start),
		Cancelled: cancelled,
		GuardHits: e.guardHits,
		Metrics:   snap.Metrics,
		Report:    snap.Report,
	}
}

// SnapshotMetrics returns the metrics from the latest step-boundary
// snapshot. It never blocks the loop.
func (e *Engine) SnapshotMetrics() assembly.GlobalMetrics {
	return e.snap.Load().Metrics
}

// Snapshot returns the latest step-boundary snapshot. The returned value is
// immutable from the engine's side; collaborators may read it freely while
// the loop keeps stepping.
func (e *Engine) Snapshot() *Snapshot {
	return e.snap.Load()
}

// Shutdown stops the engine. It is idempotent; any Step or Run after the
// first call fails with ErrShutdown.
func (e *Engine) Shutdown() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.down {
		return
	}
	e.down = true
	e.log.Info("engine shut down",
		zap.String("run_id", e.runID.String()),
		zap.Int64("steps", e.step))
}

// analyze recomputes the assembly set, global metrics, and system report
// from the current particle state.
func (e *Engine) analyze(ps []particle.Particle) {
	groups := assembly.Clusters(ps, e.cfg.ClusterCutoff, e.cfg.MinAssemblySize)
	e.assemblies = assembly.AnalyzeAll(ps, groups)
	e.metrics = assembly.Aggregate(e.assemblies, ps)
	e.report = buildReport(e.assemblies, ps)
}

// publish installs a fresh step-boundary snapshot. fieldValues may be nil,
// in which case the previous snapshot's field copy is carried forward (the
// live grid only changes on field cadence).
func (e *Engine) publish(fieldValues []float64) {
	if fieldValues == nil {
		if prev := e.snap.Load(); prev != nil {
			fieldValues = prev.Field
		}
	}

	as := make([]assembly.Assembly, len(e.assemblies))
	copy(as, e.assemblies)

	e.snap.Store(&Snapshot{
		Step:       e.step,
		Time:       e.now,
		Particles:  e.store.Clone(),
		Field:      fieldValues,
		FieldRes:   e.field.Res(),
		Assemblies: as,
		Metrics:    e.metrics,
		Report:     e.report,
	})
}
