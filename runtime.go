//go:build cgo

package sunbind

import (
	"errors"
	"fmt"
	"net/http"
	"sync"

	"go.uber.org/zap"

	"github.com/sunbind/sunbind/internal/api"
	"github.com/sunbind/sunbind/internal/checkpoint"
	"github.com/sunbind/sunbind/internal/logging"
	"github.com/sunbind/sunbind/internal/metrics"
	"github.com/sunbind/sunbind/types"
)

type (
	Integrator      = api.Integrator
	InnerStepper    = api.InnerStepper
	NonlinearSolver = api.NonlinearSolver
	TableID         = api.TableID
)

// Slot names accepted by the Register methods.
const (
	SlotRhs         = api.SlotRhs
	SlotRoot        = api.SlotRoot
	SlotEwt         = api.SlotEwt
	SlotPrecSetup   = api.SlotPrecSetup
	SlotPrecSolve   = api.SlotPrecSolve
	SlotJacTimes    = api.SlotJacTimes
	SlotQuadRhs     = api.SlotQuadRhs
	SlotSensRhs     = api.SlotSensRhs
	SlotSensRhs1    = api.SlotSensRhs1
	SlotPostprocess = api.SlotPostprocess

	SlotRhsB       = api.SlotRhsB
	SlotRhsBS      = api.SlotRhsBS
	SlotQuadRhsB   = api.SlotQuadRhsB
	SlotPrecSetupB = api.SlotPrecSetupB

	SlotInnerEvolve           = api.SlotInnerEvolve
	SlotInnerFullRhs          = api.SlotInnerFullRhs
	SlotInnerReset            = api.SlotInnerReset
	SlotInnerAccumulatedError = api.SlotInnerAccumulatedError

	SlotNlsSys      = api.SlotNlsSys
	SlotNlsLSetup   = api.SlotNlsLSetup
	SlotNlsLSolve   = api.SlotNlsLSolve
	SlotNlsConvTest = api.SlotNlsConvTest
)

var _ api.Observer = metrics.Observer{}

// Runtime bundles the logger, metrics and checkpoint store around the native
// engine. The logger and observer it installs are process wide, so a program
// should run one Runtime at a time.
type Runtime struct {
	cfg      types.Config
	log      *zap.Logger
	closeLog func() error
	store    *checkpoint.Store

	closeOnce sync.Once
	closeErr  error
}

// NewRuntime validates cfg, builds the logger, opens the checkpoint store and
// installs both logger and, if enabled, the prometheus observer.
func NewRuntime(cfg types.Config) (*Runtime, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	log, closeLog, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}
	fail := func(err error) (*Runtime, error) {
		log.Error("runtime start failed", zap.Error(err))
		_ = closeLog()
		return nil, err
	}
	store, err := checkpoint.Open(cfg.Checkpoint)
	if err != nil {
		return fail(err)
	}

	version, err := api.LibraryVersion()
	if err != nil {
		_ = store.Close()
		return fail(fmt.Errorf("query engine version: %w", err))
	}

	api.SetLogger(log)
	if cfg.Metrics.Enabled {
		api.SetObserver(metrics.Observer{})
	}
	log.Info("runtime started",
		zap.String("engine", version),
		zap.String("checkpoint_backend", cfg.Checkpoint.Backend),
		zap.Bool("metrics", cfg.Metrics.Enabled),
	)
	return &Runtime{cfg: cfg, log: log, closeLog: closeLog, store: store}, nil
}

func (r *Runtime) Config() types.Config { return r.cfg }

func (r *Runtime) Logger() *zap.Logger { return r.log }

func (r *Runtime) Store() *checkpoint.Store { return r.store }

// NewIntegrator creates a forward integrator with the engine settings of the
// runtime.
func (r *Runtime) NewIntegrator(rhs types.RhsFn, t0 float64, y0 []float64) (*Integrator, error) {
	return api.NewIntegrator(rhs, t0, y0, r.cfg.Engine)
}

func (r *Runtime) NewInnerStepper() (*InnerStepper, error) {
	return api.NewInnerStepper()
}

// NewNonlinearSolver creates a solver with the configured iteration limit
// and tolerance.
func (r *Runtime) NewNonlinearSolver() (*NonlinearSolver, error) {
	n, err := api.NewNonlinearSolver(r.cfg.Engine.NlsMaxIters)
	if err != nil {
		return nil, err
	}
	if err := n.SetTolerance(r.cfg.Engine.NlsTolerance); err != nil {
		n.Free()
		return nil, err
	}
	return n, nil
}

// Record installs a Recorder in the postprocess slot of it, writing to the
// runtime's store at the configured interval. next, if set, runs after each
// step is recorded.
func (r *Runtime) Record(it *Integrator, next types.PostprocessFn) (*Recorder, error) {
	rec := NewRecorder(r.store, r.cfg.Checkpoint.Every, next)
	if err := it.SetPostprocess(rec.Hook()); err != nil {
		return nil, err
	}
	return rec, nil
}

// MetricsHandler serves the prometheus collectors.
func (r *Runtime) MetricsHandler() http.Handler {
	return metrics.NewPromHttpHandler()
}

// Close restores the package defaults and closes the store. Objects created
// through the runtime stay valid but log nowhere.
func (r *Runtime) Close() error {
	r.closeOnce.Do(func() {
		api.SetObserver(nil)
		api.SetLogger(nil)
		created, released := api.TableStats()
		r.log.Info("runtime closed", zap.Uint64("tables_created", created), zap.Uint64("tables_released", released))
		r.closeErr = errors.Join(r.store.Close(), r.closeLog())
	})
	return r.closeErr
}
