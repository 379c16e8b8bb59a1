//go:build cgo

package sunbind

import (
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunbind/sunbind/types"
)

func withRuntime(t *testing.T, edit func(*types.Config)) *Runtime {
	t.Helper()
	cfg := types.DefaultConfig()
	cfg.Log.Level = "error"
	if edit != nil {
		edit(&cfg)
	}
	rt, err := NewRuntime(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, rt.Close()) })
	return rt
}

func decay(t float64, y, ydot Vector) int {
	for i := range y {
		ydot[i] = -y[i]
	}
	return types.StatusSuccess
}

func TestLibraryVersion(t *testing.T) {
	v, err := LibraryVersion()
	require.NoError(t, err)
	require.Equal(t, "0.4.2", v)
}

func TestNewRuntimeRejectsInvalidConfig(t *testing.T) {
	cfg := types.DefaultConfig()
	cfg.Engine.StepSize = -1
	_, err := NewRuntime(cfg)
	require.Error(t, err)
}

func TestNewRuntimeClosesLogOnStoreFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	cfg := types.DefaultConfig()
	cfg.Log.Level = "error"
	cfg.Log.File = filepath.Join(dir, "run.log")
	cfg.Checkpoint.Backend = "goleveldb"
	cfg.Checkpoint.Dir = blocker
	_, err := NewRuntime(cfg)
	require.Error(t, err)

	data, err := os.ReadFile(cfg.Log.File)
	require.NoError(t, err)
	assert.Contains(t, string(data), "runtime start failed")
}

func TestRuntimeRecordsTrajectory(t *testing.T) {
	rt := withRuntime(t, func(cfg *types.Config) {
		cfg.Checkpoint.Every = 100
		cfg.Engine.StepSize = 1e-3
	})

	it, err := rt.NewIntegrator(decay, 0, []float64{1})
	require.NoError(t, err)
	defer it.Free()

	var last float64
	rec, err := rt.Record(it, func(t float64, y Vector) int {
		last = t
		return types.StatusSuccess
	})
	require.NoError(t, err)

	sol, err := it.Evolve(1)
	require.NoError(t, err)
	require.InDelta(t, math.Exp(-1), sol.Y[0], 1e-3)
	require.InDelta(t, 1.0, last, 1e-12)
	require.NoError(t, rec.Err())

	steps, err := it.Steps()
	require.NoError(t, err)
	require.Equal(t, int(steps)/100, rec.Saved())
	require.Equal(t, rec.Saved(), rt.Store().Len())

	p, found, err := rt.Store().Nearest(0.55)
	require.NoError(t, err)
	require.True(t, found)
	assert.LessOrEqual(t, p.T, 0.55)
	assert.InDelta(t, math.Exp(-p.T), p.Y[0], 1e-3)
}

func TestRuntimeRecorderFailureStopsEvolve(t *testing.T) {
	rt := withRuntime(t, nil)
	it, err := rt.NewIntegrator(decay, 0, []float64{1})
	require.NoError(t, err)
	defer it.Free()

	rec, err := rt.Record(it, nil)
	require.NoError(t, err)
	require.NoError(t, rt.Store().Close())

	_, err = it.Evolve(0.01)
	var status types.NativeStatus
	require.ErrorAs(t, err, &status)
	require.Equal(t, types.StatusPostprocessFail, status.Code)
	require.Error(t, rec.Err())
}

func TestRuntimeNonlinearSolver(t *testing.T) {
	rt := withRuntime(t, func(cfg *types.Config) { cfg.Engine.NlsMaxIters = 30 })
	nls, err := rt.NewNonlinearSolver()
	require.NoError(t, err)
	defer nls.Free()

	// x^2 = 2 as a correction from x0 = 1
	var slope float64
	require.NoError(t, nls.SetSys(func(ycor, f Vector) int {
		x := 1 + ycor[0]
		slope = 2 * x
		f[0] = x*x - 2
		return types.StatusSuccess
	}))
	require.NoError(t, nls.SetLSolve(func(b Vector) int {
		b[0] /= slope
		return types.StatusSuccess
	}))

	require.Equal(t, rt.Config().Engine.NlsTolerance, nls.Tolerance())
	ycor, err := nls.Solve([]float64{0}, []float64{1}, 0, true)
	require.NoError(t, err)
	require.InDelta(t, math.Sqrt2, 1+ycor[0], 1e-8)
}

func TestRuntimeMetricsHandler(t *testing.T) {
	rt := withRuntime(t, func(cfg *types.Config) { cfg.Metrics.Enabled = true })
	it, err := rt.NewIntegrator(decay, 0, []float64{1})
	require.NoError(t, err)
	_, err = it.Evolve(0.01)
	require.NoError(t, err)
	it.Free()

	rec := httptest.NewRecorder()
	rt.MetricsHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `sunbind_hook_calls_total{slot="rhs",status="SUCCESS"}`)
	assert.Contains(t, rec.Body.String(), `sunbind_tables_released_total{kind="integrator"}`)
}
