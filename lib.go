// Package sunbind routes the callbacks of a native ODE engine to Go functions.
//
// Integrators, inner steppers and nonlinear solvers each carry a table of
// callback slots. The engine reaches the table through the context pointer it
// hands every hook, and the table is freed by the engine together with the
// object that owns it.
package sunbind

import (
	"github.com/sunbind/sunbind/types"
)

// Config is the runtime configuration, see LoadConfig.
type Config = types.Config

// Vector is a view of native storage, valid only during a hook call.
type Vector = types.Vector

// Solution is the state reported after a solver call.
type Solution = types.Solution

// Hook function types.
type (
	RhsFn         = types.RhsFn
	RootFn        = types.RootFn
	EwtFn         = types.EwtFn
	PrecSetupFn   = types.PrecSetupFn
	PrecSolveFn   = types.PrecSolveFn
	JacTimesFn    = types.JacTimesFn
	QuadRhsFn     = types.QuadRhsFn
	SensRhsFn     = types.SensRhsFn
	SensRhs1Fn    = types.SensRhs1Fn
	PostprocessFn = types.PostprocessFn

	RhsFnB       = types.RhsFnB
	RhsFnBS      = types.RhsFnBS
	QuadRhsFnB   = types.QuadRhsFnB
	PrecSetupFnB = types.PrecSetupFnB

	InnerEvolveFn           = types.InnerEvolveFn
	InnerFullRhsFn          = types.InnerFullRhsFn
	InnerResetFn            = types.InnerResetFn
	InnerAccumulatedErrorFn = types.InnerAccumulatedErrorFn

	NlsSysFn      = types.NlsSysFn
	NlsLSetupFn   = types.NlsLSetupFn
	NlsLSolveFn   = types.NlsLSolveFn
	NlsConvTestFn = types.NlsConvTestFn
)

// LibraryVersion returns the version of the native engine.
func LibraryVersion() (string, error) {
	return libraryVersionImpl()
}
