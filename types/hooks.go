package types

// Vector is a view of native vector storage handed to a host callable. It is
// only valid for the duration of the call; copy it to keep the values.
type Vector []float64

// Handle identifies a native object passed through to a host callable.
type Handle uintptr

// hidden is the type of Hidden.
type hidden struct{}

func (hidden) String() string { return "<hidden>" }

// Hidden replaces the context argument of a hook before the host callable is
// invoked, so host code never observes the engine's context pointer.
var Hidden = hidden{}

// Integrator hooks. user data is never passed: callables close over whatever
// state they need.
type (
	RhsFn         func(t float64, y, ydot Vector) int
	RootFn        func(t float64, y Vector, gout []float64) int
	EwtFn         func(y, ewt Vector) int
	PrecSetupFn   func(t float64, y, fy Vector, jok bool, gamma float64) PrecSetupResult
	PrecSolveFn   func(t float64, y, fy, r, z Vector, gamma, delta float64, lr int) int
	JacTimesFn    func(v, jv Vector, t float64, y, fy, tmp Vector) int
	QuadRhsFn     func(t float64, y, yQdot Vector) int
	SensRhsFn     func(ns int, t float64, y, ydot Vector, yS, ySdot []Vector, tmp1, tmp2 Vector) int
	SensRhs1Fn    func(ns int, t float64, y, ydot Vector, iS int, yS, ySdot, tmp1, tmp2 Vector) int
	PostprocessFn func(t float64, y Vector) int
)

// Backward companion hooks.
type (
	RhsFnB       func(t float64, y, yB, yBdot Vector) int
	RhsFnBS      func(t float64, y Vector, yS []Vector, yB, yBdot Vector) int
	QuadRhsFnB   func(t float64, y, yB, qBdot Vector) int
	PrecSetupFnB func(t float64, y, yB, fyB Vector, jokB bool, gammaB float64) PrecSetupResult
)

// Inner stepper hooks. The stepper itself is the context argument.
type (
	InnerEvolveFn           func(t0, tout float64, y Vector) int
	InnerFullRhsFn          func(t float64, y, f Vector, mode int) int
	InnerResetFn            func(tR float64, yR Vector) int
	InnerAccumulatedErrorFn func() AccumulatedErrorResult
)

// Nonlinear solver hooks.
type (
	NlsSysFn      func(ycor, f Vector) int
	NlsLSetupFn   func(jbad bool) LSetupResult
	NlsLSolveFn   func(b Vector) int
	NlsConvTestFn func(nls Handle, ycor, del Vector, tol float64, ewt Vector) int
)

// Structured results. The first field is always the status returned to the
// engine; the remaining fields are written to the native out-parameters in
// declaration order, whatever the status.

// PrecSetupResult is returned by preconditioner setup hooks. JacCurrent reports
// whether Jacobian data was recomputed.
type PrecSetupResult struct {
	Status     int  `json:"status"`
	JacCurrent bool `json:"jac_current"`
}

// LSetupResult is returned by the nonlinear solver's linear setup hook.
type LSetupResult struct {
	Status     int  `json:"status"`
	JacCurrent bool `json:"jac_current"`
}

// AccumulatedErrorResult is returned by the inner stepper's error query.
type AccumulatedErrorResult struct {
	Status int     `json:"status"`
	Error  float64 `json:"error"`
}

// Solution is the state reported after a solver call.
type Solution struct {
	T         float64   `json:"t"`
	Y         []float64 `json:"y"`
	RootFound bool      `json:"root_found,omitempty"`
}
