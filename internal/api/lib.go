package api

/*
#include "callbacks.h"
*/
import "C"

import (
	"fmt"
	"runtime"
	"unsafe"

	"github.com/sunbind/sunbind/types"
)

func cbool(b bool) C.int {
	if b {
		return 1
	}
	return 0
}

func succeeded(rc C.int) bool { return rc == C.SB_SUCCESS }

// collect runs a native driver call and returns its flag together with the
// first interop failure raised by the hooks it reached. The goroutine stays
// on one OS thread so failures without a table are matched to this call.
func collect(call func() C.int, ids ...TableID) (C.int, error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	_ = takeFault(ids...)
	rc := call()
	return rc, takeFault(ids...)
}

/****** Integrator ********/

// Integrator owns a native integrator memory and its callback table. A
// backward companion is also an Integrator; it belongs to the forward
// integrator it was created from and is freed together with it.
//
// Integrators are not safe for concurrent use.
type Integrator struct {
	mem C.SBIntegratorMem
	id  TableID

	table  *integratorTable // forward only
	btable *backwardTable   // companions only

	parent   *Integrator
	which    int
	children []*Integrator
	inner    *InnerStepper
}

// NewIntegrator creates a forward integrator at (t0, y0) with rhs bound.
// rhs may be nil and registered later.
func NewIntegrator(rhs types.RhsFn, t0 float64, y0 []float64, cfg types.EngineConfig) (*Integrator, error) {
	if cfg.StepSize <= 0 || cfg.MaxRetries < 0 {
		return nil, types.NativeStatus{Op: "create integrator", Code: types.StatusIllInput}
	}
	v := newVector(y0)
	if v == nil {
		return nil, types.OutOfMemory{Object: "vector"}
	}
	defer destroyVector(v)

	mem := C.SBIntegratorCreate(C.sunrealtype(t0), v, C.sunrealtype(cfg.StepSize), C.int(cfg.MaxRetries))
	if mem == nil {
		return nil, types.OutOfMemory{Object: IntegratorTable.String()}
	}

	tbl := &integratorTable{}
	cell, ent, err := allocTable(IntegratorTable, tbl)
	if err != nil {
		C.SBIntegratorFree(&mem)
		return nil, err
	}
	if rc := C.SBIntegratorSetPython(mem, unsafe.Pointer(cell), releaseHook()); !succeeded(rc) {
		discardCell(cell)
		C.SBIntegratorFree(&mem)
		return nil, types.NativeStatus{Op: "attach integrator table", Code: int(rc)}
	}

	it := &Integrator{mem: mem, id: ent.id, table: tbl}
	if err := it.Register(SlotRhs, rhs); err != nil {
		it.Free()
		return nil, err
	}
	return it, nil
}

func (it *Integrator) kind() TableKind {
	if it.parent != nil {
		return BackwardTable
	}
	return IntegratorTable
}

func (it *Integrator) live() error {
	if it == nil || it.mem == nil {
		return types.InvalidHandle{Object: "integrator"}
	}
	if _, found := retrieveTable(it.id); !found {
		return types.InvalidHandle{Object: it.kind().String()}
	}
	return nil
}

// forward is live plus a check that it is not a backward companion.
func (it *Integrator) forward(op string) error {
	if err := it.live(); err != nil {
		return err
	}
	if it.parent != nil {
		return fmt.Errorf("%s is not available on a backward companion", op)
	}
	return nil
}

func (it *Integrator) companion(op string) error {
	if err := it.live(); err != nil {
		return err
	}
	if it.parent == nil {
		return fmt.Errorf("%s is only available on a backward companion", op)
	}
	return nil
}

// family lists the tables whose hooks can run during a call on it.
func (it *Integrator) family() []TableID {
	ids := []TableID{it.id}
	if it.inner != nil {
		ids = append(ids, it.inner.id)
	}
	for _, c := range it.children {
		ids = append(ids, c.family()...)
	}
	return ids
}

// ID returns the callback table ID.
func (it *Integrator) ID() TableID { return it.id }

// Which returns the index of a backward companion, or -1.
func (it *Integrator) Which() int {
	if it.parent == nil {
		return -1
	}
	return it.which
}

// Register binds fn to the named slot, re-issuing the native registration.
// A nil fn empties the slot and unregisters the hook.
func (it *Integrator) Register(slot string, fn any) error {
	if err := it.live(); err != nil {
		return err
	}
	obj := unsafe.Pointer(it.mem)
	if it.parent != nil {
		return register(BackwardTable.String(), it.btable, backwardSlots, obj, slot, fn)
	}
	return register(IntegratorTable.String(), it.table, integratorSlots, obj, slot, fn)
}

func (it *Integrator) SetRhs(fn types.RhsFn) error { return it.Register(SlotRhs, fn) }

func (it *Integrator) SetEwt(fn types.EwtFn) error { return it.Register(SlotEwt, fn) }

func (it *Integrator) SetJacTimes(fn types.JacTimesFn) error { return it.Register(SlotJacTimes, fn) }

func (it *Integrator) SetPostprocess(fn types.PostprocessFn) error {
	return it.Register(SlotPostprocess, fn)
}

// SetPreconditioner binds both preconditioner hooks. Either may be nil.
func (it *Integrator) SetPreconditioner(setup types.PrecSetupFn, solve types.PrecSolveFn) error {
	if err := it.Register(SlotPrecSetup, setup); err != nil {
		return err
	}
	return it.Register(SlotPrecSolve, solve)
}

// RootInit sizes root finding for n functions and binds g, which fills gout
// with n values. n = 0 turns root finding off.
func (it *Integrator) RootInit(n int, g types.RootFn) error {
	if err := it.forward("RootInit"); err != nil {
		return err
	}
	if rc := C.SBIntegratorRootInit(it.mem, C.int(n), nil); !succeeded(rc) {
		return types.NativeStatus{Op: "root init", Code: int(rc)}
	}
	if n == 0 {
		g = nil
	}
	return it.Register(SlotRoot, g)
}

// QuadInit enables quadrature integration starting at yQ0.
func (it *Integrator) QuadInit(fQ types.QuadRhsFn, yQ0 []float64) error {
	if err := it.forward("QuadInit"); err != nil {
		return err
	}
	v := newVector(yQ0)
	if v == nil {
		return types.OutOfMemory{Object: "vector"}
	}
	defer destroyVector(v)
	return swapSlot("quad init", &it.table.quadrhs, fQ, func(bound bool) C.int {
		return C.SBIntegratorQuadInit(it.mem, gateway(bound, C.SBQuadRhsFn(C.sbQuadRhs_cgo)), v)
	})
}

// SensInit enables forward sensitivities with a hook computing all ns right
// hand sides at once. It must run before the first Evolve.
func (it *Integrator) SensInit(ns int, fS types.SensRhsFn, yS0 [][]float64) error {
	return it.sensInit(ns, SlotSensRhs, fS, yS0, func(bound bool, arr *C.N_Vector) C.int {
		return C.SBIntegratorSensInit(it.mem, C.int(ns), gateway(bound, C.SBSensRhsFn(C.sbSensRhs_cgo)), arr)
	})
}

// SensInit1 is SensInit with a hook called once per sensitivity.
func (it *Integrator) SensInit1(ns int, fS1 types.SensRhs1Fn, yS0 [][]float64) error {
	return it.sensInit(ns, SlotSensRhs1, fS1, yS0, func(bound bool, arr *C.N_Vector) C.int {
		return C.SBIntegratorSensInit1(it.mem, C.int(ns), gateway(bound, C.SBSensRhs1Fn(C.sbSensRhs1_cgo)), arr)
	})
}

func (it *Integrator) sensInit(ns int, slot string, fn any, yS0 [][]float64, issue func(bool, *C.N_Vector) C.int) error {
	if err := it.forward("SensInit"); err != nil {
		return err
	}
	if ns <= 0 || len(yS0) != ns {
		return types.NativeStatus{Op: "sens init", Code: types.StatusIllInput}
	}
	arr := newVectorArray(yS0)
	if arr == nil {
		return types.OutOfMemory{Object: "vector"}
	}
	defer destroyVectorArray(arr, ns)

	// only one of the two sensitivity slots is ever bound
	this, other := &it.table.sensrhs, &it.table.sensrhs1
	if slot == SlotSensRhs1 {
		this, other = other, this
	}
	err := swapSlot("sens init", this, fn, func(bound bool) C.int { return issue(bound, arr) })
	if err == nil {
		*other = nil
	}
	return err
}

// Evolve integrates up to tout. It stops early, with RootFound set, when a
// root function changes sign. A failing engine flag is returned as a
// types.NativeStatus whose Cause is the interop failure behind it, if any.
func (it *Integrator) Evolve(tout float64) (types.Solution, error) {
	if err := it.forward("Evolve"); err != nil {
		return types.Solution{}, err
	}
	var tret C.sunrealtype
	rc, fault := collect(func() C.int {
		return C.SBIntegratorEvolve(it.mem, C.sunrealtype(tout), &tret)
	}, it.family()...)
	sol := types.Solution{T: float64(tret), Y: copyVector(it.mem.y)}
	switch rc {
	case C.SB_SUCCESS:
		return sol, nil
	case C.SB_ROOT_RETURN:
		sol.RootFound = true
		return sol, nil
	default:
		return sol, types.NativeStatus{Op: "evolve", Code: int(rc), Cause: fault}
	}
}

// State returns the current time and a copy of the state vector.
func (it *Integrator) State() (types.Solution, error) {
	if err := it.live(); err != nil {
		return types.Solution{}, err
	}
	return types.Solution{T: float64(it.mem.t), Y: copyVector(it.mem.y)}, nil
}

// Steps returns the number of accepted steps.
func (it *Integrator) Steps() (int64, error) {
	if err := it.live(); err != nil {
		return 0, err
	}
	return int64(it.mem.nsteps), nil
}

// RootInfo reports, per root function, the direction of the crossing found by
// the last Evolve: 1 rising, -1 falling, 0 none.
func (it *Integrator) RootInfo() ([]int, error) {
	if err := it.forward("RootInfo"); err != nil {
		return nil, err
	}
	n := int(it.mem.nrtfn)
	if n == 0 || it.mem.rootsfound == nil {
		return nil, nil
	}
	out := make([]int, n)
	for i, v := range unsafe.Slice(it.mem.rootsfound, n) {
		out[i] = int(v)
	}
	return out, nil
}

// Quad returns a copy of the quadrature state.
func (it *Integrator) Quad() ([]float64, error) {
	if err := it.live(); err != nil {
		return nil, err
	}
	return copyVector(it.mem.yQ), nil
}

// Sens returns copies of the sensitivity vectors.
func (it *Integrator) Sens() ([][]float64, error) {
	if err := it.forward("Sens"); err != nil {
		return nil, err
	}
	ns := int(it.mem.Ns)
	if ns == 0 {
		return nil, nil
	}
	out := make([][]float64, ns)
	for i, v := range unsafe.Slice(it.mem.yS, ns) {
		out[i] = copyVector(v)
	}
	return out, nil
}

// AttachInner hands s over to it. From then on s is freed with it and
// s.Free is a no-op.
func (it *Integrator) AttachInner(s *InnerStepper) error {
	if err := it.live(); err != nil {
		return err
	}
	if err := s.live(); err != nil {
		return err
	}
	if rc := C.SBIntegratorAttachInner(it.mem, s.stepper); !succeeded(rc) {
		return types.NativeStatus{Op: "attach inner stepper", Code: int(rc)}
	}
	it.inner = s
	s.owner = it
	return nil
}

// Free releases the native memory and every callback table reachable from
// it: backward companions and attached inner steppers included. It is safe
// to call more than once. On a backward companion it does nothing.
func (it *Integrator) Free() {
	if it == nil || it.mem == nil || it.parent != nil {
		return
	}
	mem := it.mem
	C.SBIntegratorFree(&mem)
	it.invalidate()
}

func (it *Integrator) invalidate() {
	it.mem = nil
	for _, c := range it.children {
		c.invalidate()
	}
	if it.inner != nil {
		it.inner.invalidate()
	}
}

/****** Backward companions ********/

// CreateBackward creates a backward companion integrating fB from tB0 with
// initial state yB0. It needs a forward Evolve to have run first.
func (it *Integrator) CreateBackward(fB types.RhsFnB, tB0 float64, yB0 []float64) (*Integrator, error) {
	return it.createBackward(SlotRhsB, fB, yB0, func(which C.int, bound bool, v C.N_Vector) C.int {
		return C.SBIntegratorInitB(it.mem, which, gateway(bound, C.SBRhsFnB(C.sbRhsB_cgo)), C.sunrealtype(tB0), v)
	})
}

// CreateBackwardS is CreateBackward for a right hand side that also reads the
// forward sensitivities. SensInit must have been called.
func (it *Integrator) CreateBackwardS(fBS types.RhsFnBS, tB0 float64, yB0 []float64) (*Integrator, error) {
	return it.createBackward(SlotRhsBS, fBS, yB0, func(which C.int, bound bool, v C.N_Vector) C.int {
		return C.SBIntegratorInitBS(it.mem, which, gateway(bound, C.SBRhsFnBS(C.sbRhsBS_cgo)), C.sunrealtype(tB0), v)
	})
}

func (it *Integrator) createBackward(slot string, fn any, yB0 []float64, issue func(C.int, bool, C.N_Vector) C.int) (*Integrator, error) {
	if err := it.forward("CreateBackward"); err != nil {
		return nil, err
	}
	v := newVector(yB0)
	if v == nil {
		return nil, types.OutOfMemory{Object: "vector"}
	}
	defer destroyVector(v)

	// the table comes first so running out of memory leaves nothing native
	tbl := &backwardTable{}
	cell, ent, err := allocTable(BackwardTable, tbl)
	if err != nil {
		return nil, err
	}
	var which C.int
	if rc := C.SBIntegratorCreateB(it.mem, &which); !succeeded(rc) {
		discardCell(cell)
		return nil, types.NativeStatus{Op: "create backward", Code: int(rc)}
	}
	bmem := C.SBIntegratorGetAdjBmem(it.mem, which)
	if rc := C.SBIntegratorSetPython(bmem, unsafe.Pointer(cell), releaseHook()); !succeeded(rc) {
		discardCell(cell)
		C.SBIntegratorFreeB(it.mem, which)
		return nil, types.NativeStatus{Op: "attach backward table", Code: int(rc)}
	}

	field := fieldOf(backwardSlots, slot)(tbl)
	err = swapSlot("init backward", field, fn, func(bound bool) C.int { return issue(which, bound, v) })
	if err != nil {
		// unlinking runs the destroy hook, which releases the table
		C.SBIntegratorFreeB(it.mem, which)
		return nil, err
	}
	b := &Integrator{mem: bmem, id: ent.id, btable: tbl, parent: it, which: int(which)}
	it.children = append(it.children, b)
	return b, nil
}

// Backward returns the companion with the given index.
func (it *Integrator) Backward(which int) (*Integrator, error) {
	if err := it.forward("Backward"); err != nil {
		return nil, err
	}
	bmem := C.SBIntegratorGetAdjBmem(it.mem, C.int(which))
	if bmem == nil {
		return nil, types.NativeStatus{Op: "backward lookup", Code: types.StatusBadWhich}
	}
	if _, err := lookupCell((*C.SBFnTable)(bmem.python), BackwardTable); err != nil {
		return nil, err
	}
	for _, c := range it.children {
		if c.mem == bmem {
			return c, nil
		}
	}
	return nil, types.NativeStatus{Op: "backward lookup", Code: types.StatusBadWhich}
}

// EvolveBackward integrates every companion of it back to tBout.
func (it *Integrator) EvolveBackward(tBout float64) error {
	if err := it.forward("EvolveBackward"); err != nil {
		return err
	}
	rc, fault := collect(func() C.int {
		return C.SBIntegratorSolveB(it.mem, C.sunrealtype(tBout))
	}, it.family()...)
	if !succeeded(rc) {
		return types.NativeStatus{Op: "evolve backward", Code: int(rc), Cause: fault}
	}
	return nil
}

// QuadInitB enables backward quadratures on a companion.
func (it *Integrator) QuadInitB(fQB types.QuadRhsFnB, yQB0 []float64) error {
	if err := it.companion("QuadInitB"); err != nil {
		return err
	}
	v := newVector(yQB0)
	if v == nil {
		return types.OutOfMemory{Object: "vector"}
	}
	defer destroyVector(v)
	return swapSlot("quad init backward", &it.btable.quadrhsB, fQB, func(bound bool) C.int {
		return C.SBIntegratorQuadInitB(it.mem, gateway(bound, C.SBQuadRhsFnB(C.sbQuadRhsB_cgo)), v)
	})
}

func (it *Integrator) SetPrecSetupB(fn types.PrecSetupFnB) error {
	if err := it.companion("SetPrecSetupB"); err != nil {
		return err
	}
	return it.Register(SlotPrecSetupB, fn)
}

/****** Inner stepper ********/

// InnerStepper is a host implemented stepper the integrator calls for each
// step. Its callback table lives in the native content field.
type InnerStepper struct {
	stepper C.SBInnerStepper
	id      TableID
	table   *innerStepperTable
	owner   *Integrator
}

func NewInnerStepper() (*InnerStepper, error) {
	s := C.SBInnerStepperCreate()
	if s == nil {
		return nil, types.OutOfMemory{Object: InnerStepperTable.String()}
	}
	tbl := &innerStepperTable{}
	cell, ent, err := allocTable(InnerStepperTable, tbl)
	if err != nil {
		C.SBInnerStepperFree(&s)
		return nil, err
	}
	if rc := C.SBInnerStepperSetContent(s, unsafe.Pointer(cell), releaseHook()); !succeeded(rc) {
		discardCell(cell)
		C.SBInnerStepperFree(&s)
		return nil, types.NativeStatus{Op: "attach inner stepper table", Code: int(rc)}
	}
	return &InnerStepper{stepper: s, id: ent.id, table: tbl}, nil
}

func (s *InnerStepper) live() error {
	if s == nil || s.stepper == nil {
		return types.InvalidHandle{Object: InnerStepperTable.String()}
	}
	if _, found := retrieveTable(s.id); !found {
		return types.InvalidHandle{Object: InnerStepperTable.String()}
	}
	return nil
}

func (s *InnerStepper) ID() TableID { return s.id }

func (s *InnerStepper) Register(slot string, fn any) error {
	if err := s.live(); err != nil {
		return err
	}
	return register(InnerStepperTable.String(), s.table, innerStepperSlots, unsafe.Pointer(s.stepper), slot, fn)
}

func (s *InnerStepper) SetEvolve(fn types.InnerEvolveFn) error {
	return s.Register(SlotInnerEvolve, fn)
}

func (s *InnerStepper) SetFullRhs(fn types.InnerFullRhsFn) error {
	return s.Register(SlotInnerFullRhs, fn)
}

func (s *InnerStepper) SetReset(fn types.InnerResetFn) error {
	return s.Register(SlotInnerReset, fn)
}

func (s *InnerStepper) SetAccumulatedError(fn types.InnerAccumulatedErrorFn) error {
	return s.Register(SlotInnerAccumulatedError, fn)
}

// AccumulatedError asks the host stepper for its accumulated error estimate.
func (s *InnerStepper) AccumulatedError() (float64, error) {
	if err := s.live(); err != nil {
		return 0, err
	}
	var accum C.sunrealtype
	rc, fault := collect(func() C.int {
		return C.SBInnerStepperGetAccumulatedError(s.stepper, &accum)
	}, s.id)
	if !succeeded(rc) {
		return float64(accum), types.NativeStatus{Op: "accumulated error", Code: int(rc), Cause: fault}
	}
	return float64(accum), nil
}

// Attached reports whether an integrator owns s.
func (s *InnerStepper) Attached() bool { return s.owner != nil }

// Free releases s unless it was attached to an integrator, which then owns
// it. Safe to call more than once.
func (s *InnerStepper) Free() {
	if s == nil || s.stepper == nil || s.owner != nil {
		return
	}
	stepper := s.stepper
	C.SBInnerStepperFree(&stepper)
	s.invalidate()
}

func (s *InnerStepper) invalidate() { s.stepper = nil }

/****** Nonlinear solver ********/

// NonlinearSolver runs a Newton iteration whose system, linear setup, linear
// solve and convergence test are host callables. The callback table is only
// allocated once the first hook is registered.
type NonlinearSolver struct {
	nls   C.SBNonlinearSolver
	id    TableID
	table *nonlinSolTable
	tol   float64
}

// DefaultNlsTolerance is the tolerance Solve uses when given none.
const DefaultNlsTolerance = 1e-10

func NewNonlinearSolver(maxIters int) (*NonlinearSolver, error) {
	if maxIters <= 0 {
		return nil, types.NativeStatus{Op: "create nonlinear solver", Code: types.StatusIllInput}
	}
	n := C.SBNonlinSolCreate(C.int(maxIters))
	if n == nil {
		return nil, types.OutOfMemory{Object: NonlinSolTable.String()}
	}
	return &NonlinearSolver{nls: n, tol: DefaultNlsTolerance}, nil
}

func (n *NonlinearSolver) live() error {
	if n == nil || n.nls == nil {
		return types.InvalidHandle{Object: NonlinSolTable.String()}
	}
	if n.table == nil {
		return nil
	}
	if _, found := retrieveTable(n.id); !found {
		return types.InvalidHandle{Object: NonlinSolTable.String()}
	}
	return nil
}

func (n *NonlinearSolver) ensureTable() error {
	if n.table != nil {
		return nil
	}
	tbl := &nonlinSolTable{}
	cell, ent, err := allocTable(NonlinSolTable, tbl)
	if err != nil {
		return err
	}
	if rc := C.SBNonlinSolSetPython(n.nls, unsafe.Pointer(cell), releaseHook()); !succeeded(rc) {
		discardCell(cell)
		return types.NativeStatus{Op: "attach nonlinear solver table", Code: int(rc)}
	}
	n.table = tbl
	n.id = ent.id
	return nil
}

// ID returns the callback table ID, 0 while no hook was registered.
func (n *NonlinearSolver) ID() TableID { return n.id }

// Handle identifies the native solver the way convergence tests see it.
func (n *NonlinearSolver) Handle() types.Handle {
	return types.Handle(uintptr(unsafe.Pointer(n.nls)))
}

func (n *NonlinearSolver) Register(slot string, fn any) error {
	if err := n.live(); err != nil {
		return err
	}
	if err := n.ensureTable(); err != nil {
		return err
	}
	return register(NonlinSolTable.String(), n.table, nonlinSolSlots, unsafe.Pointer(n.nls), slot, fn)
}

func (n *NonlinearSolver) SetSys(fn types.NlsSysFn) error { return n.Register(SlotNlsSys, fn) }

func (n *NonlinearSolver) SetLSetup(fn types.NlsLSetupFn) error { return n.Register(SlotNlsLSetup, fn) }

func (n *NonlinearSolver) SetLSolve(fn types.NlsLSolveFn) error { return n.Register(SlotNlsLSolve, fn) }

func (n *NonlinearSolver) SetConvTest(fn types.NlsConvTestFn) error {
	return n.Register(SlotNlsConvTest, fn)
}

// SetTolerance changes the tolerance used by Solve calls that pass none.
func (n *NonlinearSolver) SetTolerance(tol float64) error {
	if err := n.live(); err != nil {
		return err
	}
	if !(tol > 0) {
		return types.NativeStatus{Op: "set tolerance", Code: types.StatusIllInput}
	}
	n.tol = tol
	return nil
}

func (n *NonlinearSolver) Tolerance() float64 { return n.tol }

// Solve iterates from ycor0 and returns the last iterate. w is handed to the
// convergence test as error weights and may be nil. tol <= 0 selects the
// solver's tolerance, see SetTolerance.
func (n *NonlinearSolver) Solve(ycor0, w []float64, tol float64, callLSetup bool) ([]float64, error) {
	if err := n.live(); err != nil {
		return nil, err
	}
	if tol <= 0 {
		tol = n.tol
	}
	ycor := newVector(ycor0)
	if ycor == nil {
		return nil, types.OutOfMemory{Object: "vector"}
	}
	defer destroyVector(ycor)
	var wv C.N_Vector
	if w != nil {
		if wv = newVector(w); wv == nil {
			return nil, types.OutOfMemory{Object: "vector"}
		}
		defer destroyVector(wv)
	}

	rc, fault := collect(func() C.int {
		return C.SBNonlinSolSolve(n.nls, ycor, wv, C.sunrealtype(tol), cbool(callLSetup), n.nls.python)
	}, n.id)
	out := copyVector(ycor)
	if !succeeded(rc) {
		return out, types.NativeStatus{Op: "nonlinear solve", Code: int(rc), Cause: fault}
	}
	return out, nil
}

// Iters returns the iteration count of the last Solve.
func (n *NonlinearSolver) Iters() (int64, error) {
	if err := n.live(); err != nil {
		return 0, err
	}
	return int64(n.nls.iters), nil
}

// Free releases the solver and its table. Safe to call more than once.
func (n *NonlinearSolver) Free() {
	if n == nil || n.nls == nil {
		return
	}
	nls := n.nls
	C.SBNonlinSolFree(&nls)
	n.nls = nil
}
